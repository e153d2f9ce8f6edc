/*
 *	Copyright 2024 The GoHDL Authors
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package mult

import (
	"math/bits"

	. "github.com/gomlx/exceptions"

	"github.com/gohdl/gohdl/rtl"
)

// MultiplicandSelector precomputes the multiples 1x..(radix/2)x of the
// multiplicand and serves individual bits of whichever multiple a Booth
// encoding selects.
//
// Power-of-two multiples are plain shifts; the others come from shift/add
// and shift/subtract identities (3x = (x<<2)-x, 5x = (x<<2)+x,
// 6x = (x<<3)-(x<<1), 7x = (x<<3)-x). All multiples are held at one fixed
// width, so selection is a per-column gather.
type MultiplicandSelector struct {
	radix        int
	width        int
	multiplicand *rtl.Signal
	multiples    []*rtl.Signal // multiples[i] = (i+1) * multiplicand
}

// MultiplicandSelectorOption configures NewMultiplicandSelector.
type MultiplicandSelectorOption func(*multiplicandSelectorConfig)

type multiplicandSelectorConfig struct {
	signed     bool
	signSelect *rtl.Signal
	width      int
}

// SignedMultiplicand marks the multiplicand as statically signed (two's
// complement): multiples are computed from its sign extension. Mutually
// exclusive with DynamicSignedMultiplicand.
func SignedMultiplicand() MultiplicandSelectorOption {
	return func(c *multiplicandSelectorConfig) { c.signed = true }
}

// DynamicSignedMultiplicand supplies a runtime 1-bit signal selecting whether
// the multiplicand is interpreted as signed (1) or unsigned (0). Mutually
// exclusive with SignedMultiplicand.
func DynamicSignedMultiplicand(sel *rtl.Signal) MultiplicandSelectorOption {
	return func(c *multiplicandSelectorConfig) { c.signSelect = sel }
}

// SelectorWidth fixes the width the multiples are computed at, and therefore
// the range of columns Select serves. It defaults to the multiplicand width
// plus log2(radix), the minimum that holds the largest signed multiple.
func SelectorWidth(width int) MultiplicandSelectorOption {
	return func(c *multiplicandSelectorConfig) { c.width = width }
}

// NewMultiplicandSelector precomputes the radix/2 multiples of the
// multiplicand. radix must be a power of two between 2 and MaxRadix,
// otherwise it panics with a configuration error.
func NewMultiplicandSelector(radix int, multiplicand *rtl.Signal,
	opts ...MultiplicandSelectorOption) *MultiplicandSelector {
	if radix < 2 || radix > MaxRadix || bits.OnesCount(uint(radix)) != 1 {
		Panicf("radix must be a power of two in 2..%d, got %d", MaxRadix, radix)
	}
	if multiplicand == nil {
		Panicf("multiplicand is nil")
	}
	var config multiplicandSelectorConfig
	for _, opt := range opts {
		opt(&config)
	}
	if config.signed && config.signSelect != nil {
		Panicf("SignedMultiplicand and DynamicSignedMultiplicand are mutually exclusive")
	}
	if config.signSelect != nil {
		config.signSelect.AssertWidth(1)
	}
	step := bits.TrailingZeros(uint(radix))
	width := config.width
	if width == 0 {
		width = multiplicand.Width() + step
	}
	if width < multiplicand.Width() {
		Panicf("selector width %d is narrower than the multiplicand %s",
			width, multiplicand)
	}

	// Extend once, then derive every multiple at the full width; truncation
	// by ShiftLeft and Sub keeps everything consistent mod 2^width.
	var base *rtl.Signal
	switch {
	case config.signed:
		base = rtl.SignExtend(multiplicand, width)
	case config.signSelect != nil:
		base = rtl.Mux(config.signSelect,
			rtl.SignExtend(multiplicand, width),
			rtl.ZeroExtend(multiplicand, width))
	default:
		base = rtl.ZeroExtend(multiplicand, width)
	}

	multiples := make([]*rtl.Signal, radix/2)
	for m := 1; m <= radix/2; m++ {
		multiples[m-1] = buildMultiple(base, m)
	}
	return &MultiplicandSelector{
		radix:        radix,
		width:        width,
		multiplicand: multiplicand,
		multiples:    multiples,
	}
}

// buildMultiple derives m*base from shifts of base: a single shift for
// powers of two, one shift/subtract or shift/add otherwise. Every m up to 8
// is either a power of two, a power of two minus a power of two, or a power
// of two plus a power of two.
func buildMultiple(base *rtl.Signal, m int) *rtl.Signal {
	if bits.OnesCount(uint(m)) == 1 {
		return rtl.ShiftLeft(base, bits.TrailingZeros(uint(m)))
	}
	above := bits.Len(uint(m)) // 1<<above is the next power of two above m
	if diff := (1 << above) - m; bits.OnesCount(uint(diff)) == 1 {
		return rtl.Sub(rtl.ShiftLeft(base, above),
			rtl.ShiftLeft(base, bits.TrailingZeros(uint(diff))))
	}
	low := m - 1<<(above-1)
	return rtl.Add(rtl.ShiftLeft(base, above-1),
		rtl.ShiftLeft(base, bits.TrailingZeros(uint(low))))
}

// Radix returns the selector's radix.
func (s *MultiplicandSelector) Radix() int { return s.radix }

// Width returns the width the multiples are computed at: Select serves
// columns 0..Width()-1.
func (s *MultiplicandSelector) Width() int { return s.width }

// Multiple returns the precomputed m-times multiple, m in 1..radix/2. It
// panics on an out-of-range m. Mostly useful for tests and debugging.
func (s *MultiplicandSelector) Multiple(m int) *rtl.Signal {
	if m < 1 || m > s.radix/2 {
		Panicf("multiple %d out of range 1..%d", m, s.radix/2)
	}
	return s.multiples[m-1]
}

// Select returns bit col of the multiple chosen by the encoding, negated
// when the encoding's sign is set: the bits at col of all multiples are
// gathered, masked with the one-hot selector, OR-reduced and XORed with the
// sign.
//
// The caller must uphold that encode.Multiples is one-hot (at most one bit
// set); RadixEncoder guarantees it. A multi-hot selector is undefined
// behavior, not detected here.
//
// Note the sign XOR realizes only the complement half of two's complement
// negation: the consumer owes an extra +1 at the row's least significant
// column for every negative digit.
func (s *MultiplicandSelector) Select(col int, encode RadixEncode) *rtl.Signal {
	if col < 0 || col >= s.width {
		Panicf("column %d out of range: multiples are %d bits wide", col, s.width)
	}
	encode.Multiples.AssertWidth(s.radix / 2)
	gathered := make([]*rtl.Signal, len(s.multiples))
	for i, multiple := range s.multiples {
		gathered[i] = multiple.Bit(col)
	}
	masked := rtl.And(rtl.Concat(gathered...), encode.Multiples)
	return rtl.Xor(rtl.ReduceOr(masked), encode.Sign)
}
