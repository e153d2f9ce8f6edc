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

// Package mult generates the partial-product and reduction logic of a
// parameterizable binary multiplier on top of the rtl substrate.
//
// The main elements in the package are:
//
//   - RadixEncoder: pure generalized Booth recoding of one multiplier window
//     into a one-hot magnitude plus sign, for any power-of-two radix up to 16.
//
//   - MultiplierEncoder: owns extension and overlap of the full multiplier
//     and produces one encoding per partial-product row.
//
//   - MultiplicandSelector: precomputes the multiples of the multiplicand
//     and serves the bit a given encoding selects at a given column.
//
//   - ColumnCompressor: the reduction engine; organizes all partial-product
//     bits into delay-ordered columns and compresses them with half and full
//     adders into two rows whose binary sum is the represented value
//     (carry-save form).
//
//   - New: the assembly tying the stages together into a carry-save
//     multiplier for two operands.
//
// Everything here runs at elaboration time: the output is a netlist, and the
// delay figures attached to compression terms model the logic depth of that
// netlist, not any runtime behavior of this package. The final
// carry-propagate addition of the two output rows is deliberately left to
// the caller.
package mult

import (
	. "github.com/gomlx/exceptions"

	"github.com/gohdl/gohdl/rtl"
)

// Multiplier is the assembled Booth multiplier core: two operands reduced to
// carry-save form. Add0 and Add1 are the two output rows; their binary sum
// mod 2^(Wx+Wy) is the product, with both operands interpreted as signed or
// unsigned according to the options.
type Multiplier struct {
	// Add0 and Add1 are the carry-save output rows, Width() bits each.
	Add0, Add1 *rtl.Signal

	encoder    *MultiplierEncoder
	selector   *MultiplicandSelector
	compressor *ColumnCompressor
}

// MultiplierOption configures New.
type MultiplierOption func(*multiplierConfig)

type multiplierConfig struct {
	radix      int
	signed     bool
	signSelect *rtl.Signal
	mode       OutputMode
}

// WithRadix sets the Booth radix, a power of two up to MaxRadix. Default 4.
func WithRadix(radix int) MultiplierOption {
	return func(c *multiplierConfig) { c.radix = radix }
}

// WithSigned interprets both operands as two's complement.
func WithSigned() MultiplierOption {
	return func(c *multiplierConfig) { c.signed = true }
}

// WithDynamicSigned supplies a runtime 1-bit signal selecting signed (1) or
// unsigned (0) interpretation of both operands. Mutually exclusive with
// WithSigned.
func WithDynamicSigned(sel *rtl.Signal) MultiplierOption {
	return func(c *multiplierConfig) { c.signSelect = sel }
}

// WithOutputMode sets how the output rows are exposed; default Combinational.
func WithOutputMode(mode OutputMode) MultiplierOption {
	return func(c *multiplierConfig) { c.mode = mode }
}

// New builds a carry-save multiplier of multiplicand x by multiplier y: y is
// Booth-encoded row by row, each row selects a multiple of x at every
// product column (negative digits get their two's complement +1 as an extra
// one-bit row), and the column compressor reduces the matrix to Add0/Add1.
func New(x, y *rtl.Signal, opts ...MultiplierOption) *Multiplier {
	if x == nil || y == nil {
		Panicf("multiplier operands must not be nil")
	}
	config := multiplierConfig{radix: 4}
	for _, opt := range opts {
		opt(&config)
	}
	if config.signed && config.signSelect != nil {
		Panicf("WithSigned and WithDynamicSigned are mutually exclusive")
	}

	productWidth := x.Width() + y.Width()

	var encOpts []MultiplierEncoderOption
	selOpts := []MultiplicandSelectorOption{SelectorWidth(productWidth)}
	switch {
	case config.signed:
		encOpts = append(encOpts, SignedMultiplier())
		selOpts = append(selOpts, SignedMultiplicand())
	case config.signSelect != nil:
		encOpts = append(encOpts, DynamicSignedMultiplier(config.signSelect))
		selOpts = append(selOpts, DynamicSignedMultiplicand(config.signSelect))
	}

	radixEncoder := NewRadixEncoder(config.radix)
	encoder := NewMultiplierEncoder(y, radixEncoder, encOpts...)
	selector := NewMultiplicandSelector(config.radix, x, selOpts...)

	step := radixEncoder.Step()
	var rows []*rtl.Signal
	var shifts []int
	for r := 0; r < encoder.Rows(); r++ {
		shift := r * step
		if shift >= productWidth {
			// The digit's weight is beyond the product width; its whole
			// contribution vanishes mod 2^productWidth.
			break
		}
		encode := encoder.Encoding(r)
		bits := make([]*rtl.Signal, productWidth-shift)
		for i := range bits {
			bits[i] = selector.Select(i, encode)
		}
		rows = append(rows, rtl.Concat(bits...))
		shifts = append(shifts, shift)
		// The +1 completing the two's complement negation of negative
		// digits, at the row's least significant column.
		rows = append(rows, encode.Sign)
		shifts = append(shifts, shift)
	}

	compressor := NewColumnCompressor(rows, shifts, config.mode)
	compressor.Compress()
	return &Multiplier{
		Add0:       compressor.Add0(),
		Add1:       compressor.Add1(),
		encoder:    encoder,
		selector:   selector,
		compressor: compressor,
	}
}

// Width of the output rows: the sum of the operand widths.
func (m *Multiplier) Width() int { return m.compressor.MaxWidth() }

// Encoder returns the multiplier-side Booth encoder.
func (m *Multiplier) Encoder() *MultiplierEncoder { return m.encoder }

// Selector returns the multiplicand-side selector.
func (m *Multiplier) Selector() *MultiplicandSelector { return m.selector }

// Compressor returns the column compressor, for introspection.
func (m *Multiplier) Compressor() *ColumnCompressor { return m.compressor }
