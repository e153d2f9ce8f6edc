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
	. "github.com/gomlx/exceptions"

	"github.com/gohdl/gohdl/rtl"
)

// MultiplierEncoder owns the multiplier operand of a Booth multiplication:
// it extends the multiplier so its width divides into per-row steps, keeps
// the 1-bit overlap between consecutive windows, and produces one RadixEncode
// per row through the RadixEncoder.
type MultiplierEncoder struct {
	encoder    *RadixEncoder
	multiplier *rtl.Signal

	// extended is the overlapped multiplier as individual bits:
	// extended[0] is the implicit y[-1] = 0, followed by the multiplier and
	// its sign (or zero) extension, rows*step+1 bits in total.
	extended []*rtl.Signal

	rows int
}

// MultiplierEncoderOption configures NewMultiplierEncoder.
type MultiplierEncoderOption func(*multiplierEncoderConfig)

type multiplierEncoderConfig struct {
	signed     bool
	signSelect *rtl.Signal
}

// SignedMultiplier marks the multiplier as statically signed (two's
// complement). Mutually exclusive with DynamicSignedMultiplier.
func SignedMultiplier() MultiplierEncoderOption {
	return func(c *multiplierEncoderConfig) { c.signed = true }
}

// DynamicSignedMultiplier supplies a runtime 1-bit signal selecting whether
// the multiplier is interpreted as signed (1) or unsigned (0). Mutually
// exclusive with SignedMultiplier.
func DynamicSignedMultiplier(sel *rtl.Signal) MultiplierEncoderOption {
	return func(c *multiplierEncoderConfig) { c.signSelect = sel }
}

// NewMultiplierEncoder prepares the multiplier for row-by-row Booth encoding
// with the given RadixEncoder. It panics if both a static signed flag and a
// dynamic sign-selection signal are supplied: they are mutually exclusive.
func NewMultiplierEncoder(multiplier *rtl.Signal, encoder *RadixEncoder,
	opts ...MultiplierEncoderOption) *MultiplierEncoder {
	if multiplier == nil {
		Panicf("multiplier is nil")
	}
	if encoder == nil {
		Panicf("encoder is nil")
	}
	var config multiplierEncoderConfig
	for _, opt := range opts {
		opt(&config)
	}
	if config.signed && config.signSelect != nil {
		Panicf("SignedMultiplier and DynamicSignedMultiplier are mutually exclusive")
	}
	if config.signSelect != nil {
		config.signSelect.AssertWidth(1)
	}

	d := multiplier.Design()
	width := multiplier.Width()
	step := encoder.Step()
	msb := multiplier.Bit(width - 1)

	// Extension bit above the multiplier: its sign when signed, zero when
	// unsigned, and the AND of the two under a dynamic select.
	var ext *rtl.Signal
	switch {
	case config.signed:
		ext = msb
	case config.signSelect != nil:
		ext = rtl.And(config.signSelect, msb)
	default:
		ext = d.Zero(1)
	}

	// A statically signed multiplier is already sign-complete; otherwise one
	// extra position guarantees the top digit sees a non-negative sign.
	effective := width
	if !config.signed {
		effective++
	}
	rows := (effective + step - 1) / step

	extended := make([]*rtl.Signal, rows*step+1)
	extended[0] = d.Zero(1) // y[-1]
	for i := range extended[1:] {
		if i < width {
			extended[i+1] = multiplier.Bit(i)
		} else {
			extended[i+1] = ext
		}
	}

	return &MultiplierEncoder{
		encoder:    encoder,
		multiplier: multiplier,
		extended:   extended,
		rows:       rows,
	}
}

// Rows returns how many Booth digits (partial-product rows) the multiplier
// encodes into.
func (m *MultiplierEncoder) Rows() int { return m.rows }

// Radix returns the radix of the underlying RadixEncoder.
func (m *MultiplierEncoder) Radix() int { return m.encoder.Radix() }

// Encoding returns the Booth encoding of the given row. It panics if row is
// out of range.
func (m *MultiplierEncoder) Encoding(row int) RadixEncode {
	if row < 0 || row >= m.rows {
		Panicf("row %d out of range: multiplier %s encodes into %d rows",
			row, m.multiplier, m.rows)
	}
	step := m.encoder.Step()
	window := m.extended[row*step : row*step+step+1]
	return m.encoder.Encode(rtl.Concat(window...), row)
}
