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

// MaxRadix is the largest Booth radix supported by the encoder and selector.
const MaxRadix = 16

// RadixEncode is the Booth encoding of one multiplier slice: a one-hot
// magnitude selector plus the digit sign.
//
// Multiples has one bit per candidate multiple 1x..(radix/2)x; at most one of
// them is ever set (zero digits select none). Sign is 1 when the digit is
// negative, in which case the selected multiple must be two's complement
// negated by the consumer.
type RadixEncode struct {
	Multiples *rtl.Signal
	Sign      *rtl.Signal
}

// RadixEncoder recodes overlapping slices of a multiplier into signed Booth
// digits for a fixed power-of-two radix. It is a pure function of the slice:
// all multiplier management (extension, overlap) lives in MultiplierEncoder.
//
// The classic radix-4 recode (3-bit window selecting a digit in -2..2)
// corresponds to NewRadixEncoder(4); any power of two up to MaxRadix works
// the same way with a window of log2(radix)+1 bits and digits in
// -radix/2..radix/2.
type RadixEncoder struct {
	radix int
	step  int // log2(radix): multiplier bits consumed per digit
}

// NewRadixEncoder creates an encoder for the given radix, which must be a
// power of two between 2 and MaxRadix. Anything else is a configuration
// error and panics.
func NewRadixEncoder(radix int) *RadixEncoder {
	if radix < 2 || radix > MaxRadix || bits.OnesCount(uint(radix)) != 1 {
		Panicf("radix must be a power of two in 2..%d, got %d", MaxRadix, radix)
	}
	return &RadixEncoder{
		radix: radix,
		step:  bits.TrailingZeros(uint(radix)),
	}
}

// Radix returns the encoder's radix.
func (e *RadixEncoder) Radix() int { return e.radix }

// Step returns how many multiplier bits each digit consumes: log2(radix).
func (e *RadixEncoder) Step() int { return e.step }

// SliceWidth returns the window width Encode expects: Step()+1, the extra
// bit being the overlap with the previous digit.
func (e *RadixEncoder) SliceWidth() int { return e.step + 1 }

// Encode recodes one multiplier window into a Booth digit. slice must be
// SliceWidth() bits wide, with the overlap bit (the top bit of the previous
// window, or zero for row 0) in its least significant position. row is used
// only for error messages.
//
// The digit's value is (signed(slice) + slice[0]) / 2. Its magnitude is
// recovered by recoding the window against its own sign bit: with
// c[i] = slice[i] XOR slice[top], magnitude m is selected exactly when the
// c word equals 2m or 2m-1 -- the two window patterns of the +-m pair. Each
// candidate compare is an AND of per-bit senses, so the result is one-hot by
// construction. Sign is the window's top bit.
func (e *RadixEncoder) Encode(slice *rtl.Signal, row int) RadixEncode {
	if slice == nil {
		Panicf("row %d: slice is nil", row)
	}
	if slice.Width() != e.SliceWidth() {
		Panicf("row %d: slice must be %d bits wide for radix %d, got %d",
			row, e.SliceWidth(), e.radix, slice.Width())
	}
	k := e.step
	sign := slice.Bit(k)

	recoded := make([]*rtl.Signal, k)
	for i := range recoded {
		recoded[i] = rtl.Xor(slice.Bit(i), sign)
	}

	sels := make([]*rtl.Signal, e.radix/2)
	for m := 1; m <= e.radix/2; m++ {
		even := 2 * m
		odd := 2*m - 1
		sel := matchWord(recoded, odd)
		if even < 1<<k {
			sel = rtl.Or(sel, matchWord(recoded, even))
		}
		sels[m-1] = sel
	}
	return RadixEncode{
		Multiples: rtl.Concat(sels...),
		Sign:      sign,
	}
}

// matchWord builds the compare of the recoded word against the constant
// pattern: AND of one sense per bit.
func matchWord(word []*rtl.Signal, pattern int) *rtl.Signal {
	senses := make([]*rtl.Signal, len(word))
	for i, bit := range word {
		if pattern&(1<<i) != 0 {
			senses[i] = bit
		} else {
			senses[i] = rtl.Not(bit)
		}
	}
	return rtl.And(senses...)
}
