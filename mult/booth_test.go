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

package mult_test

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/gohdl/gohdl/mult"
	"github.com/gohdl/gohdl/rtl"
)

// boothDigit computes the Booth digit a window of k+1 bits encodes, with the
// overlap bit in the least significant position: (signed(window)+overlap)/2.
func boothDigit(window, k int) int {
	signed := window
	if window>>(k) != 0 {
		signed -= 1 << (k + 1)
	}
	return (signed + window&1) / 2
}

func TestNewRadixEncoderValidation(t *testing.T) {
	for _, radix := range []int{0, 1, 3, 5, 12, 32, 64} {
		require.Panicsf(t, func() { NewRadixEncoder(radix) }, "radix %d", radix)
	}
	for _, radix := range []int{2, 4, 8, 16} {
		enc := NewRadixEncoder(radix)
		require.Equal(t, radix, enc.Radix())
		require.Equal(t, bits.TrailingZeros(uint(radix)), enc.Step())
		require.Equal(t, enc.Step()+1, enc.SliceWidth())
	}
}

func TestEncodeSliceWidthMismatch(t *testing.T) {
	d := rtl.NewDesign("booth")
	enc := NewRadixEncoder(8)
	require.Panics(t, func() { enc.Encode(d.Input("s", 3), 0) })
	require.Panics(t, func() { enc.Encode(d.Input("s", 5), 0) })
	require.Panics(t, func() { enc.Encode(nil, 0) })
}

// Every syntactically valid window must select at most one multiple, and the
// selected magnitude and sign must match the Booth digit.
func TestEncodeOneHot(t *testing.T) {
	for _, radix := range []int{2, 4, 8, 16} {
		t.Run(fmt.Sprintf("radix%d", radix), func(t *testing.T) {
			enc := NewRadixEncoder(radix)
			k := enc.Step()
			d := rtl.NewDesign("booth")
			for window := 0; window < 1<<(k+1); window++ {
				encode := enc.Encode(d.Constant(k+1, uint64(window)), 0)
				require.Equal(t, radix/2, encode.Multiples.Width())

				e := rtl.NewEvaluator(d)
				multiples := e.EvalUint64(encode.Multiples)
				sign := e.EvalBit(encode.Sign)
				assert.LessOrEqual(t, bits.OnesCount64(multiples), 1,
					"window %0*b selects more than one multiple", k+1, window)
				assert.EqualValues(t, window>>k, sign,
					"sign must be the window's top bit")

				digit := boothDigit(window, k)
				if digit == 0 {
					assert.Zero(t, multiples, "window %0*b encodes digit 0", k+1, window)
				} else {
					magnitude := digit
					if magnitude < 0 {
						magnitude = -magnitude
					}
					assert.EqualValues(t, 1<<(magnitude-1), multiples,
						"window %0*b encodes digit %d", k+1, window, digit)
				}
			}
		})
	}
}

// Radix-8 truth table, enumerated: one row per 4-bit window, giving the
// expected one-hot multiples vector and sign.
func TestEncodeRadixEightTruthTable(t *testing.T) {
	want := []struct {
		multiples uint64
		sign      uint
	}{
		{0b0000, 0}, // 0000 -> +0
		{0b0001, 0}, // 0001 -> +1
		{0b0001, 0}, // 0010 -> +1
		{0b0010, 0}, // 0011 -> +2
		{0b0010, 0}, // 0100 -> +2
		{0b0100, 0}, // 0101 -> +3
		{0b0100, 0}, // 0110 -> +3
		{0b1000, 0}, // 0111 -> +4
		{0b1000, 1}, // 1000 -> -4
		{0b0100, 1}, // 1001 -> -3
		{0b0100, 1}, // 1010 -> -3
		{0b0010, 1}, // 1011 -> -2
		{0b0010, 1}, // 1100 -> -2
		{0b0001, 1}, // 1101 -> -1
		{0b0001, 1}, // 1110 -> -1
		{0b0000, 1}, // 1111 -> -0
	}
	enc := NewRadixEncoder(8)
	d := rtl.NewDesign("booth")
	for window, expected := range want {
		encode := enc.Encode(d.Constant(4, uint64(window)), 0)
		e := rtl.NewEvaluator(d)
		assert.Equal(t, expected.multiples, e.EvalUint64(encode.Multiples),
			"window %04b", window)
		assert.Equal(t, expected.sign, e.EvalBit(encode.Sign), "window %04b", window)
	}
}
