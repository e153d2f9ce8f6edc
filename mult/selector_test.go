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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/gohdl/gohdl/mult"
	"github.com/gohdl/gohdl/rtl"
)

func TestNewMultiplicandSelectorValidation(t *testing.T) {
	d := rtl.NewDesign("selector")
	x := d.Input("x", 4)
	for _, radix := range []int{0, 1, 3, 6, 32, 64} {
		require.Panics(t, func() { NewMultiplicandSelector(radix, x) },
			"radix %d", radix)
	}
	for _, radix := range []int{2, 4, 8, 16} {
		require.NotPanics(t, func() { NewMultiplicandSelector(radix, x) },
			"radix %d", radix)
	}
	sel := d.Input("sel", 1)
	require.Panics(t, func() {
		NewMultiplicandSelector(4, x, SignedMultiplicand(), DynamicSignedMultiplicand(sel))
	})
	require.Panics(t, func() { NewMultiplicandSelector(4, x, SelectorWidth(2)) },
		"width narrower than the multiplicand")
}

// Every precomputed multiple must equal m*x at the selector width, for both
// unsigned and signed multiplicands.
func TestMultiplicandSelectorMultiples(t *testing.T) {
	const width = 4
	for _, signed := range []bool{false, true} {
		t.Run(fmt.Sprintf("signed=%v", signed), func(t *testing.T) {
			d := rtl.NewDesign("selector")
			x := d.Input("x", width)
			var opts []MultiplicandSelectorOption
			if signed {
				opts = append(opts, SignedMultiplicand())
			}
			s := NewMultiplicandSelector(8, x, opts...)
			require.Equal(t, width+3, s.Width())
			mask := uint64(1)<<s.Width() - 1
			for value := uint64(0); value < 1<<width; value++ {
				e := rtl.NewEvaluator(d)
				e.Bind(x, value)
				extended := value
				if signed && value >= 1<<(width-1) {
					extended = (value - 1<<width) & mask
				}
				for m := 1; m <= 4; m++ {
					want := uint64(m) * extended & mask
					assert.Equal(t, want, e.EvalUint64(s.Multiple(m)),
						"%d * %d", m, value)
				}
			}
		})
	}
}

func TestMultiplicandSelectorMultipleOutOfRange(t *testing.T) {
	d := rtl.NewDesign("selector")
	s := NewMultiplicandSelector(8, d.Input("x", 4))
	require.Panics(t, func() { s.Multiple(0) })
	require.Panics(t, func() { s.Multiple(5) })
}

// constEncode builds a RadixEncode from constants: magnitude m (0 meaning no
// multiple selected) and an explicit sign bit.
func constEncode(d *rtl.Design, radix, m int, sign uint64) RadixEncode {
	multiples := uint64(0)
	if m > 0 {
		multiples = 1 << (m - 1)
	}
	return RadixEncode{
		Multiples: d.Constant(radix/2, multiples),
		Sign:      d.Constant(1, sign),
	}
}

// Select(col, encode) must read bit col of the selected multiple, inverted
// when the sign is set.
func TestMultiplicandSelectorSelect(t *testing.T) {
	const width = 5
	d := rtl.NewDesign("selector")
	x := d.Input("x", width)
	s := NewMultiplicandSelector(8, x, SignedMultiplicand())
	mask := uint64(1)<<s.Width() - 1

	for value := int64(-16); value < 16; value++ {
		e := rtl.NewEvaluator(d)
		e.BindSigned(x, value)
		for m := 1; m <= 4; m++ {
			for _, sign := range []uint64{0, 1} {
				encode := constEncode(d, 8, m, sign)
				product := uint64(int64(m)*value) & mask
				for col := 0; col < s.Width(); col++ {
					want := product >> col & 1 ^ sign
					require.EqualValues(t, want, e.EvalBit(s.Select(col, encode)),
						"%d * %d, sign %d, column %d", m, value, sign, col)
				}
			}
		}
	}
}

// A zero selector (digit 0) yields the bare sign on every column.
func TestMultiplicandSelectorSelectZero(t *testing.T) {
	d := rtl.NewDesign("selector")
	x := d.Input("x", 4)
	s := NewMultiplicandSelector(4, x)
	e := rtl.NewEvaluator(d)
	e.Bind(x, 13)
	for _, sign := range []uint64{0, 1} {
		encode := constEncode(d, 4, 0, sign)
		for col := 0; col < s.Width(); col++ {
			assert.EqualValues(t, sign, e.EvalBit(s.Select(col, encode)))
		}
	}
}

func TestMultiplicandSelectorSelectColumnOutOfRange(t *testing.T) {
	d := rtl.NewDesign("selector")
	s := NewMultiplicandSelector(4, d.Input("x", 4))
	encode := constEncode(d, 4, 1, 0)
	require.Panics(t, func() { s.Select(-1, encode) })
	require.Panics(t, func() { s.Select(s.Width(), encode) })
}
