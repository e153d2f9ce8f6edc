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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/gohdl/gohdl/mult"
	"github.com/gohdl/gohdl/rtl"
)

// productOf evaluates the carry-save rows back into the product, reduced to
// the product width.
func productOf(e *rtl.Evaluator, m *Multiplier) uint64 {
	mask := uint64(1)<<m.Width() - 1
	return (e.EvalUint64(m.Add0) + e.EvalUint64(m.Add1)) & mask
}

func TestMultiplierExhaustiveUnsigned(t *testing.T) {
	d := rtl.NewDesign("mult")
	x := d.Input("x", 4)
	y := d.Input("y", 4)
	m := New(x, y)
	require.Equal(t, 8, m.Width())
	for vx := uint64(0); vx < 16; vx++ {
		for vy := uint64(0); vy < 16; vy++ {
			e := rtl.NewEvaluator(d)
			e.Bind(x, vx).Bind(y, vy)
			require.Equal(t, vx*vy, productOf(e, m), "%d * %d", vx, vy)
		}
	}
}

func TestMultiplierExhaustiveSigned(t *testing.T) {
	d := rtl.NewDesign("mult")
	x := d.Input("x", 4)
	y := d.Input("y", 4)
	m := New(x, y, WithSigned())
	for vx := int64(-8); vx < 8; vx++ {
		for vy := int64(-8); vy < 8; vy++ {
			e := rtl.NewEvaluator(d)
			e.BindSigned(x, vx).BindSigned(y, vy)
			want := uint64(vx*vy) & 0xFF
			require.Equal(t, want, productOf(e, m), "%d * %d", vx, vy)
		}
	}
}

func TestMultiplierRadices(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, radix := range []int{2, 4, 8, 16} {
		for _, signed := range []bool{false, true} {
			t.Run(fmt.Sprintf("radix%d_signed=%v", radix, signed), func(t *testing.T) {
				d := rtl.NewDesign("mult")
				x := d.Input("x", 8)
				y := d.Input("y", 8)
				opts := []MultiplierOption{WithRadix(radix)}
				if signed {
					opts = append(opts, WithSigned())
				}
				m := New(x, y, opts...)
				for trial := 0; trial < 200; trial++ {
					vx := rng.Uint64() & 0xFF
					vy := rng.Uint64() & 0xFF
					e := rtl.NewEvaluator(d)
					e.Bind(x, vx).Bind(y, vy)
					want := vx * vy
					if signed {
						want = uint64(rtl.Signed(e.Eval(x), 8).Int64()*
							rtl.Signed(e.Eval(y), 8).Int64()) & 0xFFFF
					}
					require.Equal(t, want, productOf(e, m),
						"radix %d: %d * %d (signed=%v)", radix, vx, vy, signed)
				}
			})
		}
	}
}

func TestMultiplierDynamicSign(t *testing.T) {
	d := rtl.NewDesign("mult")
	x := d.Input("x", 6)
	y := d.Input("y", 6)
	sel := d.Input("signed", 1)
	m := New(x, y, WithRadix(8), WithDynamicSigned(sel))
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		vx := rng.Uint64() & 0x3F
		vy := rng.Uint64() & 0x3F
		e := rtl.NewEvaluator(d)
		e.Bind(x, vx).Bind(y, vy)

		e.Bind(sel, 0)
		require.Equal(t, vx*vy&0xFFF, productOf(e, m),
			"unsigned %d * %d", vx, vy)

		e.Bind(sel, 1)
		sx := rtl.Signed(e.Eval(x), 6).Int64()
		sy := rtl.Signed(e.Eval(y), 6).Int64()
		require.Equal(t, uint64(sx*sy)&0xFFF, productOf(e, m),
			"signed %d * %d", sx, sy)
	}
}

func TestMultiplierMixedWidths(t *testing.T) {
	d := rtl.NewDesign("mult")
	x := d.Input("x", 5)
	y := d.Input("y", 9)
	m := New(x, y, WithSigned())
	require.Equal(t, 14, m.Width())
	rng := rand.New(rand.NewSource(3))
	mask := uint64(1)<<14 - 1
	for trial := 0; trial < 300; trial++ {
		vx := int64(rng.Intn(32) - 16)
		vy := int64(rng.Intn(512) - 256)
		e := rtl.NewEvaluator(d)
		e.BindSigned(x, vx).BindSigned(y, vy)
		require.Equal(t, uint64(vx*vy)&mask, productOf(e, m),
			"%d * %d", vx, vy)
	}
}

func TestMultiplierNarrowOperand(t *testing.T) {
	d := rtl.NewDesign("mult")
	x := d.Input("x", 1)
	y := d.Input("y", 1)
	m := New(x, y)
	require.Equal(t, 2, m.Width())
	for vx := uint64(0); vx < 2; vx++ {
		for vy := uint64(0); vy < 2; vy++ {
			e := rtl.NewEvaluator(d)
			e.Bind(x, vx).Bind(y, vy)
			assert.Equal(t, vx*vy, productOf(e, m))
		}
	}
}

func TestMultiplierConfigConflict(t *testing.T) {
	d := rtl.NewDesign("mult")
	x := d.Input("x", 4)
	y := d.Input("y", 4)
	sel := d.Input("sel", 1)
	require.Panics(t, func() { New(x, y, WithSigned(), WithDynamicSigned(sel)) })
	require.Panics(t, func() { New(x, y, WithRadix(6)) })
	require.Panics(t, func() { New(nil, y) })
}

func TestMultiplierRegistered(t *testing.T) {
	d := rtl.NewDesign("mult")
	x := d.Input("x", 8)
	y := d.Input("y", 8)
	clk := d.Input("clk", 1)
	m := New(x, y, WithOutputMode(Registered(clk, nil, nil)))

	e := rtl.NewEvaluator(d)
	e.Bind(x, 23).Bind(y, 19)
	assert.Zero(t, productOf(e, m), "registers start cleared")
	e.Step()
	assert.EqualValues(t, 23*19, productOf(e, m))

	// A new operand pair shows up only after the next edge.
	e.Bind(x, 200).Bind(y, 3)
	assert.EqualValues(t, 23*19, productOf(e, m))
	e.Step()
	assert.EqualValues(t, 600, productOf(e, m))
}

func TestMultiplierIntrospection(t *testing.T) {
	d := rtl.NewDesign("mult")
	m := New(d.Input("x", 8), d.Input("y", 8), WithRadix(4))
	assert.Equal(t, 5, m.Encoder().Rows())
	assert.Equal(t, 4, m.Selector().Radix())
	assert.Equal(t, 16, m.Selector().Width())
	assert.Equal(t, 16, m.Compressor().MaxWidth())
	assert.LessOrEqual(t, m.Compressor().ColumnDepth(0), 2)
}
