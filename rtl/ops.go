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

package rtl

import (
	"math/big"

	. "github.com/gomlx/exceptions"
)

// Input declares a primary input of the given width.
func (d *Design) Input(name string, width int) *Signal {
	d.AssertValid()
	if width <= 0 {
		Panicf("input %q must have a positive width, got %d", name, width)
	}
	s := d.newSignal(opInput, width)
	s.name = name
	return s
}

// Constant creates a constant signal of the given width holding value.
// It panics if value does not fit in width bits.
func (d *Design) Constant(width int, value uint64) *Signal {
	return d.ConstantBig(width, new(big.Int).SetUint64(value))
}

// ConstantBig creates a constant signal of the given width holding value.
// It panics if value is negative or does not fit in width bits.
func (d *Design) ConstantBig(width int, value *big.Int) *Signal {
	d.AssertValid()
	if value.Sign() < 0 {
		Panicf("constants are unsigned bit patterns, got negative value %s", value)
	}
	if value.BitLen() > width {
		Panicf("constant %s does not fit in %d bits", value, width)
	}
	s := d.newSignal(opConst, width)
	s.constValue = new(big.Int).Set(value)
	return s
}

// Zero returns a constant zero of the given width.
func (d *Design) Zero(width int) *Signal { return d.Constant(width, 0) }

// Not returns the bitwise complement of x.
func Not(x *Signal) *Signal {
	d := validateBuildingDesignFromInputs(x)
	return d.newSignal(opNot, x.width, x)
}

// And returns the bitwise AND of the given signals, which must all have the
// same width. A single signal is returned unchanged.
func And(xs ...*Signal) *Signal { return naryBitwise(opAnd, xs) }

// Or returns the bitwise OR of the given signals, which must all have the
// same width. A single signal is returned unchanged.
func Or(xs ...*Signal) *Signal { return naryBitwise(opOr, xs) }

// Xor returns the bitwise XOR of the given signals, which must all have the
// same width. A single signal is returned unchanged.
func Xor(xs ...*Signal) *Signal { return naryBitwise(opXor, xs) }

func naryBitwise(op opType, xs []*Signal) *Signal {
	d := validateBuildingDesignFromInputs(xs...)
	w := xs[0].width
	for _, x := range xs[1:] {
		if x.width != w {
			Panicf("%s requires same-width operands, got %s and %s", op, xs[0], x)
		}
	}
	if len(xs) == 1 {
		return xs[0]
	}
	return d.newSignal(op, w, xs...)
}

// Mux returns onTrue where sel is 1 and onFalse where sel is 0. sel must be
// 1 bit wide; onTrue and onFalse must have the same width.
func Mux(sel, onTrue, onFalse *Signal) *Signal {
	d := validateBuildingDesignFromInputs(sel, onTrue, onFalse)
	sel.AssertWidth(1)
	if onTrue.width != onFalse.width {
		Panicf("Mux branches must have the same width, got %s and %s", onTrue, onFalse)
	}
	return d.newSignal(opMux, onTrue.width, sel, onTrue, onFalse)
}

// Concat concatenates the given signals into one, least-significant part
// first: Concat(a, b) has a in the low bits and b in the high bits.
func Concat(parts ...*Signal) *Signal {
	d := validateBuildingDesignFromInputs(parts...)
	if len(parts) == 1 {
		return parts[0]
	}
	width := 0
	for _, p := range parts {
		width += p.width
	}
	return d.newSignal(opConcat, width, parts...)
}

// Bit returns the 1-bit signal at position i (0 is the least significant).
func (s *Signal) Bit(i int) *Signal { return s.Slice(i, i+1) }

// Slice returns bits [lo, hi) of the signal, hi exclusive.
func (s *Signal) Slice(lo, hi int) *Signal {
	d := validateBuildingDesignFromInputs(s)
	if lo < 0 || hi > s.width || lo >= hi {
		Panicf("invalid slice [%d, %d) of %s", lo, hi, s)
	}
	out := d.newSignal(opSlice, hi-lo, s)
	out.arg0, out.arg1 = lo, hi
	return out
}

// ZeroExtend widens x to the given width with zero bits. It panics if width
// is smaller than x's width; equal width returns x unchanged.
func ZeroExtend(x *Signal, width int) *Signal { return extend(opZeroExtend, x, width) }

// SignExtend widens x to the given width replicating its most significant
// bit. It panics if width is smaller than x's width; equal width returns x
// unchanged.
func SignExtend(x *Signal, width int) *Signal { return extend(opSignExtend, x, width) }

func extend(op opType, x *Signal, width int) *Signal {
	d := validateBuildingDesignFromInputs(x)
	if width < x.width {
		Panicf("cannot %s %s to narrower width %d", op, x, width)
	}
	if width == x.width {
		return x
	}
	return d.newSignal(op, width, x)
}

// ShiftLeft shifts x left by the static amount, keeping its width: the high
// bits fall off and zeros enter at the bottom (arithmetic mod 2^width).
func ShiftLeft(x *Signal, amount int) *Signal {
	d := validateBuildingDesignFromInputs(x)
	if amount < 0 {
		Panicf("ShiftLeft amount must be non-negative, got %d", amount)
	}
	if amount == 0 {
		return x
	}
	out := d.newSignal(opShiftLeft, x.width, x)
	out.arg0 = amount
	return out
}

// Add returns a+b mod 2^width. The operands must have the same width.
func Add(a, b *Signal) *Signal { return arith(opAdd, a, b) }

// Sub returns a-b mod 2^width. The operands must have the same width.
func Sub(a, b *Signal) *Signal { return arith(opSub, a, b) }

func arith(op opType, a, b *Signal) *Signal {
	d := validateBuildingDesignFromInputs(a, b)
	if a.width != b.width {
		Panicf("%s requires same-width operands, got %s and %s", op, a, b)
	}
	return d.newSignal(op, a.width, a, b)
}

// ReduceAnd returns the 1-bit AND of all bits of x.
func ReduceAnd(x *Signal) *Signal { return reduce(opReduceAnd, x) }

// ReduceOr returns the 1-bit OR of all bits of x.
func ReduceOr(x *Signal) *Signal { return reduce(opReduceOr, x) }

// ReduceXor returns the 1-bit XOR (parity) of all bits of x.
func ReduceXor(x *Signal) *Signal { return reduce(opReduceXor, x) }

func reduce(op opType, x *Signal) *Signal {
	d := validateBuildingDesignFromInputs(x)
	if x.width == 1 {
		return x
	}
	return d.newSignal(op, 1, x)
}
