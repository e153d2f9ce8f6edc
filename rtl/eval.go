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
	mathbits "math/bits"

	"github.com/pkg/errors"
)

// Evaluator simulates a Design in software: bind the primary inputs to
// values, then evaluate any signal of the design. Values are
// arbitrary-precision unsigned bit patterns masked to each signal's width.
//
// Registers hold state: they power up at zero and advance together on Step.
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	design *Design
	inputs map[SignalID]*big.Int
	regs   map[SignalID]*big.Int
	cache  map[SignalID]*big.Int
}

// NewEvaluator creates an Evaluator for the design, with no inputs bound and
// all registers at zero.
func NewEvaluator(d *Design) *Evaluator {
	d.AssertValid()
	return &Evaluator{
		design: d,
		inputs: make(map[SignalID]*big.Int),
		regs:   make(map[SignalID]*big.Int),
		cache:  make(map[SignalID]*big.Int),
	}
}

// Bind sets the value of a primary input. It panics if the signal is not an
// input of this design or the value does not fit its width. It returns the
// evaluator to allow chaining.
func (e *Evaluator) Bind(input *Signal, value uint64) *Evaluator {
	return e.BindBig(input, new(big.Int).SetUint64(value))
}

// BindBig sets the value of a primary input from an arbitrary-precision
// unsigned value. See Bind.
func (e *Evaluator) BindBig(input *Signal, value *big.Int) *Evaluator {
	err := e.checkBindable(input, value)
	if err != nil {
		panic(errors.WithMessagef(err, "BindBig(%s)", input))
	}
	e.inputs[input.id] = new(big.Int).Set(value)
	e.cache = make(map[SignalID]*big.Int)
	return e
}

// BindSigned sets the value of a primary input from a signed value, stored as
// its two's complement bit pattern at the input's width. See Bind.
func (e *Evaluator) BindSigned(input *Signal, value int64) *Evaluator {
	v := big.NewInt(value)
	if v.Sign() < 0 {
		v.Add(v, pow2(input.Width()))
	}
	return e.BindBig(input, v)
}

func (e *Evaluator) checkBindable(input *Signal, value *big.Int) error {
	if input == nil {
		return errors.New("input signal is nil")
	}
	if input.design != e.design {
		return errors.Errorf("signal %s belongs to design %q, evaluator is for %q",
			input, input.design.name, e.design.name)
	}
	if !input.IsInput() {
		return errors.Errorf("signal %s is not a primary input", input)
	}
	if value.Sign() < 0 || value.BitLen() > input.width {
		return errors.Errorf("value %s does not fit input %s", value, input)
	}
	return nil
}

// Eval returns the current value of the signal as an unsigned big integer.
// It panics if the signal depends on an unbound input.
func (e *Evaluator) Eval(s *Signal) *big.Int {
	s.AssertValid()
	if s.design != e.design {
		panic(errors.Errorf("Eval(%s): signal belongs to design %q, evaluator is for %q",
			s, s.design.name, e.design.name))
	}
	return new(big.Int).Set(e.eval(s))
}

// EvalUint64 is Eval for signals up to 64 bits wide.
func (e *Evaluator) EvalUint64(s *Signal) uint64 {
	return e.eval(s).Uint64()
}

// EvalBit evaluates a 1-bit signal to 0 or 1.
func (e *Evaluator) EvalBit(s *Signal) uint {
	s.AssertWidth(1)
	return uint(e.eval(s).Uint64())
}

// Step advances all registers of the design by one clock edge: every
// register latches its data input (honoring reset and enable) simultaneously.
func (e *Evaluator) Step() {
	next := make(map[SignalID]*big.Int)
	for _, s := range e.design.signals {
		if s.op != opRegister {
			continue
		}
		data, reset, enable := registerPorts(s)
		switch {
		case reset != nil && e.eval(reset).Sign() != 0:
			next[s.id] = big.NewInt(0)
		case enable != nil && e.eval(enable).Sign() == 0:
			next[s.id] = e.regValue(s.id)
		default:
			next[s.id] = new(big.Int).Set(e.eval(data))
		}
	}
	e.regs = next
	e.cache = make(map[SignalID]*big.Int)
}

func (e *Evaluator) regValue(id SignalID) *big.Int {
	if v, ok := e.regs[id]; ok {
		return v
	}
	return big.NewInt(0)
}

func (e *Evaluator) eval(s *Signal) *big.Int {
	if v, ok := e.cache[s.id]; ok {
		return v
	}
	v := e.evalOp(s)
	e.cache[s.id] = v
	return v
}

func (e *Evaluator) evalOp(s *Signal) *big.Int {
	in := s.inputs
	switch s.op {
	case opInput:
		v, ok := e.inputs[s.id]
		if !ok {
			panic(errors.Errorf("input %s is not bound", s))
		}
		return v
	case opConst:
		return s.constValue
	case opNot:
		return new(big.Int).Xor(e.eval(in[0]), mask(s.width))
	case opAnd:
		return e.evalNary(in, func(acc, v *big.Int) { acc.And(acc, v) })
	case opOr:
		return e.evalNary(in, func(acc, v *big.Int) { acc.Or(acc, v) })
	case opXor:
		return e.evalNary(in, func(acc, v *big.Int) { acc.Xor(acc, v) })
	case opMux:
		if e.eval(in[0]).Sign() != 0 {
			return e.eval(in[1])
		}
		return e.eval(in[2])
	case opConcat:
		out := new(big.Int)
		offset := 0
		for _, p := range in {
			out.Or(out, new(big.Int).Lsh(e.eval(p), uint(offset)))
			offset += p.width
		}
		return out
	case opSlice:
		out := new(big.Int).Rsh(e.eval(in[0]), uint(s.arg0))
		return out.And(out, mask(s.width))
	case opZeroExtend:
		return e.eval(in[0])
	case opSignExtend:
		v := e.eval(in[0])
		if v.Bit(in[0].width-1) == 0 {
			return v
		}
		ext := new(big.Int).Lsh(mask(s.width-in[0].width), uint(in[0].width))
		return ext.Or(ext, v)
	case opShiftLeft:
		out := new(big.Int).Lsh(e.eval(in[0]), uint(s.arg0))
		return out.And(out, mask(s.width))
	case opAdd:
		out := new(big.Int).Add(e.eval(in[0]), e.eval(in[1]))
		return out.And(out, mask(s.width))
	case opSub:
		out := new(big.Int).Sub(e.eval(in[0]), e.eval(in[1]))
		out.Add(out, pow2(s.width))
		return out.And(out, mask(s.width))
	case opReduceAnd:
		if e.eval(in[0]).Cmp(mask(in[0].width)) == 0 {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case opReduceOr:
		if e.eval(in[0]).Sign() != 0 {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case opReduceXor:
		return big.NewInt(int64(popCount(e.eval(in[0])) & 1))
	case opRegister:
		return e.regValue(s.id)
	}
	panic(errors.Errorf("cannot evaluate signal %s: unknown operation", s))
}

func (e *Evaluator) evalNary(in []*Signal, combine func(acc, v *big.Int)) *big.Int {
	acc := new(big.Int).Set(e.eval(in[0]))
	for _, x := range in[1:] {
		combine(acc, e.eval(x))
	}
	return acc
}

// Signed reinterprets a width-bit unsigned pattern as a two's complement
// signed value.
func Signed(v *big.Int, width int) *big.Int {
	if v.Bit(width-1) == 0 {
		return new(big.Int).Set(v)
	}
	return new(big.Int).Sub(v, pow2(width))
}

func mask(width int) *big.Int {
	m := pow2(width)
	return m.Sub(m, big.NewInt(1))
}

func pow2(width int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(width))
}

func popCount(v *big.Int) int {
	count := 0
	for _, w := range v.Bits() {
		count += mathbits.OnesCount(uint(w))
	}
	return count
}
