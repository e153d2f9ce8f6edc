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
	"fmt"
	"math/big"

	. "github.com/gomlx/exceptions"
)

// SignalID is the unique id of a Signal within its Design.
type SignalID int

// opType identifies the operation that produced a signal.
type opType uint8

const (
	opInvalid opType = iota
	opInput
	opConst
	opNot
	opAnd
	opOr
	opXor
	opMux
	opConcat
	opSlice
	opZeroExtend
	opSignExtend
	opShiftLeft
	opAdd
	opSub
	opReduceAnd
	opReduceOr
	opReduceXor
	opRegister
)

var opTypeNames = [...]string{
	"invalid", "input", "const", "not", "and", "or", "xor", "mux", "concat",
	"slice", "zext", "sext", "shl", "add", "sub", "rand", "ror", "rxor", "reg",
}

func (op opType) String() string {
	if int(op) >= len(opTypeNames) {
		return fmt.Sprintf("opType(%d)", int(op))
	}
	return opTypeNames[op]
}

// Signal is one node of a Design's netlist: the result of an operation, with
// a fixed width in bits. Signals are immutable once created.
type Signal struct {
	design *Design
	id     SignalID
	op     opType
	width  int

	// inputs are the edges of the netlist DAG. Every input strictly precedes
	// this signal in creation order.
	inputs []*Signal

	// name is set for inputs only, for error messages and traces.
	name string

	// constValue is set for opConst.
	constValue *big.Int

	// arg0/arg1 hold static (non-signal) operands: slice bounds, shift amount.
	arg0, arg1 int
}

// Width of the signal in bits.
func (s *Signal) Width() int {
	if s == nil {
		return 0
	}
	return s.width
}

// ID of the signal within its Design.
func (s *Signal) ID() SignalID { return s.id }

// Design that holds this signal.
func (s *Signal) Design() *Design {
	if s == nil {
		return nil
	}
	return s.design
}

// Inputs are the signals that feed this one.
func (s *Signal) Inputs() []*Signal { return s.inputs }

// IsInput reports whether the signal is a primary input of the design.
func (s *Signal) IsInput() bool { return s.op == opInput }

// IsConst reports whether the signal is a constant.
func (s *Signal) IsConst() bool { return s.op == opConst }

// AssertValid panics if the signal is nil or detached from a design.
func (s *Signal) AssertValid() {
	if s == nil {
		Panicf("Signal is nil")
	}
	if s.design == nil {
		Panicf("Signal in an invalid state: not attached to a Design")
	}
}

// AssertWidth panics if the signal does not have the given width. It serves
// as documentation in code building larger structures.
func (s *Signal) AssertWidth(width int) {
	s.AssertValid()
	if s.width != width {
		Panicf("signal %s has width %d, wanted %d", s, s.width, width)
	}
}

func (s *Signal) String() string {
	if s == nil {
		return "Signal(nil)"
	}
	if s.op == opInput {
		return fmt.Sprintf("%s[%d]", s.name, s.width)
	}
	if s.op == opConst {
		return fmt.Sprintf("%d'h%s", s.width, s.constValue.Text(16))
	}
	return fmt.Sprintf("%s#%d[%d]", s.op, s.id, s.width)
}
