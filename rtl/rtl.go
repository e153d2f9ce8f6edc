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

// Package rtl provides the signal substrate used to elaborate hardware
// structures in Go: a Design holds a netlist of width-carrying Signal nodes,
// created by combinational operations (bitwise logic, mux, concat, shifts,
// extension, add/sub, reductions) and a clocked register primitive.
//
// The main elements in the package are:
//
//   - Design: container for a netlist under construction. Everything is built
//     within the scope of one Design; combining signals from different designs
//     panics.
//
//   - Signal: the result of an operation. Each signal has a fixed width known
//     at "design building time". Signals are immutable once created, so the
//     netlist is always a DAG.
//
//   - Evaluator: a software simulation of the built netlist. Inputs are bound
//     to arbitrary-precision integers and any signal can then be evaluated;
//     registers advance on Evaluator.Step.
//
// # Error handling
//
// Building a netlist is an elaboration-time activity, analogous to compiling:
// a malformed construction (width mismatch, cross-design signal, invalid
// slice range) is a programmer error and panics immediately with a
// descriptive message, following the exceptions idiom of
// github.com/gomlx/exceptions. There is no deferred or degraded-mode path.
package rtl

import (
	"fmt"

	. "github.com/gomlx/exceptions"
)

// Design is a netlist under construction. Create one with NewDesign, then use
// the Signal constructors (Design.Input, Design.Constant, And, Xor, Mux, ...)
// to grow it. A Design is not safe for concurrent use.
type Design struct {
	name    string
	signals []*Signal
}

// NewDesign creates an empty Design with the given name. The name is only
// used for error messages and debugging.
func NewDesign(name string) *Design {
	return &Design{name: name}
}

// Name of the design, as given to NewDesign.
func (d *Design) Name() string { return d.name }

// NumSignals returns how many signals have been created in the design so far.
func (d *Design) NumSignals() int { return len(d.signals) }

// SignalByID returns the signal with the given id. It panics if the id is out
// of range.
func (d *Design) SignalByID(id SignalID) *Signal {
	d.AssertValid()
	if id < 0 || int(id) >= len(d.signals) {
		Panicf("design %q has no signal #%d", d.name, id)
	}
	return d.signals[id]
}

// AssertValid panics if the design is nil.
func (d *Design) AssertValid() {
	if d == nil {
		Panicf("Design is nil")
	}
}

func (d *Design) String() string {
	return fmt.Sprintf("Design(%q, %d signals)", d.name, len(d.signals))
}

// newSignal appends a signal to the design and assigns its id.
func (d *Design) newSignal(op opType, width int, inputs ...*Signal) *Signal {
	if width <= 0 {
		Panicf("cannot create %s signal with width %d in design %q", op, width, d.name)
	}
	s := &Signal{
		design: d,
		id:     SignalID(len(d.signals)),
		op:     op,
		width:  width,
		inputs: inputs,
	}
	d.signals = append(d.signals, s)
	return s
}

// validateBuildingDesignFromInputs panics if any input signal is nil or if the
// inputs belong to different designs. It returns the common design.
func validateBuildingDesignFromInputs(inputs ...*Signal) *Design {
	if len(inputs) == 0 {
		Panicf("operation requires at least one input signal")
	}
	var d *Design
	for ii, s := range inputs {
		if s == nil {
			Panicf("input signal #%d is nil", ii)
		}
		s.AssertValid()
		if d == nil {
			d = s.design
		} else if s.design != d {
			Panicf("cannot combine signals from different designs (%q and %q)",
				d.name, s.design.name)
		}
	}
	return d
}
