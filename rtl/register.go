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
	. "github.com/gomlx/exceptions"
)

// Register creates a clocked register: its output follows data one clock
// edge later. This is the only place clock-edge semantics enter the netlist.
//
// reset (synchronous, clears to zero) and enable (holds the current value
// while low) are optional and may be nil; both must be 1 bit wide when given.
// The register powers up at zero.
//
// The Evaluator advances all registers together on Evaluator.Step; clk exists
// so the netlist records its clock domain, but simulation assumes a single
// domain.
func Register(clk, data, reset, enable *Signal) *Signal {
	d := validateBuildingDesignFromInputs(clk, data)
	clk.AssertWidth(1)
	inputs := []*Signal{clk, data}
	hasReset, hasEnable := 0, 0
	if reset != nil {
		validateBuildingDesignFromInputs(clk, reset)
		reset.AssertWidth(1)
		inputs = append(inputs, reset)
		hasReset = 1
	}
	if enable != nil {
		validateBuildingDesignFromInputs(clk, enable)
		enable.AssertWidth(1)
		inputs = append(inputs, enable)
		hasEnable = 1
	}
	out := d.newSignal(opRegister, data.width, inputs...)
	out.arg0, out.arg1 = hasReset, hasEnable
	return out
}

// registerPorts decodes the optional inputs of an opRegister signal.
func registerPorts(s *Signal) (data, reset, enable *Signal) {
	if s.op != opRegister {
		Panicf("signal %s is not a register", s)
	}
	data = s.inputs[1]
	next := 2
	if s.arg0 == 1 {
		reset = s.inputs[next]
		next++
	}
	if s.arg1 == 1 {
		enable = s.inputs[next]
	}
	return
}
