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

// The bit compressors are the leaf combinational primitives of the
// compression tree: stateless half and full adders over 1-bit signals.

// compress2 is a half adder: sum = a XOR b, carry = a AND b.
func compress2(a, b *rtl.Signal) (sum, carry *rtl.Signal) {
	sum = rtl.Xor(a, b)
	carry = rtl.And(a, b)
	return
}

// compress3 is a full adder: sum is the parity of the inputs, carry their
// majority, built as a mux on the first input.
func compress3(a, b, c *rtl.Signal) (sum, carry *rtl.Signal) {
	sum = rtl.Xor(a, b, c)
	carry = rtl.Mux(a, rtl.Or(b, c), rtl.And(b, c))
	return
}

// compressBits dispatches to the right compressor for 2 or 3 inputs.
func compressBits(inputs []*rtl.Signal) (sum, carry *rtl.Signal) {
	switch len(inputs) {
	case 2:
		return compress2(inputs[0], inputs[1])
	case 3:
		return compress3(inputs[0], inputs[1], inputs[2])
	}
	Panicf("bit compressors take 2 or 3 inputs, got %d", len(inputs))
	return nil, nil
}
