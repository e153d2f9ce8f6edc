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
	"fmt"

	"github.com/gohdl/gohdl/rtl"
)

// TermKind tags what produced a compression term.
type TermKind uint8

//go:generate go run github.com/dmarkham/enumer -type=TermKind -trimprefix=Term

const (
	TermInvalid TermKind = iota
	// TermPartialProduct is an original bit of the input matrix.
	TermPartialProduct
	// TermSum is the sum output of a bit compressor.
	TermSum
	// TermCarry is the carry output of a bit compressor.
	TermCarry
)

// Abstract logic depth added by each compressor output on top of its
// slowest input. Partial products are primary inputs at depth zero. The
// carry path of a half/full adder is one gate shorter than the sum path.
const (
	sumLatency   = 1.0
	carryLatency = 0.75
)

// TermID indexes a term inside its ColumnCompressor's arena. Inputs of a
// term are always created before it, so the term graph is trivially acyclic.
type TermID int32

// CompressTerm is one provenance-tracked node of the compression tree: a
// partial-product bit, or the sum or carry output of a bit compressor. It
// records enough to recompute its own value independently of the live
// netlist, which the evaluator uses to catch tree-construction bugs.
//
// Terms are created once and never mutated afterwards.
type CompressTerm struct {
	kind   TermKind
	id     TermID
	inputs []TermID // arena indices of the compressor inputs; empty for partial products

	// row and col locate a partial product in the input matrix; for sum and
	// carry terms row is -1 and col is the column the term was inserted into.
	row, col int

	// signal is the live 1-bit netlist value of the term.
	signal *rtl.Signal

	// delay estimates the combinational logic depth from primary inputs.
	delay float64
}

// Kind of the term.
func (t *CompressTerm) Kind() TermKind { return t.kind }

// ID of the term within its compressor's arena.
func (t *CompressTerm) ID() TermID { return t.id }

// Signal is the live netlist bit carrying the term's value.
func (t *CompressTerm) Signal() *rtl.Signal { return t.signal }

// Delay is the term's estimated logic depth: zero for partial products,
// otherwise the slowest input plus the kind's latency.
func (t *CompressTerm) Delay() float64 { return t.delay }

// Inputs returns the arena ids of the compressor inputs that produced the
// term; empty for partial products.
func (t *CompressTerm) Inputs() []TermID { return t.inputs }

// Label is a short identifier used in column dumps and traces, e.g.
// "pp(2,5)" for the row-2 column-5 partial product, "s#17" / "c#18" for sum
// and carry terms.
func (t *CompressTerm) Label() string {
	switch t.kind {
	case TermPartialProduct:
		return fmt.Sprintf("pp(%d,%d)", t.row, t.col)
	case TermSum:
		return fmt.Sprintf("s#%d", t.id)
	case TermCarry:
		return fmt.Sprintf("c#%d", t.id)
	}
	return fmt.Sprintf("invalid#%d", t.id)
}

func (t *CompressTerm) String() string {
	return fmt.Sprintf("%s@%.2f", t.Label(), t.delay)
}

// newTerm appends a term to the arena, computing its delay from its kind and
// inputs.
func (c *ColumnCompressor) newTerm(kind TermKind, signal *rtl.Signal, row, col int,
	inputs ...TermID) TermID {
	delay := 0.0
	if kind != TermPartialProduct {
		for _, in := range inputs {
			delay = max(delay, c.terms[in].delay)
		}
		switch kind {
		case TermSum:
			delay += sumLatency
		case TermCarry:
			delay += carryLatency
		}
	}
	id := TermID(len(c.terms))
	c.terms = append(c.terms, CompressTerm{
		kind:   kind,
		id:     id,
		inputs: inputs,
		row:    row,
		col:    col,
		signal: signal,
		delay:  delay,
	})
	return id
}

// termValue recomputes the value of a term from its provenance, reading the
// netlist only at the partial-product leaves: sums XOR their inputs, carries
// take the majority. The majority-by-count formula matches the carry of the
// 2- and 3-input compressors used here; it does not generalize to wider
// compressors.
func (c *ColumnCompressor) termValue(e *rtl.Evaluator, id TermID) uint {
	t := &c.terms[id]
	switch t.kind {
	case TermPartialProduct:
		return e.EvalBit(t.signal)
	case TermSum:
		v := uint(0)
		for _, in := range t.inputs {
			v ^= c.termValue(e, in)
		}
		return v
	case TermCarry:
		set := 0
		for _, in := range t.inputs {
			set += int(c.termValue(e, in))
		}
		if set > len(t.inputs)/2 {
			return 1
		}
		return 0
	}
	panic(fmt.Sprintf("invalid term #%d", id))
}
