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
	"math/big"
	"strings"

	. "github.com/gomlx/exceptions"

	"github.com/gohdl/gohdl/rtl"
)

// String dumps the per-column term labels with their delays, in pop order.
// Before Compress it shows the seeded matrix; after, the surviving terms.
func (c *ColumnCompressor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ColumnCompressor(%d columns, %d terms", len(c.columns), len(c.terms))
	if c.compressed {
		b.WriteString(", compressed")
	}
	b.WriteString(")\n")
	for col := len(c.columns) - 1; col >= 0; col-- {
		fmt.Fprintf(&b, "  col %3d:", col)
		for _, id := range c.ColumnTerms(col) {
			fmt.Fprintf(&b, " %s", c.terms[id].String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// NumTerms returns how many terms the arena holds (partial products plus
// every sum and carry created so far).
func (c *ColumnCompressor) NumTerms() int { return len(c.terms) }

// Term returns the term with the given arena id. It panics if id is out of
// range.
func (c *ColumnCompressor) Term(id TermID) *CompressTerm {
	if id < 0 || int(id) >= len(c.terms) {
		Panicf("term #%d out of range, arena holds %d terms", id, len(c.terms))
	}
	return &c.terms[id]
}

// ColumnDepth returns how many terms currently sit at the given column.
func (c *ColumnCompressor) ColumnDepth(col int) int {
	if col < 0 || col >= len(c.columns) {
		Panicf("column %d out of range 0..%d", col, len(c.columns)-1)
	}
	return len(c.ColumnTerms(col))
}

// CriticalDelay returns the largest delay among the terms still held in the
// columns: after Compress, the logic depth estimate of the output rows.
func (c *ColumnCompressor) CriticalDelay() float64 {
	critical := 0.0
	for col := range c.columns {
		for _, id := range c.ColumnTerms(col) {
			critical = max(critical, c.terms[id].delay)
		}
	}
	return critical
}

// ColumnTerms returns the ids held at a column, in pop order: the seeded
// matrix before Compress, the surviving terms after.
func (c *ColumnCompressor) ColumnTerms(col int) []TermID {
	if c.compressed {
		return c.final[col]
	}
	return c.columns[col].sorted()
}

// Evaluate recomputes the accumulated value of the compressor from term
// provenance, NOT from the live netlist outputs: partial products read their
// original input bit, sums XOR their inputs, carries take the majority. The
// returned trace lists every term's recomputed value per column.
//
// Before Compress the result is the exact weighted sum of all partial
// products; after Compress it equals Add0+Add1 (for a registered compressor,
// the values the registers will latch). Comparing the two against a direct
// evaluation of the output rows is how tree-construction bugs are caught.
//
// The evaluator must have the design's primary inputs bound.
func (c *ColumnCompressor) Evaluate(e *rtl.Evaluator) (*big.Int, string) {
	var b strings.Builder
	total := new(big.Int)
	for col := len(c.columns) - 1; col >= 0; col-- {
		ids := c.ColumnTerms(col)
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(&b, "col %3d:", col)
		for _, id := range ids {
			v := c.termValue(e, id)
			fmt.Fprintf(&b, " %s=%d", c.terms[id].Label(), v)
			if v != 0 {
				total.Add(total, new(big.Int).Lsh(big.NewInt(1), uint(col)))
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "total: %s\n", total)
	return total, b.String()
}
