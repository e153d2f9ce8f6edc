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
	"slices"

	. "github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/gohdl/gohdl/rtl"
)

// OutputMode says how a ColumnCompressor exposes its two output rows:
// directly (Combinational) or behind one clocked register stage
// (Registered). It is resolved once, at construction.
type OutputMode struct {
	registered bool
	clk        *rtl.Signal
	reset      *rtl.Signal
	enable     *rtl.Signal
}

// Combinational output mode: the two rows are plain combinational signals.
func Combinational() OutputMode { return OutputMode{} }

// Registered output mode: each output row passes through one register
// clocked by clk, with optional synchronous reset and enable (either may be
// nil).
func Registered(clk, reset, enable *rtl.Signal) OutputMode {
	if clk == nil {
		Panicf("Registered output mode requires a clock")
	}
	return OutputMode{registered: true, clk: clk, reset: reset, enable: enable}
}

// ColumnCompressor reduces a matrix of same-weight bit columns to two rows
// whose binary sum equals the matrix's value. It seeds one partial-product
// term per input bit at column rowShift[row]+localBit, then greedily applies
// 2- and 3-input bit compressors, always to the lowest-delay terms of each
// over-deep column, until every column holds at most two terms.
//
// The compressor is agnostic to how the matrix was produced; radix and slice
// validation belong to the Booth components upstream.
type ColumnCompressor struct {
	design   *rtl.Design
	mode     OutputMode
	rowShift []int

	// terms is the arena of all compression terms; a term's inputs are
	// arena indices of earlier terms.
	terms   []CompressTerm
	columns []columnQueue

	compressed bool
	// final holds, per column, the at-most-two terms left after Compress.
	final   [][]TermID
	dropped int

	add0, add1 *rtl.Signal
}

// NewColumnCompressor organizes the input rows into per-column delay-ordered
// queues. rowShift gives the bit offset of each row's least significant bit;
// rows and rowShift must have the same length.
func NewColumnCompressor(rows []*rtl.Signal, rowShift []int, mode OutputMode) *ColumnCompressor {
	if len(rows) == 0 {
		Panicf("ColumnCompressor needs at least one input row")
	}
	if len(rows) != len(rowShift) {
		Panicf("got %d rows but %d row shifts", len(rows), len(rowShift))
	}
	maxWidth := 0
	for r, row := range rows {
		if row == nil {
			Panicf("input row %d is nil", r)
		}
		if rowShift[r] < 0 {
			Panicf("row %d has negative shift %d", r, rowShift[r])
		}
		maxWidth = max(maxWidth, row.Width()+rowShift[r])
	}
	c := &ColumnCompressor{
		design:   rows[0].Design(),
		mode:     mode,
		rowShift: slices.Clone(rowShift),
		columns:  make([]columnQueue, maxWidth),
	}
	for col := range c.columns {
		c.columns[col].owner = c
	}
	for r, row := range rows {
		for i := 0; i < row.Width(); i++ {
			col := rowShift[r] + i
			id := c.newTerm(TermPartialProduct, row.Bit(i), r, col)
			c.columns[col].push(id)
		}
	}
	return c
}

// MaxWidth is the number of bit columns: the width of the two output rows.
func (c *ColumnCompressor) MaxWidth() int { return len(c.columns) }

// LongestColumn returns the current maximum queue depth over all columns.
func (c *ColumnCompressor) LongestColumn() int {
	longest := 0
	for col := range c.columns {
		longest = max(longest, c.columns[col].Len())
	}
	return longest
}

// DroppedCarries reports how many compressor carries were discarded out of
// the top column. Callers that need the output rows to equal the matrix sum
// exactly (not just mod 2^MaxWidth) must size the matrix with a guard
// column so this stays zero.
func (c *ColumnCompressor) DroppedCarries() int { return c.dropped }

// Compress runs the reduction. It must be called exactly once; a second call
// panics.
//
// The schedule is delay-greedy: starting from the longest column depth, an
// iteration ladder counts down, and every pass compresses each column down
// to the current ladder depth, combining the two or three earliest-available
// terms at a time. Staggering the per-column reduction this way keeps the
// overall tree depth balanced even for the uneven column heights a
// Booth-shifted matrix produces.
//
// Each compressor's sum drops back into the same column and its carry moves
// to the next one. A carry out of the top column has no destination and is
// dropped: the reduction is exact mod 2^MaxWidth, see DroppedCarries.
func (c *ColumnCompressor) Compress() {
	if c.compressed {
		Panicf("already compressed")
	}
	c.compressed = true

	iterations := c.LongestColumn()
	for iterations > 0 {
		klog.V(2).Infof("compress pass: ladder depth %d, longest column %d",
			iterations, c.LongestColumn())
		for col := range c.columns {
			q := &c.columns[col]
			for q.Len() > iterations && q.Len() > 2 {
				// A half adder when it lands exactly on the ladder depth,
				// a full adder otherwise.
				take := 3
				if q.Len() == iterations+1 {
					take = 2
				}
				ids := make([]TermID, take)
				inputs := make([]*rtl.Signal, take)
				for i := range ids {
					ids[i] = q.pop()
					inputs[i] = c.terms[ids[i]].signal
				}
				sum, carry := compressBits(inputs)
				q.push(c.newTerm(TermSum, sum, -1, col, ids...))
				if col == len(c.columns)-1 {
					c.dropped++
					klog.V(2).Infof("dropping carry out of top column %d", col)
				} else {
					c.columns[col+1].push(c.newTerm(TermCarry, carry, -1, col+1, ids...))
				}
			}
		}
		iterations--
		if c.LongestColumn() <= 2 {
			break
		}
	}

	c.extract()
}

// extract drains the columns into the two output rows: per column the first
// remaining term feeds add0 and the second, if any, add1; empty positions
// are constant zero.
func (c *ColumnCompressor) extract() {
	zero := c.design.Zero(1)
	bits0 := make([]*rtl.Signal, len(c.columns))
	bits1 := make([]*rtl.Signal, len(c.columns))
	c.final = make([][]TermID, len(c.columns))
	for col := range c.columns {
		q := &c.columns[col]
		if q.Len() > 2 {
			Panicf("column %d still holds %d terms after compression", col, q.Len())
		}
		bits0[col], bits1[col] = zero, zero
		for q.Len() > 0 {
			id := q.pop()
			if len(c.final[col]) == 0 {
				bits0[col] = c.terms[id].signal
			} else {
				bits1[col] = c.terms[id].signal
			}
			c.final[col] = append(c.final[col], id)
		}
	}
	c.add0 = rtl.Concat(bits0...)
	c.add1 = rtl.Concat(bits1...)
	if c.mode.registered {
		c.add0 = rtl.Register(c.mode.clk, c.add0, c.mode.reset, c.mode.enable)
		c.add1 = rtl.Register(c.mode.clk, c.add1, c.mode.reset, c.mode.enable)
	}
}

// Add0 returns the first output row, MaxWidth bits wide. Only valid after
// Compress.
func (c *ColumnCompressor) Add0() *rtl.Signal {
	c.assertCompressed()
	return c.add0
}

// Add1 returns the second output row, MaxWidth bits wide. Only valid after
// Compress.
func (c *ColumnCompressor) Add1() *rtl.Signal {
	c.assertCompressed()
	return c.add1
}

func (c *ColumnCompressor) assertCompressed() {
	if !c.compressed {
		Panicf("output rows are only available after Compress")
	}
}
