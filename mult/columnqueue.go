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
	"container/heap"
	"slices"
)

// columnQueue is the delay-ordered multiset of terms waiting at one bit
// column: a min-heap of arena ids keyed on (delay, id). Breaking delay ties
// on the arena id makes the pop order deterministic: equal-delay terms come
// out in insertion order.
type columnQueue struct {
	owner *ColumnCompressor
	ids   []TermID
}

var _ heap.Interface = (*columnQueue)(nil)

func (q *columnQueue) Len() int { return len(q.ids) }

func (q *columnQueue) Less(i, j int) bool {
	a, b := &q.owner.terms[q.ids[i]], &q.owner.terms[q.ids[j]]
	if a.delay != b.delay {
		return a.delay < b.delay
	}
	return a.id < b.id
}

func (q *columnQueue) Swap(i, j int) { q.ids[i], q.ids[j] = q.ids[j], q.ids[i] }

func (q *columnQueue) Push(x any) { q.ids = append(q.ids, x.(TermID)) }

func (q *columnQueue) Pop() any {
	last := q.ids[len(q.ids)-1]
	q.ids = q.ids[:len(q.ids)-1]
	return last
}

func (q *columnQueue) push(id TermID) { heap.Push(q, id) }

func (q *columnQueue) pop() TermID { return heap.Pop(q).(TermID) }

// sorted returns the queued ids in pop order without disturbing the heap.
func (q *columnQueue) sorted() []TermID {
	ids := slices.Clone(q.ids)
	slices.SortFunc(ids, func(a, b TermID) int {
		ta, tb := &q.owner.terms[a], &q.owner.terms[b]
		switch {
		case ta.delay < tb.delay:
			return -1
		case ta.delay > tb.delay:
			return 1
		}
		return int(ta.id - tb.id)
	})
	return ids
}
