// Copyright 2020 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package iterator

import (
	"github.com/setlvm/engine/tuple"
	"github.com/setlvm/engine/value"
)

// indexValue packs a tuple position into a Short Value, per spec.md §4.6
// ("the index packed into a Short Value, promoting to Long above the short
// range"). Short already carries a full int64 here (value.NewShort's
// argument type), so there is no reachable tuple length in Go's address
// space that would ever need the Long promotion the source material's
// 32-bit short forced — the promotion path simply never triggers.
func indexValue(i int) value.Value { return value.NewShort(int64(i)) }

// tupleCursor walks t's length from 0 up; missing positions yield Omega
// but are still counted, per spec.md §4.6.
type tupleCursor struct {
	t   *tuple.Tuple
	pos int
}

func (tc *tupleCursor) next() (value.Value, value.Value, bool, error) {
	if tc.pos >= tc.t.Len() {
		return doneResult()
	}
	v := tc.t.Get(tc.pos)
	tc.pos++
	return pairResult(v, value.OmegaValue)
}

// StartTuple begins iteration over every position of t.
func StartTuple(t *tuple.Tuple) *Iterator {
	return newIterator(KindTuple, tuple.Val(t), &tupleCursor{t: t})
}

// tuplePairCursor walks t's length from 0 up, yielding (i, v) pairs.
type tuplePairCursor struct {
	t   *tuple.Tuple
	pos int
}

func (tc *tuplePairCursor) next() (value.Value, value.Value, bool, error) {
	if tc.pos >= tc.t.Len() {
		return doneResult()
	}
	v := tc.t.Get(tc.pos)
	idx := indexValue(tc.pos)
	tc.pos++
	return pairResult(idx, v)
}

// StartTuplePair begins (i, v) iteration over t.
func StartTuplePair(t *tuple.Tuple) *Iterator {
	return newIterator(KindTuplePair, tuple.Val(t), &tuplePairCursor{t: t})
}

// altTuplePairCursor treats t as a tuple-of-pairs — spec.md §3 Iterator's
// AltTuplePair kind, used "when a user passed a tuple-of-pairs where a map
// was expected" (e.g. a literal [[k1,v1],[k2,v2]] handed to a domain/range
// operation). Each element of t must itself be a two-element tuple; the
// two elements of that inner tuple become the yielded pair.
type altTuplePairCursor struct {
	t   *tuple.Tuple
	pos int
}

func (ac *altTuplePairCursor) next() (value.Value, value.Value, bool, error) {
	if ac.pos >= ac.t.Len() {
		return doneResult()
	}
	elem := ac.t.Get(ac.pos)
	ac.pos++
	if elem.Tag() != value.Tuple {
		value.Unmark(&elem)
		return errResult(value.NewAbend(value.ContractViolation,
			"alt-tuple-pair iteration expects every element to be a pair, got %s", elem.Tag()))
	}
	inner := elem.MustHeap().(*tuple.Tuple)
	if inner.Len() != 2 {
		value.Unmark(&elem)
		return errResult(value.NewAbend(value.ContractViolation,
			"alt-tuple-pair iteration expects a 2-element tuple, got length %d", inner.Len()))
	}
	d, r := inner.Get(0), inner.Get(1)
	value.Unmark(&elem)
	return pairResult(d, r)
}

// StartAltTuplePair begins the tuple-of-pairs walk described above.
func StartAltTuplePair(t *tuple.Tuple) *Iterator {
	return newIterator(KindAltTuplePair, tuple.Val(t), &altTuplePairCursor{t: t})
}
