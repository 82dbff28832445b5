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

package engine

import (
	"github.com/setlvm/engine/bignum"
	"github.com/setlvm/engine/iterator"
	"github.com/setlvm/engine/set"
	"github.com/setlvm/engine/tuple"
	"github.com/setlvm/engine/value"
	"github.com/setlvm/engine/vmap"
)

// This file is the flat function surface spec.md §6 describes the
// dispatcher and built-in library layer consuming: one Go function per
// C-style entry point, idiomatic-Go'd into ordinary multi-value returns
// (an error, not an out-param abend) instead of the source's
// target-pointer-plus-bool convention. Every function here just threads
// through to the already-complete value/set/vmap/tuple/iterator packages;
// this is glue, not a second implementation.

// --- Value lifecycle ---

func Mark(v *value.Value)  { value.Mark(v) }
func Unmark(v *value.Value) { value.Unmark(v) }
func Hash(v value.Value) uint32 { return value.Hash(v) }
func Equal(a, b value.Value) bool { return value.Equal(a, b) }

// --- Set ---

func SetEmpty() *set.Set { return set.Empty() }

func SetInsert(s *set.Set, elem value.Value) { s.Insert(elem) }

func SetDelete(s *set.Set, elem value.Value) bool { return s.Remove(elem) }

func SetContains(s *set.Set, elem value.Value) bool { return s.Contains(elem) }

func SetCard(s *set.Set) int { return s.Cardinality() }

func SetUnion(a, b *set.Set) *set.Set { return set.Union(a, b) }

func SetDiff(a, b *set.Set) *set.Set { return set.Difference(a, b) }

func SetInter(a, b *set.Set) *set.Set { return set.Intersection(a, b) }

func SetSymdiff(a, b *set.Set) *set.Set { return set.SymmetricDifference(a, b) }

func SetSubset(a, b *set.Set) bool { return set.Subset(a, b) }

func SetPow(s *set.Set) *set.Set { return set.Powerset(s) }

func SetNpow(s *set.Set, n int) *set.Set { return set.NPowerset(s, n) }

func SetArb(s *set.Set) value.Value { return s.Arb() }

func SetFrom(s *set.Set) value.Value { return s.From() }

// --- Map ---

func MapInsert(m *vmap.Map, d, r value.Value) { m.Insert(d, r) }

func MapDeleteDomain(m *vmap.Map, d value.Value) bool { return m.DeleteDomain(d) }

func MapDeletePair(m *vmap.Map, d, r value.Value) bool { return m.DeletePair(d, r) }

func MapImage(m *vmap.Map, d value.Value) value.Value { return m.Image(d) }

func MapDomain(m *vmap.Map) *set.Set { return m.Domain() }

func MapRange(m *vmap.Map) *set.Set { return m.Range() }

func MapCard(m *vmap.Map) int { return m.Cardinality() }

// --- Tuple ---

// TupGet implements tup_get(&t, &tup, i): spec.md §4.5 treats a negative
// index as a DomainError rather than silently returning Omega the way an
// out-of-range-above index does.
func TupGet(t *tuple.Tuple, i int) (value.Value, error) {
	if i < 0 {
		return value.OmegaValue, value.NewAbend(value.DomainError, "tuple index %d is negative", i)
	}
	return t.Get(i), nil
}

func TupSet(t *tuple.Tuple, i int, v value.Value) error {
	if i < 0 {
		value.Unmark(&v)
		return value.NewAbend(value.DomainError, "tuple index %d is negative", i)
	}
	t.Set(i, v)
	return nil
}

func TupLen(t *tuple.Tuple) int { return t.Len() }

func TupConcat(a, b *tuple.Tuple) *tuple.Tuple { return tuple.Concat(a, b) }

// --- Iterators ---
//
// Each start_X_iterator(&target, &src[, n]) becomes StartX(src[, n])
// *iterator.Iterator; each X_next(&out[, &out2], &it) becomes a single
// Next call on the iterator itself (iterator.Iterator.Next already
// returns the (first, second, ok, err) shape every kind needs). There is
// deliberately no per-kind Next wrapper here: the value the dispatcher
// holds after start_X_iterator already is the *iterator.Iterator, and
// calling Next on it directly is the idiomatic Go shape (it.Next() over
// engine.XNext(it)).

func StartSetIterator(s *set.Set) *iterator.Iterator { return iterator.StartSet(s) }

func StartMapDomainIterator(m *vmap.Map) *iterator.Iterator { return iterator.StartMapDomain(m) }

func StartMapMultiIterator(m *vmap.Map) *iterator.Iterator { return iterator.StartMapMulti(m) }

func StartMapPairIterator(m *vmap.Map) *iterator.Iterator { return iterator.StartMapPair(m) }

func StartTupleIterator(t *tuple.Tuple) *iterator.Iterator { return iterator.StartTuple(t) }

func StartTuplePairIterator(t *tuple.Tuple) *iterator.Iterator { return iterator.StartTuplePair(t) }

func StartAltTuplePairIterator(t *tuple.Tuple) *iterator.Iterator {
	return iterator.StartAltTuplePair(t)
}

func StartPowIterator(s *set.Set) *iterator.Iterator { return iterator.StartPow(s) }

func StartNpowIterator(s *set.Set, n int) *iterator.Iterator { return iterator.StartNPow(s, n) }

func StartStringIterator(s *bignum.Str) *iterator.Iterator { return iterator.StartString(s) }

func StartStringPairIterator(s *bignum.Str) *iterator.Iterator { return iterator.StartStringPair(s) }

// Object, ObjectPair and ObjectMulti iterators need a *ClassTable to resolve
// their user-defined methods, so they live in object.go alongside
// ClassTable itself rather than here.
