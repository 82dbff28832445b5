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

package set

import (
	"github.com/setlvm/engine/trie"
	"github.com/setlvm/engine/value"
)

// Every binary operator below consumes one reference to each input — the
// caller must not touch a or b again after the call — and returns one
// owned reference to the result. This is the Go-side expression of
// spec.md's destructive-reuse rule: rather than a shared target/left/right
// operand slot on a dispatcher stack, ownership simply transfers into the
// call, and the input each operator picks as its accumulator is mutated in
// place if it has reference count 1, and cloned otherwise.

// accumFrom claims s as a mutable accumulator, consuming the caller's
// owned reference to s either way: if s is uniquely owned it is reused in
// place, its one reference disowned down to the same zero-count, unowned
// state Empty/Clone construct fresh results at; otherwise a clone is made
// at that same zero count and the caller's reference to s is released
// (s lives on for its other owners).
func accumFrom(s *Set) *Set {
	if s.Count() == 1 {
		value.Disown(s)
		return s
	}
	acc := Clone(s)
	value.Release(s)
	return acc
}

// insertOwned inserts a cell already carrying an owned Key into acc's
// trie, skipping the lookup+mark dance Insert does for borrowed values.
func insertOwned(acc *Set, h uint32, key value.Value) {
	c := trie.NewCell()
	c.Hash = h
	c.Key = key
	acc.root.Insert(c)
}

// Union returns a ∪ b, consuming one reference to each.
func Union(a, b *Set) *Set {
	big, small := a, b
	if small.Cardinality() > big.Cardinality() {
		big, small = small, big
	}
	acc := accumFrom(big)
	cur := small.NewCursor()
	for {
		cell, ok := cur.Next()
		if !ok {
			break
		}
		h := cell.Hash
		if acc.root.Lookup(h, cell.Key) == nil {
			insertOwned(acc, h, value.Retain(cell.Key))
		}
	}
	value.Release(small)
	return acc
}

// Difference returns a \ b, consuming one reference to each. The left
// input is always the accumulator.
func Difference(a, b *Set) *Set {
	acc := accumFrom(a)
	b.Walk(func(elem value.Value) {
		acc.Remove(elem)
	})
	value.Release(b)
	return acc
}

// Intersection returns a ∩ b, consuming one reference to each. It always
// builds a fresh result set rather than reusing either input in place,
// probing through the input with the shorter trie (cheaper lookups).
func Intersection(a, b *Set) *Set {
	probe, other := a, b
	if probe.root.Height() > other.root.Height() {
		probe, other = other, probe
	}
	result := Empty()
	probe.Walk(func(elem value.Value) {
		h := value.Hash(elem)
		if other.root.Lookup(h, elem) != nil {
			insertOwned(result, h, value.Retain(elem))
		}
	})
	value.Release(a)
	value.Release(b)
	return result
}

// SymmetricDifference returns (a \ b) ∪ (b \ a), consuming one reference
// to each. The larger-cardinality input is the accumulator.
func SymmetricDifference(a, b *Set) *Set {
	big, small := a, b
	if small.Cardinality() > big.Cardinality() {
		big, small = small, big
	}
	acc := accumFrom(big)
	small.Walk(func(elem value.Value) {
		if acc.Contains(elem) {
			acc.Remove(elem)
		} else {
			insertOwned(acc, value.Hash(elem), value.Retain(elem))
		}
	})
	value.Release(small)
	return acc
}

// Subset reports whether a ⊆ b. Neither input is consumed.
func Subset(a, b *Set) bool {
	subset := true
	a.Walk(func(elem value.Value) {
		if !subset {
			return
		}
		if !b.Contains(elem) {
			subset = false
		}
	})
	return subset
}
