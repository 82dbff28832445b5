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

import "github.com/setlvm/engine/value"

// elemArray is the flat length-N array of source elements the spec's
// powerset/n-powerset algorithms drive with a bit-vector: grounded on
// original_source/src/sets.c's set_pow/set_npow, which collects every
// source cell into a plain array (se_array) before ever touching the
// target set, rather than re-walking the trie per subset.
type elemArray struct {
	elems []value.Value
	in    []bool
}

func collect(s *Set) elemArray {
	ea := elemArray{elems: make([]value.Value, 0, s.Cardinality()), in: nil}
	s.Walk(func(elem value.Value) { ea.elems = append(ea.elems, elem) })
	ea.in = make([]bool, len(ea.elems))
	return ea
}

func (ea elemArray) build() *Set {
	sub := Empty()
	for i, on := range ea.in {
		if on {
			sub.Insert(value.Retain(ea.elems[i]))
		}
	}
	return sub
}

// advance increments ea.in as a binary counter (LSB first), reporting
// whether it overflowed (all bits were set, i.e. we've produced every
// subset already).
func (ea elemArray) advance() (overflowed bool) {
	for i := range ea.in {
		if !ea.in[i] {
			ea.in[i] = true
			return false
		}
		ea.in[i] = false
	}
	return true
}

// Powerset returns the set of all subsets of s, consuming one reference to
// s. Cardinality is 2^|s|; the empty set and s itself are both members.
func Powerset(s *Set) *Set {
	ea := collect(s)
	result := Empty()
	for {
		result.Insert(Val(ea.build()))
		if ea.advance() {
			break
		}
	}
	value.Release(s)
	return result
}

// NPowerset returns the set of all size-n subsets of s, consuming one
// reference to s. Cardinality is C(|s|, n); n outside [0, |s|] yields the
// empty set.
func NPowerset(s *Set, n int) *Set {
	card := s.Cardinality()
	result := Empty()
	if n < 0 || n > card {
		value.Release(s)
		return result
	}
	ea := collect(s)
	// Initialise to the lowest n-combination: the leftmost n bits on.
	for i := 0; i < n; i++ {
		ea.in[i] = true
	}
	if n == 0 {
		result.Insert(Val(ea.build()))
		value.Release(s)
		return result
	}
	for {
		result.Insert(Val(ea.build()))
		if !nextCombination(ea.in) {
			break
		}
	}
	value.Release(s)
	return result
}

// nextCombination advances bits (exactly k of len(bits) set) to the
// lexicographically next k-combination, per spec.md §4.3: find the
// rightmost unset bit with an earlier set bit, move that set bit one
// place right, and pack the remaining set bits immediately after it.
// Reports false when no such arrangement exists (bits was already the
// last combination, all set bits pushed to the top).
func nextCombination(bits []bool) bool {
	n := len(bits)
	// Scan right to left for the rightmost unset bit whose left neighbour
	// is set.
	for i := n - 1; i > 0; i-- {
		if bits[i] || !bits[i-1] {
			continue
		}
		// bits[i-1] is set, bits[i] is not: move it one place right and
		// pack every set bit that was to the right of i-1 immediately
		// after the new position.
		onesToPack := 0
		for j := i - 1; j < n; j++ {
			if bits[j] {
				onesToPack++
			}
			bits[j] = false
		}
		bits[i] = true
		onesToPack--
		for j := i + 1; onesToPack > 0; j++ {
			bits[j] = true
			onesToPack--
		}
		return true
	}
	return false
}
