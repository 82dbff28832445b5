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

// Package tuple implements the integer-indexed sparse sequence described
// in spec.md §3/§4.5: a fixed-fanout radix trie over the index, where a
// missing leaf means the value at that position is Omega. The node shape
// mirrors trie.Root's header/node pair (itself adapted from the teacher's
// StackTrie, trie/stacktrie.go, whose fixed `children [16]*stNode` fan-out
// and nibble-at-a-time routing this package reuses directly) but keyed
// exactly by index digit rather than by hash bucket, so there is no clash
// list: at most one value ever occupies a given leaf slot.
package tuple

import "github.com/setlvm/engine/value"

const (
	// T is TUP_HASH_SIZE in the source material: the radix trie's fanout.
	T = 16
	// shift is log2(T): index bits consumed per trie level.
	shift = 4
	mask  = T - 1
)

type node struct {
	sub  *header
	leaf value.Value // meaningful only at the bottom level; Omega means absent
}

func (n node) isNull() bool { return n.sub == nil && n.leaf.IsOmega() }

type header struct {
	parent     *header
	childIndex int
	children   [T]node
}

func newHeader(parent *header, idx int) *header {
	return &header{parent: parent, childIndex: idx}
}

// Tuple is the heap payload behind a value.Tuple specifier. height is the
// number of header levels from top to bottom (capacity T^height; height
// 0 means empty, top == nil). Growing height by one wraps the existing
// top header as child[0] of a fresh root, since every index valid under
// the old height has an implicit leading zero digit under the new one —
// no redistribution of existing leaves is ever required, unlike
// trie.Root's hash-keyed expansion.
type Tuple struct {
	value.RefCounted
	height int
	length int
	hs     uint32
	top    *header // nil when height == 0 (tuple has never been grown)
}

// Empty builds a new zero-length tuple.
func Empty() *Tuple { return &Tuple{} }

// Val wraps t as an owned value.Value of tag Tuple.
func Val(t *Tuple) value.Value { return value.NewHeap(value.Tuple, t) }

// Len returns the stored length L.
func (t *Tuple) Len() int { return t.length }

// heightFor returns the smallest height whose capacity T^height covers
// every index in [0, length).
func heightFor(length int) int {
	if length <= 0 {
		return 0
	}
	h := 1
	cap := T
	for length > cap {
		cap *= T
		h++
	}
	return h
}

// growTo raises t's height to at least newHeight, per the MSB-wrap scheme
// documented on the type.
func (t *Tuple) growTo(newHeight int) {
	for t.height < newHeight {
		if t.top == nil {
			t.top = newHeader(nil, 0)
		} else {
			newTop := newHeader(nil, 0)
			newTop.children[0] = node{sub: t.top}
			t.top.parent = newTop
			t.top.childIndex = 0
			t.top = newTop
		}
		t.height++
	}
}

// digitsOf returns the height digits of index i, most significant first,
// matching the routing order growTo relies on.
func digitsOf(i, height int) []int {
	ds := make([]int, height)
	for d := height - 1; d >= 0; d-- {
		ds[d] = i & mask
		i >>= shift
	}
	return ds
}

// indexHash combines an index with a value's hash into the per-position
// contribution folded into the tuple's whole-sequence hash, the way
// spec.md §3 Tuple requires ("XOR over (index, value-hash) for non-Omega
// positions"). Hashing the index as a Short reuses value.Hash's scalar
// avalanche rather than inventing a second hash function.
func indexHash(i int, v value.Value) uint32 {
	return value.Hash(value.NewShort(int64(i))) ^ value.Hash(v)
}

// rawAt returns the borrowed Value stored at i (0 <= i < t.length)
// without marking it.
func (t *Tuple) rawAt(i int) value.Value {
	if t.top == nil {
		return value.OmegaValue
	}
	ds := digitsOf(i, t.height)
	h := t.top
	for d := 0; d < t.height-1; d++ {
		child := h.children[ds[d]]
		if child.sub == nil {
			return value.OmegaValue
		}
		h = child.sub
	}
	return h.children[ds[t.height-1]].leaf
}

// Get returns the value at index i, or value.OmegaValue if i is out of
// range [0, L). The returned specifier is a fresh reference.
func (t *Tuple) Get(i int) value.Value {
	if i < 0 || i >= t.length {
		return value.OmegaValue
	}
	return value.Retain(t.rawAt(i))
}

// Set implements set(i, v) of spec.md §4.5: growing height (and L, if i
// extends past the current length) as needed, and deleting the leaf cell
// (pruning empty headers) when v is Omega. Set takes ownership of v.
func (t *Tuple) Set(i int, v value.Value) {
	if i < 0 {
		value.Trap("tuple index %d is negative", i)
	}
	if i+1 > t.length {
		t.length = i + 1
	}
	t.growTo(heightFor(t.length))
	ds := digitsOf(i, t.height)
	h := t.top
	for d := 0; d < t.height-1; d++ {
		idx := ds[d]
		if h.children[idx].sub == nil {
			h.children[idx] = node{sub: newHeader(h, idx)}
		}
		h = h.children[idx].sub
	}
	bottomIdx := ds[t.height-1]
	old := h.children[bottomIdx].leaf
	if !old.IsOmega() {
		t.hs ^= indexHash(i, old)
		value.Unmark(&old)
	}
	// Move v's reference straight into the cell, matching the ownership
	// contract every other container's Insert/Set follows (set.Insert,
	// set/ops.go's insertOwned): Set takes ownership of v, not a second
	// mark on top of it.
	h.children[bottomIdx].leaf = v
	if !v.IsOmega() {
		t.hs ^= indexHash(i, v)
	} else {
		t.pruneFrom(h)
	}
}

// pruneFrom walks up from a header that may have just gone fully empty,
// unlinking it from its parent, mirroring trie.Root's leaf-list pruning.
// It never prunes t.top itself.
func (t *Tuple) pruneFrom(h *header) {
	for {
		allNull := true
		for i := 0; i < T; i++ {
			if !h.children[i].isNull() {
				allNull = false
				break
			}
		}
		if !allNull {
			return
		}
		parent := h.parent
		if parent == nil {
			return
		}
		parent.children[h.childIndex] = node{}
		h = parent
	}
}

// HashCode implements value.Hashable.
func (t *Tuple) HashCode() uint32 { return t.hs }

// EqualValue implements value.Equatable: same length, then short-circuit
// on the whole-sequence hash, then position-by-position comparison.
func (t *Tuple) EqualValue(other value.Value) bool {
	if other.Tag() != value.Tuple {
		return false
	}
	h, ok := other.Heap()
	if !ok {
		return false
	}
	ot, ok := h.(*Tuple)
	if !ok || ot.length != t.length || ot.hs != t.hs {
		return false
	}
	for i := 0; i < t.length; i++ {
		if !value.Equal(t.rawAt(i), ot.rawAt(i)) {
			return false
		}
	}
	return true
}

// Free implements value.Heap: unmark every present position.
func (t *Tuple) Free() {
	for i := 0; i < t.length; i++ {
		v := t.rawAt(i)
		if !v.IsOmega() {
			value.Unmark(&v)
		}
	}
}

// Walk visits every index 0..L-1 in order, calling fn once per position
// with value.OmegaValue at missing positions, per spec.md §4.6 ("missing
// positions yield Omega (still counted)"). The Value handed to fn is
// borrowed, not owned — fn must not Unmark it.
func (t *Tuple) Walk(fn func(i int, v value.Value)) {
	for i := 0; i < t.length; i++ {
		fn(i, t.rawAt(i))
	}
}
