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

// Package set implements the unordered Set collection as a thin, typed
// façade over one trie.Root: every operation here either walks the root
// directly or delegates hash/equality work to the value package. Set owns
// no third-party dependency of its own beyond what trie already pulls in.
package set

import (
	"github.com/setlvm/engine/trie"
	"github.com/setlvm/engine/value"
)

// Set is the heap payload behind a value.Set specifier.
type Set struct {
	value.RefCounted
	root *trie.Root
}

// Empty builds a new empty set.
func Empty() *Set {
	return &Set{root: trie.NewRoot(nil)}
}

// Singleton builds a one-element set, taking ownership of elem (the
// caller must have already acquired a reference to it, e.g. via
// value.Retain, if they intend to keep using it independently).
func Singleton(elem value.Value) *Set {
	s := Empty()
	s.Insert(elem)
	return s
}

// Val wraps s as an owned value.Value of tag Set.
func Val(s *Set) value.Value { return value.NewHeap(value.Set, s) }

// Cardinality returns the number of elements.
func (s *Set) Cardinality() int { return s.root.Cardinality() }

// Contains reports whether elem is a member.
func (s *Set) Contains(elem value.Value) bool {
	return s.root.Lookup(value.Hash(elem), elem) != nil
}

// Insert adds elem if not already present, taking ownership of the
// reference the caller passes in (mark it first if you need to keep using
// elem independently).
func (s *Set) Insert(elem value.Value) {
	h := value.Hash(elem)
	if s.root.Lookup(h, elem) != nil {
		value.Unmark(&elem)
		return
	}
	c := trie.NewCell()
	c.Hash = h
	c.Key = elem
	s.root.Insert(c)
}

// Remove deletes elem if present, reporting whether it was there.
func (s *Set) Remove(elem value.Value) bool {
	h := value.Hash(elem)
	c, ok := s.root.Remove(h, elem)
	if !ok {
		return false
	}
	trie.ReleaseCell(c)
	return true
}

// Arb returns an arbitrary element, or value.OmegaValue if s is empty. The
// returned specifier is a fresh reference: callers own it.
func (s *Set) Arb() value.Value {
	cur := trie.NewCursor(s.root)
	cell, ok := cur.Next()
	if !ok {
		return value.OmegaValue
	}
	return value.Retain(cell.Key)
}

// From removes and returns an arbitrary element, mutating s in place. It
// reports value.OmegaValue if s is empty.
func (s *Set) From() value.Value {
	cur := trie.NewCursor(s.root)
	cell, ok := cur.Next()
	if !ok {
		return value.OmegaValue
	}
	out := value.Retain(cell.Key)
	s.Remove(cell.Key)
	return out
}

// Clone produces a deep structural copy sharing no trie node with s, per
// spec.md §4.2: every cell's payload is marked, not duplicated.
func Clone(s *Set) *Set {
	return &Set{root: trie.Copy(s.root)}
}

// Walk visits every element exactly once, in trie order.
func (s *Set) Walk(fn func(elem value.Value)) {
	s.root.Walk(func(c *trie.Cell) { fn(c.Key) })
}

// NewCursor returns a resumable element cursor, for the iterator package's
// Set iteration kind.
func (s *Set) NewCursor() trie.Cursor { return trie.NewCursor(s.root) }

// UnderlyingRoot exposes the backing trie for diagnostics
// (internal/diag.Validate/Report, via trie.Root.CheckInvariants) and for tools that want to inspect
// structure without going through the Set façade.
func (s *Set) UnderlyingRoot() *trie.Root { return s.root }

// HashCode implements value.Hashable: the XOR fold over all member hashes,
// already tracked incrementally by the trie as HS.
func (s *Set) HashCode() uint32 { return s.root.HashSummary() }

// EqualValue implements value.Equatable: same cardinality, and every
// element of s is a member of the other set.
func (s *Set) EqualValue(other value.Value) bool {
	if other.Tag() != value.Set {
		return false
	}
	h, ok := other.Heap()
	if !ok {
		return false
	}
	os, ok := h.(*Set)
	if !ok {
		return false
	}
	if os.root.Cardinality() != s.root.Cardinality() || os.root.HashSummary() != s.root.HashSummary() {
		return false
	}
	match := true
	s.Walk(func(elem value.Value) {
		if !match {
			return
		}
		if os.root.Lookup(value.Hash(elem), elem) == nil {
			match = false
		}
	})
	return match
}

// Free implements value.Heap: unmark every member, releasing the trie.
func (s *Set) Free() { s.root.Free() }
