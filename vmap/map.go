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

// Package vmap implements the single- and multi-valued Map collection
// described in spec.md §3/§4.4. It is a thin façade over one trie.Root,
// the same way package set is — named vmap because Go reserves "map" as
// a keyword, not because anything about its exported surface differs
// from the spec's Map.
package vmap

import (
	"github.com/setlvm/engine/set"
	"github.com/setlvm/engine/trie"
	"github.com/setlvm/engine/value"
)

// Map is the heap payload behind a value.Map specifier. Each trie cell
// carries a domain Value as its key and either a bare range Value
// (single-valued) or a *set.Set wrapped in a Value (multi-valued, when
// IsMultiVal is set on the cell).
type Map struct {
	value.RefCounted
	root *trie.Root
}

// Empty builds a new empty map.
func Empty() *Map {
	return &Map{root: trie.NewRoot(nil)}
}

// Val wraps m as an owned value.Value of tag Map.
func Val(m *Map) value.Value { return value.NewHeap(value.Map, m) }

// Cardinality returns the number of distinct domain keys.
func (m *Map) Cardinality() int { return m.root.Cardinality() }

// Clone produces a deep structural copy sharing no trie node with m.
func Clone(m *Map) *Map {
	return &Map{root: trie.Copy(m.root)}
}

// Insert implements spec.md §4.4's insert(d, r): no cell for d yet creates
// a single-valued cell; an existing single-valued cell whose range equals
// r is a no-op, one that differs promotes to multi-valued holding {old,
// new}; an existing multi-valued cell gets r inserted into its range set.
// Insert takes ownership of both d and r.
func (m *Map) Insert(d, r value.Value) {
	h := value.Hash(d)
	cell := m.root.Lookup(h, d)
	if cell == nil {
		c := trie.NewCell()
		c.Hash = h
		c.Key = d
		c.HasRange = true
		c.Range = r
		m.root.Insert(c)
		return
	}
	value.Unmark(&d)
	if cell.IsMultiVal {
		vs := cell.Range.MustHeap().(*set.Set)
		vs.Insert(r)
		return
	}
	if value.Equal(cell.Range, r) {
		value.Unmark(&r)
		return
	}
	vs := set.Empty()
	vs.Insert(value.Retain(cell.Range))
	vs.Insert(r)
	value.Unmark(&cell.Range)
	cell.Range = set.Val(vs)
	cell.IsMultiVal = true
}

// demote collapses a multi-valued cell back to single-valued once its
// range set falls to exactly one element, per spec.md §4.4.
func demote(cell *trie.Cell) {
	vs := cell.Range.MustHeap().(*set.Set)
	last := vs.Arb()
	value.Unmark(&cell.Range)
	cell.Range = last
	cell.IsMultiVal = false
}

// DeleteDomain removes d and its entire range (scalar or set), reporting
// whether d was present.
func (m *Map) DeleteDomain(d value.Value) bool {
	h := value.Hash(d)
	cell, ok := m.root.Remove(h, d)
	if !ok {
		return false
	}
	trie.ReleaseCell(cell)
	return true
}

// DeletePair removes the single pair (d, r), demoting a multi-valued cell
// that falls to one remaining element back to single-valued. Reports
// whether the pair was present.
func (m *Map) DeletePair(d, r value.Value) bool {
	h := value.Hash(d)
	cell := m.root.Lookup(h, d)
	if cell == nil {
		return false
	}
	if !cell.IsMultiVal {
		if !value.Equal(cell.Range, r) {
			return false
		}
		m.DeleteDomain(d)
		return true
	}
	vs := cell.Range.MustHeap().(*set.Set)
	if !vs.Remove(r) {
		return false
	}
	if vs.Cardinality() == 1 {
		demote(cell)
	}
	return true
}

// Image implements image(d): a (shared) copy of the range set on a
// multi-valued cell, the lone range Value on a single-valued cell, or
// value.OmegaValue on a miss.
func (m *Map) Image(d value.Value) value.Value {
	cell := m.root.Lookup(value.Hash(d), d)
	if cell == nil {
		return value.OmegaValue
	}
	if cell.IsMultiVal {
		return set.Val(set.Clone(cell.Range.MustHeap().(*set.Set)))
	}
	return value.Retain(cell.Range)
}

// Domain returns the set of every domain key.
func (m *Map) Domain() *set.Set {
	dom := set.Empty()
	m.root.Walk(func(c *trie.Cell) { dom.Insert(value.Retain(c.Key)) })
	return dom
}

// Range returns the set of every range value across all cells (the union
// of multi-valued range sets with every single-valued range).
func (m *Map) Range() *set.Set {
	rng := set.Empty()
	m.root.Walk(func(c *trie.Cell) {
		if c.IsMultiVal {
			c.Range.MustHeap().(*set.Set).Walk(func(elem value.Value) {
				rng.Insert(value.Retain(elem))
			})
			return
		}
		rng.Insert(value.Retain(c.Range))
	})
	return rng
}

// NewCursor returns a resumable domain-cell cursor, for the iterator
// package's map-domain and map-pair iteration kinds.
func (m *Map) NewCursor() trie.Cursor { return trie.NewCursor(m.root) }

// UnderlyingRoot exposes the backing trie for diagnostics
// (internal/diag.Validate/Report, via trie.Root.CheckInvariants) and for tools that want to inspect
// structure without going through the Map façade.
func (m *Map) UnderlyingRoot() *trie.Root { return m.root }

// compositeHash folds a (domain, range) pair's hash the way spec.md §3 Map
// requires the whole-map HS to: combining domain and range hashes so that
// two pairs with the same domain but different range values contribute
// distinct summary bits.
func compositeHash(d, r value.Value) uint32 {
	dh, rh := value.Hash(d), value.Hash(r)
	return dh*31 + rh
}

// HashCode implements value.Hashable. Because the trie's own HS folds the
// per-cell Hash field (the domain hash, not the composite), Map computes
// its composite summary on each call by walking every (domain, range) pair.
func (m *Map) HashCode() uint32 {
	var hs uint32
	m.root.Walk(func(c *trie.Cell) {
		if c.IsMultiVal {
			c.Range.MustHeap().(*set.Set).Walk(func(elem value.Value) {
				hs ^= compositeHash(c.Key, elem)
			})
			return
		}
		hs ^= compositeHash(c.Key, c.Range)
	})
	return hs
}

// EqualValue implements value.Equatable: same cardinality and every
// (domain, range) pair of m has a matching counterpart in other.
func (m *Map) EqualValue(other value.Value) bool {
	if other.Tag() != value.Map {
		return false
	}
	h, ok := other.Heap()
	if !ok {
		return false
	}
	om, ok := h.(*Map)
	if !ok || om.root.Cardinality() != m.root.Cardinality() {
		return false
	}
	match := true
	m.root.Walk(func(c *trie.Cell) {
		if !match {
			return
		}
		oc := om.root.Lookup(c.Hash, c.Key)
		if oc == nil || oc.IsMultiVal != c.IsMultiVal {
			match = false
			return
		}
		if c.IsMultiVal {
			if !value.Equal(c.Range, oc.Range) {
				match = false
			}
			return
		}
		if !value.Equal(c.Range, oc.Range) {
			match = false
		}
	})
	return match
}

// Free implements value.Heap: unmark every domain key and range payload.
func (m *Map) Free() { m.root.Free() }
