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
	"github.com/setlvm/engine/set"
	"github.com/setlvm/engine/trie"
	"github.com/setlvm/engine/value"
	"github.com/setlvm/engine/vmap"
)

// setCursor walks every member of a Set once, in trie order.
type setCursor struct{ c trie.Cursor }

func (sc *setCursor) next() (value.Value, value.Value, bool, error) {
	cell, ok := sc.c.Next()
	if !ok {
		return doneResult()
	}
	return pairResult(value.Retain(cell.Key), value.OmegaValue)
}

// StartSet begins iteration over every element of s, marking a strong
// reference to s itself (not a clone): ordinary copy-on-write already
// protects the walk if something else mutates s while use_count stays
// above one, per spec.md §5.
func StartSet(s *set.Set) *Iterator {
	return newIterator(KindSet, set.Val(s), &setCursor{c: s.NewCursor()})
}

// mapDomainCursor walks every domain key of a Map once.
type mapDomainCursor struct{ c trie.Cursor }

func (mc *mapDomainCursor) next() (value.Value, value.Value, bool, error) {
	cell, ok := mc.c.Next()
	if !ok {
		return doneResult()
	}
	return pairResult(value.Retain(cell.Key), value.OmegaValue)
}

// StartMapDomain begins iteration over every domain key of m, marking m
// itself rather than cloning it (see StartSet).
func StartMapDomain(m *vmap.Map) *Iterator {
	return newIterator(KindMapDomain, vmap.Val(m), &mapDomainCursor{c: m.NewCursor()})
}

// mapPairCursor implements spec.md §4.6's map-pair walk: at a single-
// valued cell, yield (d, r) and advance; at a multi-valued cell, open a
// nested set iteration over the range set and yield (d, r_i) for each
// element, holding the domain cell's key fixed across the whole nested
// walk. This resolves the source material's documented Open Question
// (spec.md §9, SPEC_FULL.md §12.2) by snapshotting the domain key before
// opening the nested cursor, rather than re-reading a cell pointer the
// outer walk may have already advanced past.
type mapPairCursor struct {
	main     trie.Cursor
	domain   value.Value // borrowed; valid only while nested != nil
	nested   *trie.Cursor
	nestedOn bool
}

func (mc *mapPairCursor) next() (value.Value, value.Value, bool, error) {
	for {
		if mc.nestedOn {
			cell, ok := mc.nested.Next()
			if ok {
				return pairResult(value.Retain(mc.domain), value.Retain(cell.Key))
			}
			mc.nestedOn = false
			mc.nested = nil
			continue
		}
		cell, ok := mc.main.Next()
		if !ok {
			return doneResult()
		}
		if !cell.IsMultiVal {
			return pairResult(value.Retain(cell.Key), value.Retain(cell.Range))
		}
		mc.domain = cell.Key
		vs := cell.Range.MustHeap().(*set.Set)
		c := vs.NewCursor()
		mc.nested = &c
		mc.nestedOn = true
	}
}

// StartMapPair begins (domain, range) pair iteration over m, marking m
// itself rather than cloning it (see StartSet).
func StartMapPair(m *vmap.Map) *Iterator {
	return newIterator(KindMapPair, vmap.Val(m), &mapPairCursor{main: m.NewCursor()})
}

// mapMultiCursor iterates (d, r) pairs the same way mapPairCursor does,
// except a single-valued cell is first wrapped in a synthetic singleton
// range set, matching the source material's map_multi_iterator_next
// ("otherwise, we must make a singleton set") — every cell in a MapMulti
// walk is presented as if multi-valued, which is the shape an operation
// converting a whole map to a set of pairs wants.
type mapMultiCursor struct {
	main      trie.Cursor
	domain    value.Value
	nested    *trie.Cursor
	nestedOn  bool
	synthetic *set.Set // non-nil only for a single-valued cell's singleton wrapper
}

func (mc *mapMultiCursor) next() (value.Value, value.Value, bool, error) {
	for {
		if mc.nestedOn {
			cell, ok := mc.nested.Next()
			if ok {
				return pairResult(value.Retain(mc.domain), value.Retain(cell.Key))
			}
			mc.nestedOn = false
			mc.nested = nil
			if mc.synthetic != nil {
				value.Release(mc.synthetic)
				mc.synthetic = nil
			}
			continue
		}
		cell, ok := mc.main.Next()
		if !ok {
			return doneResult()
		}
		mc.domain = cell.Key
		var vs *set.Set
		if cell.IsMultiVal {
			vs = cell.Range.MustHeap().(*set.Set)
		} else {
			vs = set.Singleton(value.Retain(cell.Range))
			mc.synthetic = vs
		}
		c := vs.NewCursor()
		mc.nested = &c
		mc.nestedOn = true
	}
}

// close releases the synthetic singleton set, if the walk was abandoned
// while parked inside one.
func (mc *mapMultiCursor) close() {
	if mc.synthetic != nil {
		value.Release(mc.synthetic)
		mc.synthetic = nil
	}
}

// StartMapMulti begins the always-as-pairs walk over m described above,
// marking m itself rather than cloning it (see StartSet).
func StartMapMulti(m *vmap.Map) *Iterator {
	return newIterator(KindMapMulti, vmap.Val(m), &mapMultiCursor{main: m.NewCursor()})
}
