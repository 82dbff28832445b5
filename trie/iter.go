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

package trie

// Cursor is the canonical trie-walk state of spec.md §4.6: a current
// header, the index of the next child to examine there, a pending cell
// (if a clash list is being drained), and how many header levels remain
// below the current one (1 means this header's children are leaf clash
// lists). It is small and self-contained so an Iterator can carry one by
// value and resume a suspended walk across engine calls.
type Cursor struct {
	root      *Root
	hdr       *header
	idx       int
	remaining int
	cell      *Cell
	started   bool
	done      bool
}

// NewCursor builds a cursor positioned before the first cell of root.
func NewCursor(root *Root) Cursor { return Cursor{root: root} }

// Next returns the next cell in trie order, or ok=false when exhausted.
// Every element is visited exactly once; the order follows hash-prefix
// order and is unspecified relative to insertion order, per spec.md §5.
func (c *Cursor) Next() (*Cell, bool) {
	if c.done {
		return nil, false
	}
	if c.root.height == 0 {
		if !c.started {
			c.cell = c.root.flat
			c.started = true
		}
		if c.cell == nil {
			c.done = true
			return nil, false
		}
		cell := c.cell
		c.cell = cell.next
		return cell, true
	}
	if !c.started {
		c.hdr = c.root.top
		c.remaining = c.root.height
		c.idx = 0
		c.started = true
	}
	for {
		if c.cell != nil {
			cell := c.cell
			c.cell = cell.next
			return cell, true
		}
		if c.remaining == 1 {
			if c.idx < R {
				c.cell = c.hdr.children[c.idx].leaf
				c.idx++
				continue
			}
		} else if c.idx < R {
			child := c.hdr.children[c.idx]
			c.idx++
			if child.sub == nil {
				continue
			}
			c.hdr = child.sub
			c.remaining--
			c.idx = 0
			continue
		}
		// idx >= R at the current header: ascend, or finish at the root.
		if c.hdr.parent == nil {
			c.done = true
			return nil, false
		}
		resume := c.hdr.childIndex + 1
		c.hdr = c.hdr.parent
		c.remaining++
		c.idx = resume
	}
}
