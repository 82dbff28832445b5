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

// contract shrinks the trie by one level: the lowest internal headers are
// collapsed by merging their R child clash lists into one, in hash order.
func (root *Root) contract() {
	if root.height == 1 {
		merged := mergeR(root.top)
		freeHeader(root.top)
		root.top = nil
		root.flat = merged
	} else {
		collapseBottom(root.top, root.height)
	}
	root.height--
	if root.opts.Contractions != nil {
		root.opts.Contractions.Inc(1)
	}
	if root.opts.Height != nil {
		root.opts.Height.Update(int64(root.height))
	}
}

// collapseBottom finds the headers one level above the leaves (remaining
// == 2, whose children are the bottom headers) and merges each bottom
// header's R leaf lists into a single list, replacing the bottom header in
// its parent's slot.
func collapseBottom(h *header, remaining int) {
	if remaining == 2 {
		for i := 0; i < R; i++ {
			sub := h.children[i].sub
			if sub == nil {
				continue
			}
			merged := mergeR(sub)
			freeHeader(sub)
			h.children[i] = node{leaf: merged}
		}
		return
	}
	for i := 0; i < R; i++ {
		if h.children[i].sub != nil {
			collapseBottom(h.children[i].sub, remaining-1)
		}
	}
}

// mergeR stably merges h's R already-sorted clash lists into one, ascending
// by hash, picking the lowest head across all R lists at each step.
func mergeR(h *header) *Cell {
	lists := make([]*Cell, R)
	for i := 0; i < R; i++ {
		lists[i] = h.children[i].leaf
	}
	var head, tail *Cell
	for {
		best := -1
		for i, l := range lists {
			if l == nil {
				continue
			}
			if best == -1 || l.Hash < lists[best].Hash {
				best = i
			}
		}
		if best == -1 {
			break
		}
		c := lists[best]
		lists[best] = c.next
		c.next = nil
		if head == nil {
			head = c
		} else {
			tail.next = c
		}
		tail = c
	}
	return head
}
