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

// expand grows the trie by one level: every leaf clash list is split into
// an R-way subtree keyed on the next SHIFT bits of each cell's hash.
func (root *Root) expand() {
	if root.height == 0 {
		root.expandFlat()
	} else {
		splitBottom(root.top, root.height, root.height*Shift)
	}
	root.height++
	if root.opts.Expansions != nil {
		root.opts.Expansions.Inc(1)
	}
	if root.opts.Height != nil {
		root.opts.Height.Update(int64(root.height))
	}
}

func (root *Root) expandFlat() {
	h := newHeader(nil, 0)
	distribute(root.flat, 0, h)
	root.top = h
	root.flat = nil
}

// splitBottom descends to the bottom header level (remaining == 1, whose
// children hold leaf clash lists) and replaces each non-empty leaf with a
// fresh subheader built from splitting that list on the next SHIFT bits.
func splitBottom(h *header, remaining, shift int) {
	if remaining == 1 {
		for i := 0; i < R; i++ {
			list := h.children[i].leaf
			if list == nil {
				continue
			}
			nh := newHeader(h, i)
			distribute(list, shift, nh)
			h.children[i] = node{sub: nh}
		}
		return
	}
	for i := 0; i < R; i++ {
		if h.children[i].sub != nil {
			splitBottom(h.children[i].sub, remaining-1, shift)
		}
	}
}

// distribute splits a sorted clash list into dst's R children by bucket
// (hash>>shift)&(R-1). Each bucket's sublist stays sorted ascending
// because cells are appended to it in their original relative order.
func distribute(list *Cell, shift int, dst *header) {
	var heads, tails [R]*Cell
	for c := list; c != nil; {
		next := c.next
		c.next = nil
		idx := int((c.Hash >> uint(shift)) & (R - 1))
		if heads[idx] == nil {
			heads[idx] = c
		} else {
			tails[idx].next = c
		}
		tails[idx] = c
		c = next
	}
	for i := 0; i < R; i++ {
		dst.children[i] = node{leaf: heads[i]}
	}
}
