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

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"
)

// CheckInvariants re-derives every universal invariant spec.md §8 demands
// and reports the first one that doesn't hold. It also guards against a
// corrupted structure looping forever by tracking visited headers in a
// generic set — the one place this package reaches for a collection type
// that isn't its own, since validating the trie with the trie would be
// circular.
func (root *Root) CheckInvariants() error {
	visited := mapset.NewSet()
	var n int
	var hs uint32
	var walkErr error

	var recEmpty func(h *header, remaining int) bool
	recEmpty = func(h *header, remaining int) bool {
		if visited.Contains(h) {
			walkErr = fmt.Errorf("cycle detected at header %p", h)
			return false
		}
		visited.Add(h)
		for i := 0; i < R; i++ {
			child := h.children[i]
			if child.sub != nil {
				if child.sub.parent != h || child.sub.childIndex != i {
					walkErr = fmt.Errorf("header %p child %d: parent/child-index mismatch", h, i)
					return false
				}
				if remaining <= 1 {
					walkErr = fmt.Errorf("header %p child %d: subheader found below bottom level", h, i)
					return false
				}
				if !recEmpty(child.sub, remaining-1) {
					return false
				}
			}
			if remaining == 1 {
				var last uint32
				haveLast := false
				for c := child.leaf; c != nil; c = c.next {
					if haveLast && c.Hash < last {
						walkErr = fmt.Errorf("clash list at header %p bucket %d is not sorted ascending", h, i)
						return false
					}
					last, haveLast = c.Hash, true
					n++
					hs ^= c.Hash
				}
			}
		}
		return true
	}

	if root.height == 0 {
		var last uint32
		haveLast := false
		for c := root.flat; c != nil; c = c.next {
			if haveLast && c.Hash < last {
				return fmt.Errorf("flat clash list is not sorted ascending")
			}
			last, haveLast = c.Hash, true
			n++
			hs ^= c.Hash
		}
	} else {
		if !recEmpty(root.top, root.height) {
			return walkErr
		}
	}

	if n != root.n {
		return fmt.Errorf("cardinality mismatch: stored N=%d, recomputed %d", root.n, n)
	}
	if hs != root.hs {
		return fmt.Errorf("hash summary mismatch: stored HS=%#x, recomputed %#x", root.hs, hs)
	}
	wantHeight := root.height
	if uint64(root.n) > expansionTrigger(wantHeight) {
		return fmt.Errorf("height %d too small for cardinality %d (expansion overdue)", wantHeight, root.n)
	}
	if wantHeight > 0 && uint64(root.n) < pow(R, wantHeight) {
		return fmt.Errorf("height %d too large for cardinality %d (contraction overdue)", wantHeight, root.n)
	}
	return nil
}
