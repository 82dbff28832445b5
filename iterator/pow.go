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
	"github.com/setlvm/engine/value"
)

// powCursor wraps set.PowCursor, the bit-vector-driven subset enumerator
// spec.md §3 Iterator describes carrying "a flat element array with
// per-element 'in current subset' bits and a done flag" — that state
// lives in set.PowCursor itself; this cursor just adapts it to the
// (first, second, ok, err) shape every other kind here produces.
type powCursor struct{ pc *set.PowCursor }

func (c *powCursor) next() (value.Value, value.Value, bool, error) {
	sub, ok := c.pc.Next()
	if !ok {
		return doneResult()
	}
	return pairResult(set.Val(sub), value.OmegaValue)
}

// StartPow begins enumeration of every subset of s (cardinality 2^|s|).
func StartPow(s *set.Set) *Iterator {
	return newIterator(KindPow, set.Val(s), &powCursor{pc: set.NewPowCursor(s)})
}

// StartNPow begins enumeration of every size-n subset of s.
func StartNPow(s *set.Set, n int) *Iterator {
	return newIterator(KindNPow, set.Val(s), &powCursor{pc: set.NewNPowCursor(s, n)})
}
