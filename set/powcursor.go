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

// PowCursor is the suspendable counterpart to Powerset/NPowerset: one
// subset produced per Next call instead of the whole 2^|s| (or C(|s|,n))
// family built eagerly, for the iterator package's Pow/NPow kinds. It
// drives the same elemArray bit-vector as pow.go, just one step at a time.
type PowCursor struct {
	ea        elemArray
	nary      bool
	n         int
	exhausted bool
}

// NewPowCursor starts a plain powerset walk over s (not consumed: the
// caller's reference is unaffected, matching the iterator package's
// start(&target, &source) contract of marking rather than consuming).
func NewPowCursor(s *Set) *PowCursor {
	return &PowCursor{ea: collect(s)}
}

// NewNPowCursor starts an n-combination walk over s.
func NewNPowCursor(s *Set, n int) *PowCursor {
	ea := collect(s)
	if n < 0 || n > len(ea.elems) {
		return &PowCursor{ea: ea, nary: true, n: n, exhausted: true}
	}
	for i := 0; i < n; i++ {
		ea.in[i] = true
	}
	return &PowCursor{ea: ea, nary: true, n: n}
}

// Next returns the next subset, or ok=false once every combination this
// cursor covers has been produced.
func (c *PowCursor) Next() (sub *Set, ok bool) {
	if c.exhausted {
		return nil, false
	}
	sub = c.ea.build()
	if !c.nary {
		if c.ea.advance() {
			c.exhausted = true
		}
		return sub, true
	}
	if c.n == 0 || !nextCombination(c.ea.in) {
		c.exhausted = true
	}
	return sub, true
}
