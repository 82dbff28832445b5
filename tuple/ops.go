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

package tuple

import "github.com/setlvm/engine/value"

// Clone produces a deep structural copy sharing no trie node with t:
// every present position's Value payload is marked, not duplicated.
func Clone(t *Tuple) *Tuple {
	nt := Empty()
	t.Walk(func(i int, v value.Value) {
		if !v.IsOmega() {
			nt.Set(i, value.Retain(v))
		}
	})
	// Clone preserves trailing Omega length, not just the highest set
	// index — grow height to match so out-of-range digits can't alias.
	nt.length = t.length
	nt.growTo(heightFor(nt.length))
	return nt
}

// Append adds v to the end of t, growing L by one, taking ownership of v.
func (t *Tuple) Append(v value.Value) {
	t.Set(t.length, v)
}

// Concat returns a new tuple holding a's elements followed by b's,
// consuming one reference to each.
func Concat(a, b *Tuple) *Tuple {
	result := Clone(a)
	base := a.Len()
	b.Walk(func(i int, v value.Value) {
		if !v.IsOmega() {
			result.Set(base+i, value.Retain(v))
		}
	})
	result.length = base + b.Len()
	result.growTo(heightFor(result.length))
	value.Release(a)
	value.Release(b)
	return result
}
