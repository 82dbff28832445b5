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

package value

// Hashable is implemented by every heap payload that participates in
// set/map clash-list routing and whole-collection hash short-circuits
// (bignum.Long, bignum.Str, and the Set/Map/Tuple types built on trie).
type Hashable interface {
	HashCode() uint32
}

// Equatable is implemented by every heap payload capable of comparing
// itself structurally against another Value of the same tag.
type Equatable interface {
	EqualValue(other Value) bool
}

// Hash computes the 32-bit hash code spec.md's HashTrie routes on. Scalars
// hash directly; heap cases delegate to Hashable.
func Hash(v Value) uint32 {
	switch v.tag {
	case Omega:
		return 0
	case Short:
		return hashInt64(v.short)
	case Real:
		return hashInt64(int64(v.real))
	default:
		if h, ok := v.heap.(Hashable); ok {
			return h.HashCode()
		}
		Trap("value of tag %s is not Hashable", v.tag)
		return 0
	}
}

func hashInt64(i int64) uint32 {
	u := uint64(i)
	// splitmix64 finalizer: cheap, well-distributed avalanche for
	// machine-word keys routed through the trie's bucket formula.
	u ^= u >> 30
	u *= 0xbf58476d1ce4e5b9
	u ^= u >> 27
	u *= 0x94d049bb133111eb
	u ^= u >> 31
	return uint32(u ^ (u >> 32))
}

// Equal implements spec_equal: tags must agree, then contents must agree
// structurally. Set/Map/Tuple short-circuit on their whole-collection hash
// before ever walking cells.
func Equal(a, b Value) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case Omega:
		return true
	case Short:
		return a.short == b.short
	case Real:
		return a.real == b.real
	default:
		if a.heap == b.heap {
			return true
		}
		ha, aok := a.heap.(Hashable)
		hb, bok := b.heap.(Hashable)
		if aok && bok && ha.HashCode() != hb.HashCode() {
			return false
		}
		eq, ok := a.heap.(Equatable)
		if !ok {
			Trap("value of tag %s is not Equatable", a.tag)
		}
		return eq.EqualValue(b)
	}
}
