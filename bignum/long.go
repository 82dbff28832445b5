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

// Package bignum implements the two variable-size scalar payloads of the
// Value variant: Long (arbitrary-precision integer) and String (chunked
// mutable string).
package bignum

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/setlvm/engine/value"
)

// Long is the Long case of Value: an arbitrary-precision integer. The
// value lives only in v; Add/Sub/Mul convert non-negative operands that fit
// in 256 bits to uint256.Int on each call for their fast path, the same way the teacher treats *big.Int as the
// ceiling above fixed-width uint256 amounts (core/state_transition.go).
type Long struct {
	value.RefCounted
	v *big.Int
}

// NewLong wraps a copy of n (the caller's big.Int is never aliased).
func NewLong(n *big.Int) *Long {
	return &Long{v: new(big.Int).Set(n)}
}

// LongValue builds an owned Value wrapping l.
func LongValue(l *Long) value.Value { return value.NewHeap(value.Long, l) }

// Big returns the arbitrary-precision magnitude. Callers must not mutate
// the returned big.Int.
func (l *Long) Big() *big.Int { return l.v }

func (l *Long) Free() {}

func (l *Long) HashCode() uint32 {
	words := l.v.Bits()
	var h uint32 = 2166136261 // FNV-1a offset basis
	for _, w := range words {
		for i := 0; i < 8; i++ {
			h ^= uint32(w & 0xff)
			h *= 16777619
			w >>= 8
		}
	}
	if l.v.Sign() < 0 {
		h ^= 0x9e3779b9
	}
	return h
}

func (l *Long) EqualValue(other value.Value) bool {
	if other.Tag() != value.Long {
		return false
	}
	h, ok := other.Heap()
	if !ok {
		return false
	}
	ol, ok := h.(*Long)
	if !ok {
		return false
	}
	return l.v.Cmp(ol.v) == 0
}

// fastUint256 reports whether n is a non-negative value that fits in 256
// bits, returning the fast-path representation.
func fastUint256(n *big.Int) (*uint256.Int, bool) {
	if n.Sign() < 0 || n.BitLen() > 256 {
		return nil, false
	}
	u, overflow := uint256.FromBig(n)
	if overflow {
		return nil, false
	}
	return u, true
}

// Add returns a new Long holding a+b, using the uint256 fast path when
// both operands are non-negative and the sum doesn't overflow 256 bits.
func Add(a, b *Long) *Long {
	if fa, ok := fastUint256(a.v); ok {
		if fb, ok2 := fastUint256(b.v); ok2 {
			var r uint256.Int
			if _, overflow := r.AddOverflow(fa, fb); !overflow {
				return NewLong(r.ToBig())
			}
		}
	}
	return NewLong(new(big.Int).Add(a.v, b.v))
}

// Sub returns a new Long holding a-b.
func Sub(a, b *Long) *Long {
	if fa, ok := fastUint256(a.v); ok {
		if fb, ok2 := fastUint256(b.v); ok2 && fb.Cmp(fa) <= 0 {
			var r uint256.Int
			r.Sub(fa, fb)
			return NewLong(r.ToBig())
		}
	}
	return NewLong(new(big.Int).Sub(a.v, b.v))
}

// Mul returns a new Long holding a*b.
func Mul(a, b *Long) *Long {
	if fa, ok := fastUint256(a.v); ok {
		if fb, ok2 := fastUint256(b.v); ok2 {
			var r uint256.Int
			if _, overflow := r.MulOverflow(fa, fb); !overflow {
				return NewLong(r.ToBig())
			}
		}
	}
	return NewLong(new(big.Int).Mul(a.v, b.v))
}

// Cmp returns -1/0/1 comparing a and b, same convention as big.Int.Cmp.
func Cmp(a, b *Long) int { return a.v.Cmp(b.v) }
