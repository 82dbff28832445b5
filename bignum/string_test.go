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

import "testing"

func TestNewStrLenAndAt(t *testing.T) {
	s := NewStr("hello")
	if got := s.Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}
	for i, want := range []byte("hello") {
		b, ok := s.At(i)
		if !ok || b != want {
			t.Fatalf("At(%d) = (%c, %v), want (%c, true)", i, b, ok, want)
		}
	}
	if _, ok := s.At(5); ok {
		t.Fatalf("At(5) should be out of range for a 5-byte string")
	}
}

func TestAppend(t *testing.T) {
	s := NewStr("foo")
	s.Append(NewStr("bar"))
	if got := s.String(); got != "foobar" {
		t.Fatalf("String() = %q, want %q", got, "foobar")
	}
	if got := s.Len(); got != 6 {
		t.Fatalf("Len() = %d, want 6", got)
	}
}

func TestEqualValue(t *testing.T) {
	a := NewStr("abc")
	b := NewStr("abc")
	if !a.EqualValue(StrValue(b)) {
		t.Fatalf("equal strings compared unequal")
	}
	c := NewStr("abd")
	if a.EqualValue(StrValue(c)) {
		t.Fatalf("unequal strings compared equal")
	}
}

func TestEqualValueAcrossAppendHistory(t *testing.T) {
	// a is built in one chunk; b is built by appending, so chunk
	// boundaries differ even though the flattened contents match.
	a := NewStr("abcdef")
	b := NewStr("abc")
	b.Append(NewStr("def"))
	if !a.EqualValue(StrValue(b)) {
		t.Fatalf("strings with different chunk histories but equal contents compared unequal")
	}
}

func TestCursorWalksInOrder(t *testing.T) {
	s := NewStr("xyz")
	c := s.Cursor()
	var got []byte
	for {
		b, idx, ok := c.Next()
		if !ok {
			break
		}
		if idx != len(got) {
			t.Fatalf("Cursor index = %d, want %d", idx, len(got))
		}
		got = append(got, b)
	}
	if string(got) != "xyz" {
		t.Fatalf("cursor walked %q, want %q", got, "xyz")
	}
}

func TestHashCodeStable(t *testing.T) {
	a := NewStr("repeatable")
	b := NewStr("repeatable")
	if a.HashCode() != b.HashCode() {
		t.Fatalf("equal strings hashed differently")
	}
}
