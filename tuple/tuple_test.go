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

import (
	"testing"

	"github.com/setlvm/engine/value"
)

func TestEmptyLen(t *testing.T) {
	tup := Empty()
	if got := tup.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
	if !tup.Get(0).IsOmega() {
		t.Fatalf("Get(0) on empty tuple should be Omega")
	}
}

func TestSetGet(t *testing.T) {
	tup := Empty()
	tup.Set(0, value.NewShort(10))
	tup.Set(2, value.NewShort(30))
	if got := tup.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if got := tup.Get(0); got.ShortValue() != 10 {
		t.Fatalf("Get(0) = %d, want 10", got.ShortValue())
	}
	if !tup.Get(1).IsOmega() {
		t.Fatalf("Get(1) should be Omega (never set)")
	}
	if got := tup.Get(2); got.ShortValue() != 30 {
		t.Fatalf("Get(2) = %d, want 30", got.ShortValue())
	}
	if !tup.Get(3).IsOmega() {
		t.Fatalf("Get(i >= L) should be Omega")
	}
}

func TestSetOmegaDeletes(t *testing.T) {
	tup := Empty()
	tup.Set(5, value.NewShort(1))
	tup.Set(5, value.OmegaValue)
	if !tup.Get(5).IsOmega() {
		t.Fatalf("Get(5) after set(5, Omega) should be Omega")
	}
	if got := tup.Len(); got != 6 {
		t.Fatalf("Len() = %d, want 6 (set(i,Omega) does not shrink length)", got)
	}
}

func TestAppend(t *testing.T) {
	tup := Empty()
	tup.Append(value.NewShort(1))
	tup.Append(value.NewShort(2))
	tup.Append(value.NewShort(3))
	if got := tup.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	for i, want := range []int64{1, 2, 3} {
		if got := tup.Get(i); got.ShortValue() != want {
			t.Fatalf("Get(%d) = %d, want %d", i, got.ShortValue(), want)
		}
	}
}

func TestGrowsAcrossMultipleLevels(t *testing.T) {
	tup := Empty()
	const n = 5000
	for i := int64(0); i < n; i++ {
		tup.Set(int(i), value.NewShort(i))
	}
	if got := tup.Len(); got != n {
		t.Fatalf("Len() = %d, want %d", got, n)
	}
	for i := int64(0); i < n; i += 137 {
		if got := tup.Get(int(i)); got.ShortValue() != i {
			t.Fatalf("Get(%d) = %d, want %d", i, got.ShortValue(), i)
		}
	}
}

func TestEqualValue(t *testing.T) {
	a := Empty()
	a.Set(0, value.NewShort(1))
	a.Set(2, value.NewShort(3))
	b := Empty()
	b.Set(0, value.NewShort(1))
	b.Set(2, value.NewShort(3))
	if !value.Equal(Val(a), Val(b)) {
		t.Fatalf("equal tuples compared unequal")
	}
	b.Set(1, value.NewShort(99))
	if value.Equal(Val(a), Val(b)) {
		t.Fatalf("tuples with different contents compared equal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Empty()
	a.Set(0, value.NewShort(1))
	b := Clone(a)
	b.Set(0, value.NewShort(2))
	if got := a.Get(0); got.ShortValue() != 1 {
		t.Fatalf("mutating a clone should not affect the original, got %d", got.ShortValue())
	}
}

func TestConcat(t *testing.T) {
	a := Empty()
	a.Append(value.NewShort(1))
	a.Append(value.NewShort(2))
	b := Empty()
	b.Append(value.NewShort(3))
	c := Concat(a, b)
	if got := c.Len(); got != 3 {
		t.Fatalf("Concat Len() = %d, want 3", got)
	}
	for i, want := range []int64{1, 2, 3} {
		if got := c.Get(i); got.ShortValue() != want {
			t.Fatalf("Concat Get(%d) = %d, want %d", i, got.ShortValue(), want)
		}
	}
}
