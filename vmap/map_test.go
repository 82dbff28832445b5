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

package vmap

import (
	"testing"

	"github.com/setlvm/engine/internal/diag"
	"github.com/setlvm/engine/set"
	"github.com/setlvm/engine/value"
)

func TestEmptyCardinality(t *testing.T) {
	m := Empty()
	if got := m.Cardinality(); got != 0 {
		t.Fatalf("Cardinality() = %d, want 0", got)
	}
	if !m.Image(value.NewShort(1)).IsOmega() {
		t.Fatalf("Image on empty map should be Omega")
	}
}

func TestInsertSingleValued(t *testing.T) {
	m := Empty()
	m.Insert(value.NewShort(1), value.NewShort(10))
	diag.Validate(t, m.UnderlyingRoot())

	if got := m.Cardinality(); got != 1 {
		t.Fatalf("Cardinality() = %d, want 1", got)
	}
	if got := m.Image(value.NewShort(1)); got.ShortValue() != 10 {
		t.Fatalf("Image(1) = %v, want 10", got)
	}

	// Re-inserting the same pair is a no-op.
	m.Insert(value.NewShort(1), value.NewShort(10))
	if got := m.Cardinality(); got != 1 {
		t.Fatalf("Cardinality() after duplicate insert = %d, want 1", got)
	}
}

func TestInsertPromotesToMultiValued(t *testing.T) {
	m := Empty()
	m.Insert(value.NewShort(1), value.NewShort(10))
	m.Insert(value.NewShort(1), value.NewShort(20))
	diag.Validate(t, m.UnderlyingRoot())

	if got := m.Cardinality(); got != 1 {
		t.Fatalf("Cardinality() = %d, want 1 (one domain key)", got)
	}
	rng := m.Range()
	if got := rng.Cardinality(); got != 2 {
		t.Fatalf("Range().Cardinality() = %d, want 2", got)
	}
	if !rng.Contains(value.NewShort(10)) || !rng.Contains(value.NewShort(20)) {
		t.Fatalf("Range() missing expected members: %v", rng)
	}
}

func TestDeletePairDemotesMultiValued(t *testing.T) {
	m := Empty()
	m.Insert(value.NewShort(1), value.NewShort(10))
	m.Insert(value.NewShort(1), value.NewShort(20))

	if !m.DeletePair(value.NewShort(1), value.NewShort(20)) {
		t.Fatalf("DeletePair(1, 20) = false, want true")
	}
	diag.Validate(t, m.UnderlyingRoot())

	if got := m.Image(value.NewShort(1)); got.ShortValue() != 10 {
		t.Fatalf("Image(1) after demotion = %v, want 10", got)
	}
	if m.DeletePair(value.NewShort(1), value.NewShort(999)) {
		t.Fatalf("DeletePair with wrong range should report false")
	}
}

func TestDeleteDomain(t *testing.T) {
	m := Empty()
	m.Insert(value.NewShort(1), value.NewShort(10))
	m.Insert(value.NewShort(2), value.NewShort(20))

	if !m.DeleteDomain(value.NewShort(1)) {
		t.Fatalf("DeleteDomain(1) = false, want true")
	}
	if got := m.Cardinality(); got != 1 {
		t.Fatalf("Cardinality() after DeleteDomain = %d, want 1", got)
	}
	if m.DeleteDomain(value.NewShort(1)) {
		t.Fatalf("DeleteDomain on absent key should report false")
	}
}

func TestDomainAndRange(t *testing.T) {
	m := Empty()
	m.Insert(value.NewShort(1), value.NewShort(10))
	m.Insert(value.NewShort(2), value.NewShort(10))
	m.Insert(value.NewShort(3), value.NewShort(30))

	dom := m.Domain()
	if got := dom.Cardinality(); got != 3 {
		t.Fatalf("Domain().Cardinality() = %d, want 3", got)
	}

	rng := m.Range()
	if got := rng.Cardinality(); got != 2 {
		t.Fatalf("Range().Cardinality() = %d, want 2 (10 shared by two keys)", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := Empty()
	m.Insert(value.NewShort(1), value.NewShort(10))

	m2 := Clone(m)
	m2.Insert(value.NewShort(2), value.NewShort(20))

	if got := m.Cardinality(); got != 1 {
		t.Fatalf("original Cardinality() = %d, want 1 (clone must not alias)", got)
	}
	if got := m2.Cardinality(); got != 2 {
		t.Fatalf("clone Cardinality() = %d, want 2", got)
	}
}

func TestEqualValue(t *testing.T) {
	a := Empty()
	a.Insert(value.NewShort(1), value.NewShort(10))
	b := Empty()
	b.Insert(value.NewShort(1), value.NewShort(10))

	if !a.EqualValue(Val(b)) {
		t.Fatalf("equal maps compared unequal")
	}

	b.Insert(value.NewShort(2), value.NewShort(20))
	if a.EqualValue(Val(b)) {
		t.Fatalf("maps of different cardinality compared equal")
	}
}

func TestImageMultiValuedReturnsSet(t *testing.T) {
	m := Empty()
	m.Insert(value.NewShort(1), value.NewShort(10))
	m.Insert(value.NewShort(1), value.NewShort(20))

	img := m.Image(value.NewShort(1))
	if img.Tag() != value.Set {
		t.Fatalf("Image on multi-valued cell returned tag %s, want Set", img.Tag())
	}
	s := img.MustHeap().(*set.Set)
	if got := s.Cardinality(); got != 2 {
		t.Fatalf("Image set cardinality = %d, want 2", got)
	}
}
