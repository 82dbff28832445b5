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

import (
	"testing"

	"github.com/setlvm/engine/value"
)

func shorts(xs ...int64) []value.Value {
	out := make([]value.Value, len(xs))
	for i, x := range xs {
		out[i] = value.NewShort(x)
	}
	return out
}

func fromShorts(xs ...int64) *Set {
	s := Empty()
	for _, v := range shorts(xs...) {
		s.Insert(v)
	}
	return s
}

func TestEmptyCardinality(t *testing.T) {
	s := Empty()
	if got := s.Cardinality(); got != 0 {
		t.Fatalf("Cardinality() = %d, want 0", got)
	}
	if !s.Arb().IsOmega() {
		t.Fatalf("Arb() on empty set should be Omega")
	}
}

func TestInsertContainsRemove(t *testing.T) {
	s := fromShorts(1, 2, 3)
	if got := s.Cardinality(); got != 3 {
		t.Fatalf("Cardinality() = %d, want 3", got)
	}
	for _, x := range []int64{1, 2, 3} {
		if !s.Contains(value.NewShort(x)) {
			t.Fatalf("Contains(%d) = false, want true", x)
		}
	}
	if s.Contains(value.NewShort(4)) {
		t.Fatalf("Contains(4) = true, want false")
	}

	s.Insert(value.NewShort(1)) // duplicate insert is a no-op
	if got := s.Cardinality(); got != 3 {
		t.Fatalf("Cardinality() after duplicate insert = %d, want 3", got)
	}

	if !s.Remove(value.NewShort(2)) {
		t.Fatalf("Remove(2) = false, want true")
	}
	if s.Contains(value.NewShort(2)) {
		t.Fatalf("Contains(2) after Remove = true, want false")
	}
	if s.Remove(value.NewShort(2)) {
		t.Fatalf("second Remove(2) = true, want false")
	}
}

func TestFromMutatesInPlace(t *testing.T) {
	s := fromShorts(1, 2, 3)
	seen := map[int64]bool{}
	for s.Cardinality() > 0 {
		v := s.From()
		if v.IsOmega() {
			t.Fatalf("From() returned Omega while cardinality > 0")
		}
		seen[v.ShortValue()] = true
	}
	for _, x := range []int64{1, 2, 3} {
		if !seen[x] {
			t.Fatalf("From() never produced %d", x)
		}
	}
	if got := Empty().From(); !got.IsOmega() {
		t.Fatalf("From() on empty set should be Omega")
	}
}

func TestUnion(t *testing.T) {
	a := fromShorts(1, 2, 3)
	b := fromShorts(2, 3, 4)
	u := Union(a, b)
	if got := u.Cardinality(); got != 4 {
		t.Fatalf("Union cardinality = %d, want 4", got)
	}
	for _, x := range []int64{1, 2, 3, 4} {
		if !u.Contains(value.NewShort(x)) {
			t.Fatalf("union missing %d", x)
		}
	}
}

func TestDifference(t *testing.T) {
	a := fromShorts(1, 2, 3)
	b := fromShorts(2, 3, 4)
	d := Difference(a, b)
	if got := d.Cardinality(); got != 1 {
		t.Fatalf("Difference cardinality = %d, want 1", got)
	}
	if !d.Contains(value.NewShort(1)) {
		t.Fatalf("difference missing 1")
	}
}

func TestIntersection(t *testing.T) {
	a := fromShorts(1, 2, 3)
	b := fromShorts(2, 3, 4)
	i := Intersection(a, b)
	if got := i.Cardinality(); got != 2 {
		t.Fatalf("Intersection cardinality = %d, want 2", got)
	}
	for _, x := range []int64{2, 3} {
		if !i.Contains(value.NewShort(x)) {
			t.Fatalf("intersection missing %d", x)
		}
	}
}

func TestSymmetricDifference(t *testing.T) {
	a := fromShorts(1, 2, 3)
	b := fromShorts(2, 3, 4)
	sd := SymmetricDifference(a, b)
	if got := sd.Cardinality(); got != 2 {
		t.Fatalf("SymmetricDifference cardinality = %d, want 2", got)
	}
	for _, x := range []int64{1, 4} {
		if !sd.Contains(value.NewShort(x)) {
			t.Fatalf("symmetric difference missing %d", x)
		}
	}
}

func TestSubset(t *testing.T) {
	a := fromShorts(1, 2)
	b := fromShorts(1, 2, 3)
	if !Subset(a, b) {
		t.Fatalf("Subset(a, b) = false, want true")
	}
	if Subset(b, a) {
		t.Fatalf("Subset(b, a) = true, want false")
	}
}

func TestEqualValue(t *testing.T) {
	a := fromShorts(1, 2, 3)
	b := fromShorts(3, 2, 1)
	av, bv := Val(a), Val(b)
	if !value.Equal(av, bv) {
		t.Fatalf("sets with the same elements in different insertion order should be equal")
	}
	c := fromShorts(1, 2)
	if value.Equal(av, Val(c)) {
		t.Fatalf("sets with different cardinality should not be equal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := fromShorts(1, 2, 3)
	b := Clone(a)
	b.Insert(value.NewShort(4))
	if a.Contains(value.NewShort(4)) {
		t.Fatalf("mutating a clone should not affect the original")
	}
	if got := a.Cardinality(); got != 3 {
		t.Fatalf("original cardinality changed to %d after cloning, want 3", got)
	}
}

// TestUnionReusesUniquelyOwnedAccumulator exercises the actual
// destructive-reuse fast path: both inputs are Val-wrapped first, so each
// starts out uniquely owned (Count() == 1) the way a real dispatcher
// operand would be, rather than the bare Count() == 0 structs the other
// tests build with fromShorts.
func TestUnionReusesUniquelyOwnedAccumulator(t *testing.T) {
	av := Val(fromShorts(1, 2, 3))
	bv := Val(fromShorts(2, 3, 4))
	a := av.MustHeap().(*Set)
	b := bv.MustHeap().(*Set)
	if a.Count() != 1 || b.Count() != 1 {
		t.Fatalf("Val-wrapped inputs should be uniquely owned: a.Count()=%d b.Count()=%d", a.Count(), b.Count())
	}

	u := Union(a, b)
	if u != a {
		t.Fatalf("Union should reuse the uniquely-owned, equal-or-larger accumulator in place")
	}
	if got := u.Cardinality(); got != 4 {
		t.Fatalf("Union cardinality = %d, want 4", got)
	}
	if got := u.Count(); got != 0 {
		t.Fatalf("Union result Count() = %d, want 0 (unowned, matching Empty/Clone)", got)
	}
}

// TestUnionClonesSharedAccumulator covers the other branch of the same
// rule: an input with a second owner (Count() == 2) must not be mutated
// in place, and the original must remain intact (the copy-on-write
// property of §8) through that second owner after Union returns.
func TestUnionClonesSharedAccumulator(t *testing.T) {
	av := Val(fromShorts(1, 2, 3))
	shared := value.Retain(av)
	bv := Val(fromShorts(2, 3, 4))

	a := av.MustHeap().(*Set)
	b := bv.MustHeap().(*Set)
	if a.Count() != 2 {
		t.Fatalf("a.Count() = %d, want 2 (shared via `shared`)", a.Count())
	}

	u := Union(a, b)
	if u == a {
		t.Fatalf("Union must not mutate a shared accumulator in place")
	}
	if got := u.Cardinality(); got != 4 {
		t.Fatalf("Union cardinality = %d, want 4", got)
	}
	if got := a.Cardinality(); got != 3 {
		t.Fatalf("shared input mutated: Cardinality() = %d, want 3", got)
	}
	if a.Contains(value.NewShort(4)) {
		t.Fatalf("shared input mutated: should not contain 4")
	}
	value.Unmark(&shared)
}

// TestDifferenceReusesUniquelyOwnedAccumulator covers Difference, whose
// accumulator is always the left input regardless of cardinality.
func TestDifferenceReusesUniquelyOwnedAccumulator(t *testing.T) {
	av := Val(fromShorts(1, 2, 3))
	bv := Val(fromShorts(2, 3, 4))
	a := av.MustHeap().(*Set)
	b := bv.MustHeap().(*Set)

	d := Difference(a, b)
	if d != a {
		t.Fatalf("Difference should reuse the uniquely-owned left input in place")
	}
	if got := d.Cardinality(); got != 1 {
		t.Fatalf("Difference cardinality = %d, want 1", got)
	}
	if got := d.Count(); got != 0 {
		t.Fatalf("Difference result Count() = %d, want 0 (unowned, matching Empty/Clone)", got)
	}
}

// TestExpansionRoundTrip drives enough inserts to force the trie through
// at least one expansion, then removes everything to drive it back down,
// checking invariants at each step (see trie.Root.CheckInvariants).
func TestExpansionRoundTrip(t *testing.T) {
	s := Empty()
	const n = 500
	for i := int64(0); i < n; i++ {
		s.Insert(value.NewShort(i))
	}
	if err := s.root.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken after %d inserts: %v", n, err)
	}
	if got := s.Cardinality(); got != n {
		t.Fatalf("Cardinality() = %d, want %d", got, n)
	}
	for i := int64(0); i < n; i++ {
		if !s.Remove(value.NewShort(i)) {
			t.Fatalf("Remove(%d) = false, want true", i)
		}
	}
	if err := s.root.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken after draining: %v", err)
	}
	if got := s.Cardinality(); got != 0 {
		t.Fatalf("Cardinality() after draining = %d, want 0", got)
	}
}
