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

package engine

import (
	"testing"

	"github.com/setlvm/engine/tuple"
	"github.com/setlvm/engine/value"
)

// counterState backs a minimal user class: Iterator_Start resets a counter
// stashed on self, Iterator_Next yields increasing shorts 0..bound-1 then
// Omega. Self here is a counterState wrapped under the Object tag, since
// this engine has no object representation of its own (spec.md §6 leaves that to the
// dispatcher) — the test only needs something CallProcedure can thread
// through as "self".
type counterState struct {
	value.RefCounted
	next  int64
	bound int64
}

func (c *counterState) Free() {}

func counterVal(c *counterState) value.Value {
	// Borrow the Object tag to stand in for "some user-defined instance";
	// nothing here interprets Object beyond carrying this payload around.
	return value.NewHeap(value.Object, c)
}

func newCounterProcedures(t *testing.T) (start, next value.Value) {
	t.Helper()
	startProc := NewProcedure("Iterator_Start", func(self value.Value, argc int, isCReturn, isLiteral bool, extraFlags int) (value.Value, error) {
		c := self.MustHeap().(*counterState)
		c.next = 0
		return value.OmegaValue, nil
	})
	nextProc := NewProcedure("Iterator_Next", func(self value.Value, argc int, isCReturn, isLiteral bool, extraFlags int) (value.Value, error) {
		c := self.MustHeap().(*counterState)
		if c.next >= c.bound {
			return value.OmegaValue, nil
		}
		v := value.NewShort(c.next)
		c.next++
		out := tuple.Empty()
		out.Set(0, v)
		return tuple.Val(out), nil
	})
	return Val(startProc), Val(nextProc)
}

func TestClassTableResolveAndObjectIteration(t *testing.T) {
	ct := NewClassTable()
	start, next := newCounterProcedures(t)
	ct.Define("Counter", IteratorStart, start)
	ct.Define("Counter", IteratorNext, next)

	self := counterVal(&counterState{bound: 3})
	it, err := StartObjectIterator(ct, "Counter", self)
	if err != nil {
		t.Fatalf("StartObjectIterator: %v", err)
	}

	var got []int64
	for {
		v, _, ok, err := it.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, v.ShortValue())
		value.Unmark(&v)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("got %v, want [0 1 2]", got)
	}
	it.Free()
}

func TestClassTableResolveMissingMethod(t *testing.T) {
	ct := NewClassTable()
	if _, err := ct.Resolve("Nope", IteratorStart); err == nil {
		t.Fatalf("expected MissingMethod abend, got nil")
	}
}

func TestClassTableResolveCaches(t *testing.T) {
	ct := NewClassTable()
	start, next := newCounterProcedures(t)
	ct.Define("Counter", IteratorStart, start)
	ct.Define("Counter", IteratorNext, next)

	first, err := ct.Resolve("Counter", IteratorStart)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := ct.Resolve("Counter", IteratorStart)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first.Tag() != second.Tag() {
		t.Fatalf("cached resolution returned a different tag")
	}
}

func TestDispatcherRejectsNonProcedure(t *testing.T) {
	d := Dispatcher{}
	_, err := d.CallProcedure(value.NewShort(1), value.OmegaValue, 0, true, true, 0)
	if err == nil {
		t.Fatalf("expected TypeError, got nil")
	}
}
