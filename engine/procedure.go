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

// Package engine implements the EngineAPI surface of spec.md §6: a flat
// function layer over value/set/vmap/tuple/iterator, plus the
// call_procedure callback contract that lets the core drive a user class's
// iterator methods without ever importing a bytecode dispatcher (there is
// none here — spec.md §1 names the dispatcher itself as out of scope).
package engine

import "github.com/setlvm/engine/value"

// Procedure is the value.Procedure heap payload: a thin host-Go callable
// standing in for what would otherwise be a bytecode entry point. This is
// the one place the missing dispatcher has to be represented by
// *something*, since ClassTable-resolved methods and call_procedure both
// need a concrete Value to carry around; it deliberately does nothing
// beyond invoke the Go closure it was built with.
type Procedure struct {
	value.RefCounted
	name string
	fn   func(self value.Value, argc int, isCReturn, isLiteral bool, extraFlags int) (value.Value, error)
}

// NewProcedure wraps fn as a named, callable Procedure.
func NewProcedure(name string, fn func(self value.Value, argc int, isCReturn, isLiteral bool, extraFlags int) (value.Value, error)) *Procedure {
	return &Procedure{name: name, fn: fn}
}

// Name reports the procedure's registered name.
func (p *Procedure) Name() string { return p.name }

// Val wraps p as an owned value.Value of tag Procedure.
func Val(p *Procedure) value.Value { return value.NewHeap(value.Procedure, p) }

// Free implements value.Heap. A Procedure owns no child specifiers.
func (p *Procedure) Free() {}

// Dispatcher is the zero-value iterator.ProcedureInvoker implementation:
// call_procedure's entire job, in the absence of a real bytecode
// dispatcher, is to type-assert proc down to *Procedure and invoke its Go
// closure.
type Dispatcher struct{}

// CallProcedure implements iterator.ProcedureInvoker.
func (Dispatcher) CallProcedure(proc, self value.Value, argc int, isCReturn, isLiteral bool, extraFlags int) (value.Value, error) {
	if proc.Tag() != value.Procedure {
		return value.OmegaValue, value.NewAbend(value.TypeError,
			"call_procedure: expected Procedure, got %s", proc.Tag())
	}
	p := proc.MustHeap().(*Procedure)
	return p.fn(self, argc, isCReturn, isLiteral, extraFlags)
}
