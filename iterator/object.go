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

package iterator

import (
	"github.com/setlvm/engine/tuple"
	"github.com/setlvm/engine/value"
)

// ProcedureInvoker is the one callback the core drives user code through
// (spec.md §6: "the core never drives the bytecode dispatcher directly").
// It stands in for call_procedure(&result, &proc, &self, argc, is_c_return,
// is_literal, extra_flags): argc is always 0 for the iterator protocol
// methods (Iterator_Start/Iterator_Next take no explicit arguments beyond
// self), isCReturn selects whether the callee's return value is collected,
// and isLiteral/extraFlags are threaded straight through to whatever
// dispatcher-level procedure-call mechanics the concrete implementation
// needs. Declared here rather than in package engine so that iterator
// never imports engine — engine implements this interface and imports
// iterator, not the reverse.
type ProcedureInvoker interface {
	CallProcedure(proc, self value.Value, argc int, isCReturn, isLiteral bool, extraFlags int) (value.Value, error)
}

// objectState holds what every object-iteration kind shares: the invoker
// callback, the iterated object, and the resolved Iterator_Next-family
// procedure to call on each step. The Iterator_Start-family procedure is
// only needed once, at Start time, so it isn't retained here.
type objectState struct {
	invoker  ProcedureInvoker
	self     value.Value
	nextProc value.Value
}

// callNext invokes the resolved next-procedure and validates its return
// shape per spec.md §4.6: "the returned value must be Omega (exhausted) or
// a one- or two-element tuple ... any other return is a fatal user error."
// It returns the validated tuple still wrapped in its owning Value; the
// caller must Unmark that Value once it has copied out whatever elements
// it needs via Get (which hands back independent references).
func (os *objectState) callNext() (ret value.Value, t *tuple.Tuple, ok bool, err error) {
	ret, err = os.invoker.CallProcedure(os.nextProc, os.self, 0, true, true, 0)
	if err != nil {
		return value.OmegaValue, nil, false, err
	}
	if ret.IsOmega() {
		return value.OmegaValue, nil, false, nil
	}
	if ret.Tag() != value.Tuple {
		value.Unmark(&ret)
		return value.OmegaValue, nil, false, value.NewAbend(value.ContractViolation,
			"return from Iterator_Next must be tuple or omega, got %s", ret.Tag())
	}
	t = ret.MustHeap().(*tuple.Tuple)
	if t.Len() < 1 || t.Len() > 2 {
		value.Unmark(&ret)
		return value.OmegaValue, nil, false, value.NewAbend(value.ContractViolation,
			"return from Iterator_Next must be a one- or two-element tuple, got length %d", t.Len())
	}
	return ret, t, true, nil
}

// runStart calls the resolved Iterator_Start-family procedure once, with
// no return value consumed, matching start_object_iterator's
// call_procedure(SETL_SYSTEM NULL, ...) (the NULL target).
func runStart(invoker ProcedureInvoker, startProc, self value.Value) error {
	_, err := invoker.CallProcedure(startProc, self, 0, false, true, 0)
	return err
}

// objectCursor implements the single-valued Object iteration kind.
type objectCursor struct{ objectState }

func (oc *objectCursor) next() (value.Value, value.Value, bool, error) {
	ret, t, ok, err := oc.callNext()
	if err != nil {
		return errResult(err)
	}
	if !ok {
		return doneResult()
	}
	v := t.Get(0)
	value.Unmark(&ret)
	return pairResult(v, value.OmegaValue)
}

// StartObject begins iteration over self via its class's Iterator_Start/
// Iterator_Next methods, already resolved to callable procedures by the
// caller's ClassTable. Returns an error only if invoking Iterator_Start
// itself raises one (e.g. a nested abend in user code).
func StartObject(invoker ProcedureInvoker, self, startProc, nextProc value.Value) (*Iterator, error) {
	if err := runStart(invoker, startProc, self); err != nil {
		return nil, err
	}
	return newIterator(KindObject, value.Retain(self), &objectCursor{
		objectState{invoker: invoker, self: self, nextProc: nextProc},
	}), nil
}

// objectPairCursor implements the ObjectPair iteration kind: the returned
// tuple's first and second elements become the domain and range.
type objectPairCursor struct{ objectState }

func (oc *objectPairCursor) next() (value.Value, value.Value, bool, error) {
	ret, t, ok, err := oc.callNext()
	if err != nil {
		return errResult(err)
	}
	if !ok {
		return doneResult()
	}
	d, r := t.Get(0), t.Get(1)
	value.Unmark(&ret)
	return pairResult(d, r)
}

// StartObjectPair begins (d, r) iteration over self, using the
// Set_Iterator_Start/Set_Iterator_Next method pair (spec.md §4.6: "pair and
// multi variants use Set_Iterator_Start/Set_Iterator_Next").
func StartObjectPair(invoker ProcedureInvoker, self, startProc, nextProc value.Value) (*Iterator, error) {
	if err := runStart(invoker, startProc, self); err != nil {
		return nil, err
	}
	return newIterator(KindObjectPair, value.Retain(self), &objectPairCursor{
		objectState{invoker: invoker, self: self, nextProc: nextProc},
	}), nil
}

// objectMultiCursor implements the ObjectMulti iteration kind: identical
// wire shape to ObjectPair, distinguished only by which class method pair
// the caller resolved and handed in (spec.md draws the Object/ObjectPair/
// ObjectMulti distinction at the Iterator_Start vs. Set_Iterator_Start
// method-name level, not in the per-step return contract).
type objectMultiCursor struct{ objectState }

func (oc *objectMultiCursor) next() (value.Value, value.Value, bool, error) {
	ret, t, ok, err := oc.callNext()
	if err != nil {
		return errResult(err)
	}
	if !ok {
		return doneResult()
	}
	d, r := t.Get(0), t.Get(1)
	value.Unmark(&ret)
	return pairResult(d, r)
}

// StartObjectMulti begins multi-valued-pair iteration over self, using
// the Set_Iterator_Start/Set_Iterator_Next method pair.
func StartObjectMulti(invoker ProcedureInvoker, self, startProc, nextProc value.Value) (*Iterator, error) {
	if err := runStart(invoker, startProc, self); err != nil {
		return nil, err
	}
	return newIterator(KindObjectMulti, value.Retain(self), &objectMultiCursor{
		objectState{invoker: invoker, self: self, nextProc: nextProc},
	}), nil
}
