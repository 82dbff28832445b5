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

// Package value implements the tagged discriminated Value variant that
// every other package in this module traffics in: sets, maps, tuples,
// strings and big integers all show up on the wire as a Value, and they
// all share the same reference-counted, copy-on-write ownership discipline.
package value

import "strconv"

// Tag discriminates the payload held by a Value.
type Tag uint8

const (
	Omega Tag = iota
	Short
	Long
	Real
	String
	Set
	Map
	Tuple
	Procedure
	Object
	Iterator
)

func (t Tag) String() string {
	switch t {
	case Omega:
		return "omega"
	case Short:
		return "short"
	case Long:
		return "long"
	case Real:
		return "real"
	case String:
		return "string"
	case Set:
		return "set"
	case Map:
		return "map"
	case Tuple:
		return "tuple"
	case Procedure:
		return "procedure"
	case Object:
		return "object"
	case Iterator:
		return "iterator"
	default:
		return "unknown"
	}
}

// Heap is the interface every reference-counted payload must satisfy to
// live inside a Value. Implementations embed RefCounted to get refs() for
// free; the interface is otherwise sealed to this package because refs is
// unexported — nothing outside this module can hand us a Heap that skips
// the counting discipline.
type Heap interface {
	refs() *int32
	// Free releases everything this payload owns: unmark every child
	// specifier reachable from it, then return its own storage to
	// whatever freelist it came from. Free is only ever called once,
	// when the count reaches zero.
	Free()
}

// RefCounted is embedded by every heap payload (Set, Map, Tuple, Iterator,
// bignum.Long, bignum.Str, ...) to satisfy the unexported half of Heap.
type RefCounted struct{ count int32 }

func (r *RefCounted) refs() *int32 { return &r.count }

// Count reports the current reference count. Exposed for diagnostics and
// for the "aliases an input and use_count == 1" destructive-reuse check
// that set/vmap rely on.
func (r *RefCounted) Count() int32 { return r.count }

// Value is the (tag, payload) specifier described throughout the spec.
// The zero Value is Omega.
type Value struct {
	tag   Tag
	short int64
	real  float64
	heap  Heap
}

// Zero-value helpers for the scalar cases; heap cases go through NewHeap.

// OmegaValue is the designated undefined/absent marker.
var OmegaValue = Value{tag: Omega}

func NewShort(i int64) Value { return Value{tag: Short, short: i} }
func NewReal(f float64) Value { return Value{tag: Real, real: f} }

// NewHeap wraps h in a Value of the given tag and marks it — the returned
// Value is an owned specifier with refcount >= 1.
func NewHeap(tag Tag, h Heap) Value {
	v := Value{tag: tag, heap: h}
	Mark(&v)
	return v
}

func (v Value) Tag() Tag        { return v.tag }
func (v Value) IsOmega() bool   { return v.tag == Omega }
func (v Value) ShortValue() int64   { return v.short }
func (v Value) RealValue() float64  { return v.real }

// String renders a scalar Value for diagnostics. Heap-cased values print
// only their tag: rendering a Set/Map/Tuple's contents is each owning
// package's job (Set.Walk, Map.Domain, ...), not this package's.
func (v Value) String() string {
	switch v.tag {
	case Omega:
		return "omega"
	case Short:
		return strconv.FormatInt(v.short, 10)
	case Real:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	default:
		return v.tag.String()
	}
}

// Heap returns the underlying payload and true if v carries a heap case.
func (v Value) Heap() (Heap, bool) {
	if v.heap == nil {
		return nil, false
	}
	return v.heap, true
}

// MustHeap panics via Trap if v does not carry a heap payload; engine-level
// callers should have already checked the tag and should never hit this.
func (v Value) MustHeap() Heap {
	if v.heap == nil {
		Trap("MustHeap called on non-heap value (tag %s)", v.tag)
	}
	return v.heap
}

// Mark increments the referent's reference count, if v is a heap case.
// Creating a specifier that borrows a heap value must mark it first.
func Mark(v *Value) {
	if v.heap == nil {
		return
	}
	c := v.heap.refs()
	*c++
}

// Unmark decrements the referent's reference count and, on reaching zero,
// frees the referent (which recursively unmarks everything it owns). The
// specifier itself is reset to Omega afterward so a stale pointer into a
// freed node can't leak back out through it.
func Unmark(v *Value) {
	if v.heap == nil {
		return
	}
	c := v.heap.refs()
	*c--
	if *c == 0 {
		v.heap.Free()
	}
	v.heap = nil
	v.tag = Omega
}

// Assign stores src into *dst, following the self-assignment-safe order:
// mark the source before unmarking the prior target.
func Assign(dst *Value, src Value) {
	Mark(&src)
	old := *dst
	*dst = src
	Unmark(&old)
}

// Acquire adds one reference directly to a Heap payload, for callers that
// hold a payload outside of any Value wrapper (set/vmap's internal
// accumulator bookkeeping during union/difference/intersection).
func Acquire(h Heap) {
	c := h.refs()
	*c++
}

// Release drops one reference directly from a Heap payload, freeing it if
// the count reaches zero. The counterpart to Acquire.
func Release(h Heap) {
	c := h.refs()
	*c--
	if *c == 0 {
		h.Free()
	}
}

// Disown drops one reference from h without ever freeing it, even when
// the count reaches zero. The destructive-reuse accumulator selection in
// set/vmap's binary operators needs exactly this: a uniquely-owned input
// is reused in place as the result, so its one owned reference must turn
// into the same zero-count, unowned handle Empty/Clone already hand back
// rather than being relinquished and freed out from under the caller.
func Disown(h Heap) {
	c := h.refs()
	*c--
}

// Retain returns a new owned copy of v (mark then return), for callers
// that need to hand out a second reference to an existing specifier
// without consuming the first.
func Retain(v Value) Value {
	Mark(&v)
	return v
}
