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

// Package trie implements the extendible hash trie that backs both Set and
// Map: a generic structure of (hash, key[, range]) cells, reference
// counted at the root, expanding and contracting to keep clash lists
// short. The node shape — small fixed-fanout structs drawn from a
// sync.Pool, reached by an iterative descent that materialises missing
// headers on the way down — is
// adapted from the teacher's StackTrie (trie/stacktrie.go in the source
// repo this module started from): that trie was insert-only and hashed
// subtrees away once done with them, where this one stays fully mutable
// and never discards structure, but the pooled-node, parent-pointer
// control flow carries over directly.
package trie

import (
	"sync"

	cmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/setlvm/engine/value"
)

const (
	// R is SET_HASH_SIZE in the source material: the trie's fanout, a
	// power of two.
	R = 32
	// Shift is log2(R): bits consumed from the hash per trie level.
	Shift = 5
	// ClashFactor is the clash-list-length constant C that governs the
	// expansion trigger.
	ClashFactor = 4
)

// Cell is one entry in a leaf clash list: a Set element, or a Map
// (domain, range) pair when HasRange is set. Cells are linked in a single
// clash list, sorted ascending by Hash.
type Cell struct {
	Hash       uint32
	Key        value.Value
	HasRange   bool
	Range      value.Value
	IsMultiVal bool
	next       *Cell
}

// Next returns the next cell in this clash list, or nil.
func (c *Cell) Next() *Cell { return c.next }

// node is a child slot: either null, an internal subheader, or (at the
// bottom trie level) the head of a leaf clash list. Exactly one of sub/leaf
// is non-nil at a time.
type node struct {
	sub  *header
	leaf *Cell
}

func (n node) isNull() bool { return n.sub == nil && n.leaf == nil }

// header is an internal trie node: parent pointer and child-index let
// iteration resume without a recursion stack, per spec.md's design notes.
type header struct {
	parent     *header
	childIndex int
	children   [R]node
}

var headerPool = sync.Pool{New: func() any { return new(header) }}

func newHeader(parent *header, idx int) *header {
	h := headerPool.Get().(*header)
	h.parent = parent
	h.childIndex = idx
	for i := range h.children {
		h.children[i] = node{}
	}
	return h
}

func freeHeader(h *header) {
	h.parent = nil
	headerPool.Put(h)
}

var cellPool = sync.Pool{New: func() any { return new(Cell) }}

// NewCell allocates a cell ready to be filled in and inserted.
func NewCell() *Cell { return cellPool.Get().(*Cell) }

func freeCellNode(c *Cell) {
	*c = Cell{}
	cellPool.Put(c)
}

// ReleaseCell unmarks a removed cell's owned Value payloads and returns its
// storage to the pool. Call this once, after Remove, when the caller is
// done reading the cell (e.g. after copying out the key it needed).
func ReleaseCell(c *Cell) {
	value.Unmark(&c.Key)
	if c.HasRange {
		value.Unmark(&c.Range)
	}
	freeCellNode(c)
}

// Options carries optional diagnostics hooks, in the fluent With... style
// of the teacher's StackTrieOptions.
type Options struct {
	Expansions   metrics.Counter
	Contractions metrics.Counter
	Height       metrics.Gauge
}

func NewOptions() *Options { return &Options{} }

func (o *Options) WithCounters(expansions, contractions metrics.Counter) *Options {
	o.Expansions = expansions
	o.Contractions = contractions
	return o
}

func (o *Options) WithHeightGauge(g metrics.Gauge) *Options {
	o.Height = g
	return o
}

// Root is the trie root header described in spec.md §3: reference count
// lives one level up (Set/Map embed value.RefCounted themselves — a Root
// is never independently shared, it's always owned by exactly one Set or
// Map specifier), height H, cardinality N, and the whole-trie hash
// summary HS.
type Root struct {
	opts   *Options
	height int
	n      int
	hs     uint32
	top    *header // nil when height == 0
	flat   *Cell   // used only when height == 0
}

// NewRoot builds an empty trie.
func NewRoot(opts *Options) *Root {
	if opts == nil {
		opts = NewOptions()
	}
	return &Root{opts: opts}
}

func (r *Root) Height() int        { return r.height }
func (r *Root) Cardinality() int   { return r.n }
func (r *Root) HashSummary() uint32 { return r.hs }

func pow(base uint64, exp int) uint64 {
	result := uint64(1)
	for i := 0; i < exp; i++ {
		next, overflow := cmath.SafeMul(result, base)
		if overflow {
			return ^uint64(0)
		}
		result = next
	}
	return result
}

func expansionTrigger(height int) uint64 {
	return pow(R, height+1) * ClashFactor
}

// slotRef locates the clash-list slot a given hash routes to, plus enough
// context (the bottom header and its index) to prune the path after a
// deletion empties it.
type slotRef struct {
	ptr **Cell
	hdr *header
	idx int
}

func (root *Root) locate(h uint32, create bool) *slotRef {
	if root.height == 0 {
		return &slotRef{ptr: &root.flat}
	}
	hdr := root.top
	shift := 0
	remaining := root.height
	for remaining > 1 {
		idx := int((h >> uint(shift)) & (R - 1))
		if hdr.children[idx].sub == nil {
			if !create {
				return nil
			}
			hdr.children[idx] = node{sub: newHeader(hdr, idx)}
		}
		hdr = hdr.children[idx].sub
		shift += Shift
		remaining--
	}
	idx := int((h >> uint(shift)) & (R - 1))
	return &slotRef{ptr: &hdr.children[idx].leaf, hdr: hdr, idx: idx}
}

func insertSorted(slot **Cell, cell *Cell) {
	var prev *Cell
	cur := *slot
	for cur != nil && cur.Hash <= cell.Hash {
		prev = cur
		cur = cur.next
	}
	cell.next = cur
	if prev == nil {
		*slot = cell
	} else {
		prev.next = cell
	}
}

func findInList(slot **Cell, h uint32, key value.Value) (prev, found *Cell) {
	cur := *slot
	for cur != nil {
		if cur.Hash > h {
			break
		}
		if cur.Hash == h && value.Equal(cur.Key, key) {
			return prev, cur
		}
		prev = cur
		cur = cur.next
	}
	return nil, nil
}

func unlinkFrom(prev *Cell, slot **Cell, cell *Cell) {
	if prev == nil {
		*slot = cell.next
	} else {
		prev.next = cell.next
	}
}

// Insert adds a fully-formed cell (hash, key and, for maps, range already
// set). Callers must have already established via Lookup that no cell for
// this key exists — Insert does not check for duplicates.
func (root *Root) Insert(cell *Cell) {
	ref := root.locate(cell.Hash, true)
	insertSorted(ref.ptr, cell)
	root.n++
	root.hs ^= cell.Hash
	if uint64(root.n) > expansionTrigger(root.height) {
		root.expand()
	}
}

// Lookup returns the cell for key with the given hash, or nil.
func (root *Root) Lookup(h uint32, key value.Value) *Cell {
	ref := root.locate(h, false)
	if ref == nil {
		return nil
	}
	for c := *ref.ptr; c != nil; c = c.next {
		if c.Hash > h {
			break
		}
		if c.Hash == h && value.Equal(c.Key, key) {
			return c
		}
	}
	return nil
}

// Remove deletes the cell for key with the given hash, returning it and
// true, or (nil, false) if no such cell exists.
func (root *Root) Remove(h uint32, key value.Value) (*Cell, bool) {
	ref := root.locate(h, false)
	if ref == nil {
		return nil, false
	}
	prev, cell := findInList(ref.ptr, h, key)
	if cell == nil {
		return nil, false
	}
	unlinkFrom(prev, ref.ptr, cell)
	root.n--
	root.hs ^= h
	if *ref.ptr == nil && ref.hdr != nil {
		root.pruneFrom(ref.hdr)
	}
	if root.height > 0 && uint64(root.n) < pow(R, root.height) {
		root.contract()
	}
	return cell, true
}

// pruneFrom walks from a now-possibly-empty bottom header up toward the
// root, unlinking and freeing any header whose R children have all gone
// null. It never prunes root.top itself.
func (root *Root) pruneFrom(hdr *header) {
	for {
		allNull := true
		for i := 0; i < R; i++ {
			if !hdr.children[i].isNull() {
				allNull = false
				break
			}
		}
		if !allNull {
			return
		}
		parent := hdr.parent
		if parent == nil {
			return
		}
		parent.children[hdr.childIndex] = node{}
		freeHeader(hdr)
		hdr = parent
	}
}

// Walk visits every cell reachable from root, in trie order.
func (root *Root) Walk(fn func(c *Cell)) {
	if root.height == 0 {
		for c := root.flat; c != nil; c = c.next {
			fn(c)
		}
		return
	}
	var rec func(h *header, remaining int)
	rec = func(h *header, remaining int) {
		if remaining == 1 {
			for i := 0; i < R; i++ {
				for c := h.children[i].leaf; c != nil; c = c.next {
					fn(c)
				}
			}
			return
		}
		for i := 0; i < R; i++ {
			if h.children[i].sub != nil {
				rec(h.children[i].sub, remaining-1)
			}
		}
	}
	rec(root.top, root.height)
}

// Free unmarks every cell's owned Value payloads. The header/cell nodes
// themselves are left for the garbage collector rather than pooled back:
// the pools exist to absorb insert/remove churn, not whole-trie teardown.
func (root *Root) Free() {
	root.Walk(func(c *Cell) {
		value.Unmark(&c.Key)
		if c.HasRange {
			value.Unmark(&c.Range)
		}
	})
}

func copyList(c *Cell) *Cell {
	var head, tail *Cell
	for ; c != nil; c = c.next {
		nc := NewCell()
		*nc = Cell{Hash: c.Hash, Key: c.Key, HasRange: c.HasRange, Range: c.Range, IsMultiVal: c.IsMultiVal}
		value.Mark(&nc.Key)
		if nc.HasRange {
			value.Mark(&nc.Range)
		}
		if head == nil {
			head = nc
		} else {
			tail.next = nc
		}
		tail = nc
	}
	return head
}

func copyHeader(h, parent *header, idx, remaining int) *header {
	nh := newHeader(parent, idx)
	if remaining == 1 {
		for i := 0; i < R; i++ {
			nh.children[i] = node{leaf: copyList(h.children[i].leaf)}
		}
		return nh
	}
	for i := 0; i < R; i++ {
		if h.children[i].sub != nil {
			nh.children[i] = node{sub: copyHeader(h.children[i].sub, nh, i, remaining-1)}
		}
	}
	return nh
}

// Copy produces a deep structural clone: no node is shared with root, but
// every cell's Value payload is mark()ed rather than itself duplicated —
// sharing stops at the top-level heap-object boundary, per spec.md §4.2.
func Copy(root *Root) *Root {
	nr := &Root{opts: root.opts, height: root.height, n: root.n, hs: root.hs}
	if root.height == 0 {
		nr.flat = copyList(root.flat)
		return nr
	}
	nr.top = copyHeader(root.top, nil, 0, root.height)
	return nr
}
