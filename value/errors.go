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

package value

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/go-stack/stack"
)

// ErrorClass is the abend taxonomy of §7: everything but Fatal is
// recoverable by the dispatcher, which catches the abend at its one outer
// frame. Fatal terminates the process outright.
type ErrorClass uint8

const (
	TypeError ErrorClass = iota
	DomainError
	MissingMethod
	ContractViolation
	Internal
	Fatal
)

func (c ErrorClass) String() string {
	switch c {
	case TypeError:
		return "TypeError"
	case DomainError:
		return "DomainError"
	case MissingMethod:
		return "MissingMethod"
	case ContractViolation:
		return "ContractViolation"
	case Internal:
		return "Internal"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Abend is the coded, user-visible diagnostic carried by every non-trivial
// operation that fails. It is returned as a plain error, never panicked
// through call frames — the one exception is Fatal, which both logs at
// Crit and terminates the process, matching the teacher's own
// log.Crit-as-exit idiom (p2p/simulations/dht/dht.go).
type Abend struct {
	Class ErrorClass
	Msg   string
	Site  stack.Call
	cause error
}

func (a *Abend) Error() string {
	if a.cause != nil {
		return fmt.Sprintf("%s: %s: %v", a.Class, a.Msg, a.cause)
	}
	return fmt.Sprintf("%s: %s", a.Class, a.Msg)
}

func (a *Abend) Unwrap() error { return a.cause }

func newAbend(class ErrorClass, skip int, format string, args ...interface{}) *Abend {
	return &Abend{
		Class: class,
		Msg:   fmt.Sprintf(format, args...),
		Site:  stack.Caller(skip + 1),
	}
}

// NewAbend builds a coded abend at the given class with the caller's site
// captured for diagnostics.
func NewAbend(class ErrorClass, format string, args ...interface{}) *Abend {
	a := newAbend(class, 2, format, args...)
	log.Warn("abend", "class", a.Class, "msg", a.Msg, "site", a.Site)
	return a
}

// WrapAbend chains cause into a freshly-raised abend, matching the
// teacher's own fmt.Errorf("...: %w", err) chaining idiom.
func WrapAbend(class ErrorClass, cause error, format string, args ...interface{}) *Abend {
	a := newAbend(class, 2, format, args...)
	a.cause = cause
	log.Warn("abend", "class", a.Class, "msg", a.Msg, "site", a.Site, "cause", cause)
	return a
}

// Trap reports a broken internal invariant or a caller contract breach that
// the engine does not turn into a returned abend (e.g. tuple.Set with a
// negative index, MustHeap on a scalar); production callers should never
// be able to trigger it through normal operation.
func Trap(format string, args ...interface{}) {
	a := newAbend(Internal, 2, format, args...)
	log.Crit("internal invariant violated", "msg", a.Msg, "site", a.Site)
	panic(a)
}

// Giveup reports unrecoverable allocation failure. Per §7 this terminates
// the process; nothing downstream gets a chance to retry.
func Giveup(format string, args ...interface{}) {
	a := newAbend(Fatal, 2, format, args...)
	log.Crit("giveup: allocation failure", "msg", a.Msg, "site", a.Site)
	os.Exit(2)
}
