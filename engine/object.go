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
	"github.com/setlvm/engine/iterator"
	"github.com/setlvm/engine/value"
)

// resolvePair resolves class's start and next methods through ct. The class
// name is supplied by the caller rather than read from self: Object's own
// storage layout is out of this engine's scope (spec.md only fixes the
// slot-table dispatch contract, not the object representation).
func resolvePair(ct *ClassTable, class string, startID, nextID MethodID) (start, next value.Value, err error) {
	start, err = ct.Resolve(class, startID)
	if err != nil {
		return value.OmegaValue, value.OmegaValue, err
	}
	next, err = ct.Resolve(class, nextID)
	if err != nil {
		return value.OmegaValue, value.OmegaValue, err
	}
	return start, next, nil
}

// StartObjectIterator begins single-valued iteration over self (of the
// given class), resolving Iterator_Start/Iterator_Next via ct.
func StartObjectIterator(ct *ClassTable, class string, self value.Value) (*iterator.Iterator, error) {
	start, next, err := resolvePair(ct, class, IteratorStart, IteratorNext)
	if err != nil {
		return nil, err
	}
	return iterator.StartObject(Dispatcher{}, self, start, next)
}

// StartObjectPairIterator begins (d, r) iteration over self, resolving
// Set_Iterator_Start/Set_Iterator_Next via ct (spec.md §4.6: "pair and
// multi variants use Set_Iterator_Start/Set_Iterator_Next").
func StartObjectPairIterator(ct *ClassTable, class string, self value.Value) (*iterator.Iterator, error) {
	start, next, err := resolvePair(ct, class, SetIteratorStart, SetIteratorNext)
	if err != nil {
		return nil, err
	}
	return iterator.StartObjectPair(Dispatcher{}, self, start, next)
}

// StartObjectMultiIterator begins multi-valued-pair iteration over self,
// resolving Set_Iterator_Start/Set_Iterator_Next via ct.
func StartObjectMultiIterator(ct *ClassTable, class string, self value.Value) (*iterator.Iterator, error) {
	start, next, err := resolvePair(ct, class, SetIteratorStart, SetIteratorNext)
	if err != nil {
		return nil, err
	}
	return iterator.StartObjectMulti(Dispatcher{}, self, start, next)
}
