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
	"github.com/setlvm/engine/bignum"
	"github.com/setlvm/engine/value"
)

// charValue wraps a single byte as a one-character Str, matching the
// source material's convention that string indexing produces a (length-1)
// String rather than a bare integer code point.
func charValue(b byte) value.Value {
	return bignum.StrValue(bignum.NewStr(string([]byte{b})))
}

// stringCursor walks s's chunk list once, yielding one-character Strings.
type stringCursor struct{ c bignum.Cursor }

func (sc *stringCursor) next() (value.Value, value.Value, bool, error) {
	b, _, ok := sc.c.Next()
	if !ok {
		return doneResult()
	}
	return pairResult(charValue(b), value.OmegaValue)
}

// StartString begins character iteration over s.
func StartString(s *bignum.Str) *Iterator {
	return newIterator(KindString, bignum.StrValue(s), &stringCursor{c: s.Cursor()})
}

// stringPairCursor walks s's chunk list once, yielding (index, character).
// spec.md §4.6: "pair iteration additionally yields the 1-based index" —
// bignum.Cursor itself counts 0-based, so the +1 happens here rather than
// in the shared cursor (plain String iteration never sees an index at all).
type stringPairCursor struct{ c bignum.Cursor }

func (sc *stringPairCursor) next() (value.Value, value.Value, bool, error) {
	b, idx, ok := sc.c.Next()
	if !ok {
		return doneResult()
	}
	return pairResult(indexValue(idx+1), charValue(b))
}

// StartStringPair begins (index, character) iteration over s.
func StartStringPair(s *bignum.Str) *Iterator {
	return newIterator(KindStringPair, bignum.StrValue(s), &stringPairCursor{c: s.Cursor()})
}
