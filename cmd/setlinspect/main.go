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

// Command setlinspect is a tiny manual-exploration tool: it reads
// whitespace-separated integers from stdin, builds either a Set or a Map
// (paired consecutive integers as domain/range) from them, and prints
// cardinality, hash, and iteration order. It exists to let a developer
// poke at the collection packages from a shell without writing a Go test,
// bootstrapped the same way p2p/simulations/dht/dht.go bootstraps its own
// throwaway simulation server: stdlib flag for its two flags, and
// log.Root().SetHandler(log.LvlFilterHandler(...)) for verbosity.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/log"

	"github.com/setlvm/engine/internal/diag"
	"github.com/setlvm/engine/set"
	"github.com/setlvm/engine/value"
	"github.com/setlvm/engine/vmap"
)

var (
	verbosity = flag.Int("verbosity", 3, "logging verbosity")
	asMap     = flag.Bool("map", false, "pair consecutive integers into a Map instead of building a Set")
)

func main() {
	flag.Parse()

	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(*verbosity), log.StreamHandler(os.Stdout, log.TerminalFormat(false))))

	nums, err := readInts(os.Stdin)
	if err != nil {
		log.Crit("error reading input", "err", err)
	}

	if *asMap {
		inspectMap(nums)
	} else {
		inspectSet(nums)
	}
}

func readInts(f *os.File) ([]int64, error) {
	var nums []int64
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		n, err := strconv.ParseInt(sc.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", sc.Text(), err)
		}
		nums = append(nums, n)
	}
	return nums, sc.Err()
}

func inspectSet(nums []int64) {
	s := set.Empty()
	for _, n := range nums {
		s.Insert(value.NewShort(n))
	}

	if !diag.Report("set", s.UnderlyingRoot()) {
		log.Crit("refusing to report on a corrupted set")
	}

	fmt.Printf("cardinality: %d\n", s.Cardinality())
	fmt.Printf("hash: %#08x\n", s.HashCode())

	fmt.Print("elements:")
	s.Walk(func(elem value.Value) {
		fmt.Printf(" %v", elem)
	})
	fmt.Println()
}

func inspectMap(nums []int64) {
	m := vmap.Empty()
	for i := 0; i+1 < len(nums); i += 2 {
		m.Insert(value.NewShort(nums[i]), value.NewShort(nums[i+1]))
	}
	if len(nums)%2 != 0 {
		log.Warn("odd number of integers on stdin, trailing value dropped", "value", nums[len(nums)-1])
	}

	if !diag.Report("map", m.UnderlyingRoot()) {
		log.Crit("refusing to report on a corrupted map")
	}

	fmt.Printf("cardinality: %d\n", m.Cardinality())
	fmt.Printf("hash: %#08x\n", m.HashCode())

	dom := m.Domain()
	fmt.Print("domain:")
	dom.Walk(func(d value.Value) {
		fmt.Printf(" %v", d)
	})
	fmt.Println()
}
