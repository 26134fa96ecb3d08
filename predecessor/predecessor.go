// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package predecessor implements the Elias-Fano-style predecessor index
// (C4) of spec §4.4: given a multiset of uint64 keys, answer the largest
// stored key <= a query in O(1) amortized time, built once over a sorted
// key set and queried read-only thereafter.
package predecessor

import (
	"math/bits"
	"slices"

	cockroacherrors "github.com/cockroachdb/errors"
	"github.com/fabstu/pd-rmq/bitvector"
	"golang.org/x/sync/errgroup"
)

// MAX is the sentinel returned by Pred when no stored key is <= the query.
const MAX uint64 = 1<<64 - 1

// Index is an immutable Elias-Fano predecessor structure. Once Build
// returns, Index is safe for concurrent, uncoordinated queries.
type Index struct {
	n int // number of stored keys

	upperBits uint
	lowerBits uint

	// upper is the unary-coded bucket-occupancy bitmap U of length n +
	// 2^upperBits: exactly n ones (one per sorted key) and 2^upperBits zeros
	// (bucket separators).
	upper     *bitvector.Bits
	upperRank *bitvector.RankIndex
	select1   *bitvector.SelectIndex
	select0   *bitvector.SelectIndex

	// lower packs each sorted key's low lowerBits bits, little-endian bit
	// order, n*lowerBits bits total.
	lower *bitvector.Bits
}

// Build constructs an Index over keys. keys is not mutated; a sorted copy is
// made internally. Duplicate keys are permitted (spec §1).
func Build(keys []uint64) *Index {
	n := len(keys)
	sorted := slices.Clone(keys)
	slices.Sort(sorted)

	var u uint64
	if n > 0 {
		u = sorted[n-1]
	}

	// Derive the upper/lower split directly from n and u, per the spec's
	// redesign note (§9): the source's "start equal, enlarge by steps of 10"
	// loop only accidentally preserved upperBits+lowerBits >= ceil(log2 u).
	upperBits := ceilLog2(uint64(n))
	logU := ceilLog2(u + 1)
	lowerBits := uint(0)
	if logU > upperBits {
		lowerBits = logU - upperBits
	}

	upperLen := n + (1 << upperBits)
	upper := bitvector.NewBits(upperLen)
	lower := bitvector.NewBits(n * int(lowerBits))

	for i, x := range sorted {
		upperPart := x >> lowerBits
		lowerPart := x & ((uint64(1) << lowerBits) - 1)
		if lowerBits == 0 {
			lowerPart = 0
		}
		upper.Set(int(upperPart) + i)
		for j := uint(0); j < lowerBits; j++ {
			if (lowerPart>>j)&1 != 0 {
				lower.Set(i*int(lowerBits) + int(j))
			}
		}
	}

	idx := &Index{
		n:         n,
		upperBits: upperBits,
		lowerBits: lowerBits,
		upper:     upper,
		lower:     lower,
	}
	// RankIndex and both SelectIndexes are independent read-only scans over
	// the same immutable upper bitmap, so they build concurrently (spec §5:
	// "implementations may parallelize construction of independent
	// subtables").
	var g errgroup.Group
	g.Go(func() error { idx.upperRank = bitvector.NewRankIndex(upper); return nil })
	g.Go(func() error { idx.select1 = bitvector.NewSelectIndex(upper, bitvector.One); return nil })
	g.Go(func() error { idx.select0 = bitvector.NewSelectIndex(upper, bitvector.Zero); return nil })
	_ = g.Wait() // the three goroutines above never return an error

	return idx
}

// ceilLog2 returns ceil(log2(x)) for x >= 0, with ceilLog2(0) == 0.
func ceilLog2(x uint64) uint {
	if x <= 1 {
		return 0
	}
	return uint(bits.Len64(x - 1))
}

// Len returns n, the number of stored keys.
func (idx *Index) Len() int { return idx.n }

// SpaceBytes estimates the heap memory retained by the index: the upper
// bitmap plus its RankIndex and two SelectIndexes, and the packed lower
// array, rounded to the nearest byte per spec §12's report granularity.
func (idx *Index) SpaceBytes() int {
	return idx.upper.SpaceBytes() + idx.upperRank.SpaceBytes() +
		idx.select1.SpaceBytes() + idx.select0.SpaceBytes() +
		idx.lower.SpaceBytes()
}

// lowerAt decodes the lowerBits-bit lower part of the i-th sorted key.
func (idx *Index) lowerAt(i int) uint64 {
	if idx.lowerBits == 0 {
		return 0
	}
	var v uint64
	base := i * int(idx.lowerBits)
	for j := uint(0); j < idx.lowerBits; j++ {
		if idx.lower.Get(base+int(j)) != 0 {
			v |= uint64(1) << j
		}
	}
	return v
}

// Access returns the i-th smallest stored key, 0 <= i < n.
func (idx *Index) Access(i int) uint64 {
	if i < 0 || i >= idx.n {
		panic(cockroacherrors.AssertionFailedf("predecessor: access: index %d out of range [0, %d)", i, idx.n))
	}
	pos, err := idx.select1.Select(i + 1)
	if err != nil {
		// select1(i+1) can only fail if i+1 exceeds the total 1-count, but
		// Build sets exactly n ones and i < n, so this is unreachable.
		panic(cockroacherrors.Wrapf(err, "predecessor: access: select1(%d)", i+1))
	}
	upperPart := uint64(pos - i)
	return (upperPart << idx.lowerBits) | idx.lowerAt(i)
}

// Pred returns the largest stored key <= q, or MAX if every stored key is
// greater than q (spec §4.4).
func (idx *Index) Pred(q uint64) uint64 {
	if idx.n == 0 {
		return MAX
	}

	upperQ := q >> idx.lowerBits
	lowerQ := q & ((uint64(1) << idx.lowerBits) - 1)
	if idx.lowerBits == 0 {
		lowerQ = 0
	}

	p, err := idx.select0.Select(int(upperQ))
	if err != nil {
		// upperQ can exceed the number of buckets observed when q's upper
		// part is beyond every stored key's upper part; every such key is
		// necessarily <= q, so the predecessor is simply the largest key.
		return idx.Access(idx.n - 1)
	}

	// bucketStart is the absolute position in U where bucket upperQ's ones
	// begin. When upperQ == 0, select0's j==0 convention returns p == 0
	// without consuming a real zero, so the bucket's ones start at p itself
	// (c == 1); for every other bucket, p is the position of a genuine
	// separator zero and the bucket's ones start right after it (c == 2).
	// A literal "c = 1 if p == 0 else 2" (as a shallower reading of the
	// construction algorithm might suggest) is wrong: p can independently
	// equal 0 for upperQ > 0 when U happens to start with a real zero
	// (bucket 0 empty), so the branch must key off upperQ, not p.
	c := 2
	if upperQ == 0 {
		c = 1
	}
	bucketStart := p + c - 1
	firstI := idx.upperRank.Rank1(bucketStart+1) - 1

	previousKeyIndex := func() uint64 {
		r := idx.upperRank.Rank1(bucketStart)
		if r == 0 {
			return MAX
		}
		return idx.Access(r - 1)
	}

	// Empty bucket: no 1-bit at the position where this bucket's ones would
	// start.
	if bucketStart >= idx.upper.Len() || idx.upper.Get(bucketStart) == 0 {
		return previousKeyIndex()
	}

	// Last-in-universe: this bucket holds the globally largest key, so
	// there is no subsequent bucket boundary to look up; lastI is simply
	// n-1. This only shortcuts the lastI computation (avoiding a select0
	// call past the final boundary) — the query's lower part must still be
	// checked below, since q may fall strictly before this bucket's
	// largest (and only reachable) key.
	var lastI int
	if firstI == idx.n-1 {
		lastI = idx.n - 1
	} else {
		nextBoundary, err := idx.select0.Select(int(upperQ) + 1)
		if err != nil {
			// No further bucket boundary: this bucket runs to the end of U.
			lastI = idx.n - 1
		} else {
			lastI = idx.upperRank.Rank1(nextBoundary) - 1
		}
	}

	if firstI == 0 && idx.lowerAt(0) > lowerQ {
		return MAX
	}

	// Binary search indices [firstI, lastI] against lowerQ.
	lo, hi := firstI, lastI
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.lowerAt(mid) <= lowerQ {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if idx.lowerAt(lo) <= lowerQ {
		return idx.Access(lo)
	}
	if lo == firstI {
		// No key in the bucket has a lower part <= lowerQ; fall back to the
		// last key of a smaller bucket.
		return previousKeyIndex()
	}
	return idx.Access(lo - 1)
}
