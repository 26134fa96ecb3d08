// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rmq

import "golang.org/x/exp/maps"

// blockTableKey identifies a shared in-block lookup table by block length and
// Cartesian-tree signature. A signature holds exactly one 1 bit per element,
// so equal signatures already imply equal lengths; the length field makes
// the table's dimensions explicit in the key.
type blockTableKey struct {
	length int
	sig    uint64
}

// Block is the linear-space RMQ of spec §4.6, C6: the array is partitioned
// into blocks of size s = max(1, ceil(log2(n)/4)); a SparseRMQ answers
// queries over block minima, and each block's Cartesian-tree signature
// selects a shared, precomputed s x s in-block lookup table, so the total
// table space is bounded by the number of distinct block shapes rather than
// the number of blocks.
type Block struct {
	n int
	s int
	a []uint64

	minVal    []uint64 // per block, the minimum value in that block
	minAbsPos []int    // per block, the absolute index of that minimum
	sparse    *Sparse  // built over minVal, returns an index into minVal

	sig    []uint64                // per block, its Cartesian-tree signature
	tables map[blockTableKey][]int32 // shared s_actual x s_actual argmin tables
}

// NewBlock builds a Block RMQ over a.
func NewBlock(a []uint64) *Block {
	n := len(a)
	s := blockSize(n)
	numBlocks := 0
	if n > 0 {
		numBlocks = (n + s - 1) / s
	}

	blk := &Block{
		n:      n,
		s:      s,
		a:      a,
		tables: make(map[blockTableKey][]int32),
	}
	if n == 0 {
		blk.sparse = NewSparse(nil)
		return blk
	}

	blk.minVal = make([]uint64, numBlocks)
	blk.minAbsPos = make([]int, numBlocks)
	blk.sig = make([]uint64, numBlocks)

	for k := 0; k < numBlocks; k++ {
		start := k * s
		end := min(start+s, n)
		segment := a[start:end]

		bestOff := 0
		for off := 1; off < len(segment); off++ {
			if segment[off] < segment[bestOff] {
				bestOff = off
			}
		}
		blk.minVal[k] = segment[bestOff]
		blk.minAbsPos[k] = start + bestOff

		sig := cartesianSignature(segment)
		blk.sig[k] = sig
		key := blockTableKey{length: len(segment), sig: sig}
		if _, ok := blk.tables[key]; !ok {
			blk.tables[key] = buildBlockTable(segment)
		}
	}

	blk.sparse = NewSparse(blk.minVal)
	return blk
}

// blockSize returns s = max(1, ceil(log2(n)/4)) per spec §4.6 step 1.
func blockSize(n int) int {
	if n <= 1 {
		return 1
	}
	l := log2CeilInt(n)
	s := (l + 3) / 4
	if s < 1 {
		s = 1
	}
	return s
}

// log2CeilInt returns ceil(log2(n)) for n >= 1.
func log2CeilInt(n int) int {
	l := 0
	for (1 << uint(l)) < n {
		l++
	}
	return l
}

// buildBlockTable fills the naive O(len(segment)^2) argmin table for one
// block shape (spec §4.6 step 5): table[from*L+to] holds the offset, within
// segment, of the minimum of segment[from..=to], for from <= to.
func buildBlockTable(segment []uint64) []int32 {
	l := len(segment)
	table := make([]int32, l*l)
	for from := 0; from < l; from++ {
		best := from
		table[from*l+from] = int32(from)
		for to := from + 1; to < l; to++ {
			if segment[to] < segment[best] {
				best = to
			}
			table[from*l+to] = int32(best)
		}
	}
	return table
}

func (b *Block) blockStart(k int) int { return k * b.s }

func (b *Block) blockLen(k int) int {
	start := k * b.s
	return min(b.s, b.n-start)
}

func (b *Block) tableFor(k int) []int32 {
	key := blockTableKey{length: b.blockLen(k), sig: b.sig[k]}
	return b.tables[key]
}

// Query returns argmin A[i..=j], 0 <= i <= j < n (spec §4.6 query).
func (b *Block) Query(i, j int) (int, error) {
	if i < 0 || i > j || j >= b.n {
		return 0, ErrOutOfRange
	}

	bi, oi := i/b.s, i%b.s
	bj, oj := j/b.s, j%b.s

	if bi == bj {
		l := b.blockLen(bi)
		tbl := b.tableFor(bi)
		off := tbl[oi*l+oj]
		return b.blockStart(bi) + int(off), nil
	}

	best := -1
	consider := func(idx int) {
		if best == -1 || b.a[idx] < b.a[best] {
			best = idx
		}
	}

	lastOffBi := b.blockLen(bi) - 1
	midStart := bi
	leftCandidate := -1
	if oi > 0 {
		l := b.blockLen(bi)
		tbl := b.tableFor(bi)
		off := tbl[oi*l+lastOffBi]
		leftCandidate = b.blockStart(bi) + int(off)
		midStart = bi + 1
	}

	lastOffBj := b.blockLen(bj) - 1
	midEnd := bj
	rightCandidate := -1
	if oj < lastOffBj {
		l := b.blockLen(bj)
		tbl := b.tableFor(bj)
		off := tbl[0*l+oj]
		rightCandidate = b.blockStart(bj) + int(off)
		midEnd = bj - 1
	}

	// Consider candidates in ascending absolute-index order — left-partial,
	// then fully-covered middle blocks, then right-partial — so the smaller-
	// index tie-break (spec §4.6) holds regardless of which candidate ties
	// for the minimum value.
	if leftCandidate != -1 {
		consider(leftCandidate)
	}
	if midStart <= midEnd {
		k, err := b.sparse.Query(midStart, midEnd)
		if err != nil {
			return 0, err
		}
		consider(b.minAbsPos[k])
	}
	if rightCandidate != -1 {
		consider(rightCandidate)
	}

	return best, nil
}

// Shapes returns the distinct Cartesian-tree (length, signature) keys
// observed during construction, for the verbose report's space breakdown
// ("distinct block shapes (N)").
func (b *Block) Shapes() []blockTableKey {
	return maps.Keys(b.tables)
}

// Len returns n.
func (b *Block) Len() int { return b.n }

// SpaceBytes estimates the heap memory retained by the block index: the
// block-minima sparse table plus one shared table per distinct observed
// Cartesian-tree shape.
func (b *Block) SpaceBytes() int {
	total := b.sparse.SpaceBytes()
	total += len(b.minVal)*8 + len(b.minAbsPos)*8 + len(b.sig)*8
	for _, t := range b.tables {
		total += len(t) * 4
	}
	return total
}
