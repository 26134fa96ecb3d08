// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bitvector

import "math/bits"

// RankIndex answers rank1/rank0 queries over a *Bits in O(1) after a
// linear-time, three-level (superblock/block/lookup) preprocessing pass.
//
// The block size B is chosen as floor(log2(N)/2) bits, NOT 2^that — an
// exponential block size was a known bug in an earlier source of this
// structure (see spec §9); the lookup table LUT has 2^B rows, i.e. O(sqrt(N))
// rows, each of B+1 entries, which is the intended "large but sub-linear"
// constant the design accepts.
type RankIndex struct {
	bits *Bits

	blockBits int // B
	superBits int // S = B*B
	blocksPer int // number of B-bit blocks per superblock, ceil(S/B) == B

	// rsuper[k] = popcount of bits[0, k*S).
	rsuper []uint64
	// rblock[k*blocksPer+b] = popcount of bits[k*S, k*S+b*B), i.e. the
	// prefix count of 1-bits from the start of superblock k, reset at each
	// superblock boundary.
	rblock []uint32
	// lut[pattern*(blockBits+1)+p] = popcount of the low p bits of pattern,
	// for pattern in [0, 2^B) and p in [0, B].
	lut []uint16
}

// NewRankIndex builds a RankIndex over b. b must not be mutated afterwards.
func NewRankIndex(b *Bits) *RankIndex {
	n := b.Len()
	blockBits := max(1, log2Floor(n)/2)
	superBits := blockBits * blockBits
	blocksPer := (superBits + blockBits - 1) / blockBits // == blockBits

	numSuper := n/superBits + 1
	rsuper := make([]uint64, numSuper+1)
	rblock := make([]uint32, (numSuper+1)*blocksPer)

	var total uint64
	for k := 0; k <= numSuper; k++ {
		rsuper[k] = total
		superStart := k * superBits
		if superStart >= n {
			continue
		}
		var inSuper uint32
		for blk := 0; blk < blocksPer; blk++ {
			rblock[k*blocksPer+blk] = inSuper
			blockStart := superStart + blk*blockBits
			if blockStart >= n {
				continue
			}
			blockEnd := min(blockStart+blockBits, n)
			inSuper += uint32(b.popcountRange(blockStart, blockEnd))
		}
		total += uint64(inSuper)
	}

	lutRowLen := blockBits + 1
	lut := make([]uint16, (1<<uint(blockBits))*lutRowLen)
	for pattern := 0; pattern < (1 << uint(blockBits)); pattern++ {
		row := lut[pattern*lutRowLen : pattern*lutRowLen+lutRowLen]
		for p := 0; p <= blockBits; p++ {
			mask := uint64(0)
			if p > 0 {
				mask = (uint64(1) << uint(p)) - 1
			}
			row[p] = uint16(bits.OnesCount64(uint64(pattern) & mask))
		}
	}

	return &RankIndex{
		bits:      b,
		blockBits: blockBits,
		superBits: superBits,
		blocksPer: blocksPer,
		rsuper:    rsuper,
		rblock:    rblock,
		lut:       lut,
	}
}

// log2Floor returns floor(log2(n)) for n >= 1, and 0 for n <= 1.
func log2Floor(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}

// Rank1 returns the number of 1-bits in [0, i), for 0 <= i <= N.
func (r *RankIndex) Rank1(i int) int {
	n := r.bits.Len()
	if i < 0 || i > n {
		panic("bitvector: rank: index out of range")
	}
	if i == 0 {
		return 0
	}
	k := i / r.superBits
	rem := i % r.superBits
	blk := rem / r.blockBits
	p := rem % r.blockBits

	pattern := r.bits.segment(k*r.superBits+blk*r.blockBits, r.blockBits)
	lutRowLen := r.blockBits + 1
	popInBlockPrefix := int(r.lut[int(pattern)*lutRowLen+p])

	return int(r.rsuper[k]) + int(r.rblock[k*r.blocksPer+blk]) + popInBlockPrefix
}

// Rank0 returns the number of 0-bits in [0, i).
func (r *RankIndex) Rank0(i int) int {
	return i - r.Rank1(i)
}

// Len returns the length of the underlying bit sequence.
func (r *RankIndex) Len() int { return r.bits.Len() }

// SpaceBytes returns the heap memory retained by the superblock, block, and
// lookup tables (not including the underlying Bits, which is shared).
func (r *RankIndex) SpaceBytes() int {
	return len(r.rsuper)*8 + len(r.rblock)*4 + len(r.lut)*2
}
