// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rmq

import "math/bits"

// Sparse is the classic O(n log n)-space sparse-table RMQ (spec §4.5, C5):
// M[i][j] holds the argmin of A[i, i+2^j) for every valid (i, j), letting a
// query be answered by combining two overlapping power-of-two windows.
type Sparse struct {
	n     int
	a     []uint64
	log   []int32   // log[l] = floor(log2(l)), for l in [1, n]
	table [][]int32 // table[j][i] = argmin A[i, i+2^j)
}

// NewSparse builds a Sparse RMQ over a. a is retained (queries read values
// directly to resolve ties toward the smaller index).
func NewSparse(a []uint64) *Sparse {
	n := len(a)
	s := &Sparse{n: n, a: a}
	if n == 0 {
		s.table = [][]int32{{}}
		return s
	}

	s.log = make([]int32, n+1)
	for l := 2; l <= n; l++ {
		s.log[l] = s.log[l/2] + 1
	}

	maxLevel := bits.Len(uint(n)) // enough levels to cover 2^L <= n
	s.table = make([][]int32, maxLevel+1)
	row0 := make([]int32, n)
	for i := range row0 {
		row0[i] = int32(i)
	}
	s.table[0] = row0

	for lvl := 1; lvl <= maxLevel; lvl++ {
		half := 1 << uint(lvl-1)
		width := 1 << uint(lvl)
		if width > n {
			s.table[lvl] = []int32{}
			continue
		}
		prev := s.table[lvl-1]
		row := make([]int32, n-width+1)
		for i := 0; i+width <= n; i++ {
			left := prev[i]
			right := prev[i+half]
			if a[left] <= a[right] {
				row[i] = left
			} else {
				row[i] = right
			}
		}
		s.table[lvl] = row
	}
	return s
}

// Query returns argmin A[i..=j], 0 <= i <= j < n.
func (rmq *Sparse) Query(i, j int) (int, error) {
	if i < 0 || i > j || j >= rmq.n {
		return 0, ErrOutOfRange
	}
	return rmq.queryUnchecked(i, j), nil
}

// queryUnchecked assumes 0 <= i <= j < n; Query calls it after checking
// those bounds.
func (rmq *Sparse) queryUnchecked(i, j int) int {
	length := j - i + 1
	l := int(rmq.log[length])
	left := rmq.table[l][i]
	right := rmq.table[l][j-(1<<uint(l))+1]
	if rmq.a[left] <= rmq.a[right] {
		return int(left)
	}
	return int(right)
}

// Len returns n.
func (rmq *Sparse) Len() int { return rmq.n }

// SpaceBytes estimates the heap memory retained by the sparse table.
func (rmq *Sparse) SpaceBytes() int {
	total := 0
	for _, row := range rmq.table {
		total += len(row) * 4
	}
	return total
}
