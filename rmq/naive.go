// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rmq

// Naive is the O(n^2)-space, O(1)-query reference RMQ used as ground truth
// in tests (spec §4.7, C7). It is never the production path; SparseRMQ and
// BlockRMQ must agree with it (spec §8, scenario E).
type Naive struct {
	n     int
	table []int32 // table[i*n+j] = argmin A[i..=j], for i <= j
}

// NewNaive builds a Naive RMQ over a. a is not retained.
func NewNaive(a []uint64) *Naive {
	n := len(a)
	table := make([]int32, n*n)
	for i := 0; i < n; i++ {
		best := i
		table[i*n+i] = int32(i)
		for j := i + 1; j < n; j++ {
			if a[j] < a[best] {
				best = j
			}
			table[i*n+j] = int32(best)
		}
	}
	return &Naive{n: n, table: table}
}

// Query returns argmin A[i..=j], 0 <= i <= j < n.
func (rmq *Naive) Query(i, j int) (int, error) {
	if i < 0 || i > j || j >= rmq.n {
		return 0, ErrOutOfRange
	}
	return int(rmq.table[i*rmq.n+j]), nil
}

// Len returns n.
func (rmq *Naive) Len() int { return rmq.n }

// SpaceBytes estimates the heap memory retained by the index, for the
// report line's space= field.
func (rmq *Naive) SpaceBytes() int {
	return len(rmq.table) * 4
}
