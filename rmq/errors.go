// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package rmq implements the three range-minimum-query engines of spec §2:
// NaiveRMQ (C7, O(n^2) space, ground truth for tests), SparseRMQ (C5,
// O(n log n) space, O(1) query), and BlockRMQ (C6, O(n) space, O(1) query,
// combining a sparse table over per-block minima with precomputed
// Cartesian-tree-shape lookup tables for in-block queries).
package rmq

import "github.com/cockroachdb/errors"

// ErrOutOfRange is returned when i > j or j >= n (spec §7, RMQOutOfRange).
var ErrOutOfRange = errors.New("rmq: query out of range")
