// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package instance

import "github.com/cockroachdb/swiss"

// CountDuplicates reports how many of keys are repeats of an earlier key in
// the slice, using a swiss.Map for O(1) amortized membership checks instead
// of a second sort. This backs the CLI's optional -validate flag; duplicate
// keys are permitted by the predecessor index itself (spec §1) and this is
// purely informational.
func CountDuplicates(keys []uint64) int {
	seen := swiss.New[uint64, struct{}](len(keys))
	dups := 0
	for _, k := range keys {
		if _, ok := seen.Get(k); ok {
			dups++
			continue
		}
		seen.Put(k, struct{}{})
	}
	return dups
}
