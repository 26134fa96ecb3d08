// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bitvector

// Indexable is the shape of a fixed-length bit sequence with an O(1) bit
// read. *Bits implements it; RankIndex and SelectIndex do not (neither has
// a Get method).
type Indexable interface {
	Len() int
	Get(i int) int
}

var _ Indexable = (*Bits)(nil)

// Dump renders every bit of x as a '0'/'1' string. Nothing in this module
// calls it.
func Dump(x Indexable) string {
	buf := make([]byte, x.Len())
	for i := 0; i < x.Len(); i++ {
		if x.Get(i) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
