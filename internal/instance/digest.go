// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package instance

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Digest returns an xxhash-64 checksum of values, each encoded as 8
// little-endian bytes. The CLI does not call it, and no cache of parsed or
// built indexes exists.
func Digest(values []uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
