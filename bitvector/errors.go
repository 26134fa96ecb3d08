// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bitvector

import "github.com/cockroachdb/errors"

// ErrSelectNotEnough is returned by SelectIndex.Select when j exceeds the
// total number of target bits (spec §7, SelectNotEnough).
var ErrSelectNotEnough = errors.New("bitvector: select: not enough target bits")

// ErrSelectOutOfBounds names the spec §7 SelectOutOfBounds kind (j >= N). No
// function in this package returns it: SelectIndex.Select reports every j
// above the target count as ErrSelectNotEnough.
var ErrSelectOutOfBounds = errors.New("bitvector: select: j out of bounds")
