// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build invariants

package invariants

// Enabled is true if the invariants build tag is set (for example
// go test -tags invariants). It only affects internal/errors.Assert.
const Enabled = true
