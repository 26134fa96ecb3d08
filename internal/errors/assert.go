// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package errors centralizes this module's error handling conventions: it
// wraps github.com/cockroachdb/errors the way the teacher package wraps it
// in sstable/table.go and value_separation.go, and adds Assert, a
// debug-assert helper. No package calls Assert: the predecessor and
// bitvector packages panic directly on invariant violations (a failed
// select1 in Access, rank's i > N).
package errors

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/fabstu/pd-rmq/internal/invariants"
)

// Assert panics with an AssertionFailedf error if cond is false, but only
// when built with the invariants tag. Call sites that would otherwise need
// a production-time branch for a condition that can never legitimately be
// false in correctly constructed code should use this instead of returning
// an error.
func Assert(cond bool, format string, args ...interface{}) {
	if invariants.Enabled && !cond {
		panic(errors.AssertionFailedf(format, args...))
	}
}

// Wrap re-exports errors.Wrap for callers that only import this package.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }

// Wrapf re-exports errors.Wrapf.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Newf re-exports errors.Newf.
func Newf(format string, args ...interface{}) error { return errors.Newf(format, args...) }

// Safe re-exports errors.Safe, used to mark diagnostic values (offsets,
// counts) as safe for redacted error reporting.
func Safe(v interface{}) errors.SafeMessager { return errors.Safe(v) }

// Redactable marks a value derived from instance-file input (a raw line, a
// parsed key or query) as subject to redaction when an error message is
// rendered through a redaction-aware sink, as opposed to Safe's "known safe
// to log" marking for internal diagnostic fields.
func Redactable(v interface{}) redact.RedactableString { return redact.Sprint(v) }
