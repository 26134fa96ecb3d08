// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package instance reads the PD and RMQ instance file formats (spec §6).
// It is harness-level, not algorithmic: the formats are line-oriented text,
// optionally transparently decompressed, and parsing errors are reported to
// the caller rather than debug-asserted.
package instance

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	ierrors "github.com/fabstu/pd-rmq/internal/errors"
)

// ErrInvalidValue is returned when an instance file line cannot be parsed as
// the expected integer or "i,j" pair (spec §7, InputValueInvalid).
var ErrInvalidValue = errors.New("instance: invalid value")

// PD is a parsed predecessor-instance file: Keys to build the index over,
// and Queries to run against it, in file order.
type PD struct {
	Keys    []uint64
	Queries []uint64
}

// RMQ is a parsed range-minimum-query instance file: Array to build the
// index over, and Queries (i, j pairs) to run against it, in file order.
type RMQ struct {
	Array   []uint64
	Queries [][2]int
}

// openLines opens path and returns a line scanner, transparently
// decompressing .zst or .snappy suffixes the way the teacher's sstable
// package transparently decodes compressed blocks by codec tag.
func openLines(path string) (*bufio.Scanner, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "instance: open %q", path)
	}

	var r io.Reader = f
	closers := []func() error{f.Close}

	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, errors.Wrapf(err, "instance: zstd reader for %q", path)
		}
		r = dec
		closers = append(closers, func() error { dec.Close(); return nil })
	case strings.HasSuffix(path, ".snappy"):
		r = snappy.NewReader(f)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	closeAll := func() error {
		var firstErr error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
	return sc, closeAll, nil
}

// nextNonBlank advances sc past blank lines and returns the next non-blank
// line, or ok == false at EOF.
func nextNonBlank(sc *bufio.Scanner) (line string, ok bool) {
	for sc.Scan() {
		line = strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		return line, true
	}
	return "", false
}

// ReadPD parses a PD instance file (spec §6): a count line, n key lines,
// then query lines until EOF.
func ReadPD(path string) (*PD, error) {
	sc, closeAll, err := openLines(path)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	countLine, ok := nextNonBlank(sc)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: missing count line", path)
	}
	n, err := strconv.Atoi(countLine)
	if err != nil || n < 0 {
		return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: bad count %s", path, ierrors.Redactable(countLine))
	}

	inst := &PD{Keys: make([]uint64, 0, n)}
	for i := 0; i < n; i++ {
		line, ok := nextNonBlank(sc)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: expected %d keys, found %d", path, n, i)
		}
		key, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: bad key %s", path, ierrors.Redactable(line))
		}
		inst.Keys = append(inst.Keys, key)
	}

	for {
		line, ok := nextNonBlank(sc)
		if !ok {
			break
		}
		q, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: bad query %s", path, ierrors.Redactable(line))
		}
		inst.Queries = append(inst.Queries, q)
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "instance: %q: scan", path)
	}
	return inst, nil
}

// ReadRMQ parses an RMQ instance file (spec §6): a count line, n array
// lines, then "i,j" query lines until EOF.
func ReadRMQ(path string) (*RMQ, error) {
	sc, closeAll, err := openLines(path)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	countLine, ok := nextNonBlank(sc)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: missing count line", path)
	}
	n, err := strconv.Atoi(countLine)
	if err != nil || n < 0 {
		return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: bad count %s", path, ierrors.Redactable(countLine))
	}

	inst := &RMQ{Array: make([]uint64, 0, n)}
	for i := 0; i < n; i++ {
		line, ok := nextNonBlank(sc)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: expected %d array values, found %d", path, n, i)
		}
		v, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: bad array value %s", path, ierrors.Redactable(line))
		}
		inst.Array = append(inst.Array, v)
	}

	for {
		line, ok := nextNonBlank(sc)
		if !ok {
			break
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: bad query %s", path, ierrors.Redactable(line))
		}
		i, errI := strconv.Atoi(strings.TrimSpace(parts[0]))
		j, errJ := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errI != nil || errJ != nil {
			return nil, errors.Wrapf(ErrInvalidValue, "instance: %q: bad query %s", path, ierrors.Redactable(line))
		}
		inst.Queries = append(inst.Queries, [2]int{i, j})
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "instance: %q: scan", path)
	}
	return inst, nil
}

// WriteResultLine writes results joined by ", " as the single output line
// (spec §6).
func WriteResultLine(path string, results []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "instance: create %q", path)
	}
	defer f.Close()
	if _, err := io.WriteString(f, strings.Join(results, ", ")); err != nil {
		return errors.Wrapf(err, "instance: write %q", path)
	}
	return nil
}
