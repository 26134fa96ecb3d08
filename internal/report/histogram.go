// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package report

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// LatencyHistogram records per-query latencies (nanoseconds) for the
// verbose report, bounded to a 1-hour max with 3 significant figures —
// ample headroom for O(1) queries that in practice run in nanoseconds to
// low microseconds.
type LatencyHistogram struct {
	h *hdrhistogram.Histogram
}

// NewLatencyHistogram constructs an empty LatencyHistogram.
func NewLatencyHistogram() *LatencyHistogram {
	return &LatencyHistogram{h: hdrhistogram.New(1, time.Hour.Nanoseconds(), 3)}
}

// Record adds one query's latency.
func (l *LatencyHistogram) Record(d time.Duration) {
	_ = l.h.RecordValue(d.Nanoseconds())
}

// Percentiles returns the p50/p99/p999 latencies in nanoseconds. The verbose
// report does not print them.
func (l *LatencyHistogram) Percentiles() (p50, p99, p999 int64) {
	return l.h.ValueAtPercentile(50), l.h.ValueAtPercentile(99), l.h.ValueAtPercentile(99.9)
}

// Samples returns every recorded value (decompressed from the histogram's
// buckets), for the optional ASCII latency plot in verbose mode.
func (l *LatencyHistogram) Samples() []float64 {
	var out []float64
	for _, b := range l.h.Distribution() {
		for i := int64(0); i < b.Count; i++ {
			out = append(out, float64(b.To))
		}
	}
	return out
}
