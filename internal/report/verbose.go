// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package report

import (
	"fmt"
	"io"

	"github.com/cockroachdb/logtags"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// SpaceBreakdown is one row (name, retained bytes) of the verbose report's
// space table. The CLI emits a single "total" row per index, plus, for rmq,
// a zero-byte row carrying the count of distinct block shapes; it does not
// break the total down by substructure.
type SpaceBreakdown struct {
	Name  string
	Bytes int
}

// Tags attaches structured context (algo, instance path) to verbose output,
// the way the teacher's logging call sites carry context tags rather than
// interpolating them into a freeform message string.
func Tags(algo, instancePath string) *logtags.Buffer {
	buf := &logtags.Buffer{}
	buf = buf.Add("algo", algo)
	buf = buf.Add("instance", instancePath)
	return buf
}

// WriteVerbose renders a human-readable breakdown: a space-usage table and,
// if hist is non-nil, an ASCII plot of query latencies. The CLI calls it
// only after every query has run; the query path itself never writes here.
func WriteVerbose(w io.Writer, tags *logtags.Buffer, breakdown []SpaceBreakdown, hist *LatencyHistogram) {
	fmt.Fprintf(w, "[%s] space breakdown:\n", tags)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"substructure", "bytes"})
	total := 0
	for _, b := range breakdown {
		table.Append([]string{b.Name, fmt.Sprintf("%d", b.Bytes)})
		total += b.Bytes
	}
	table.SetFooter([]string{"total", fmt.Sprintf("%d", total)})
	table.Render()

	if hist == nil {
		return
	}
	samples := hist.Samples()
	if len(samples) < 2 {
		return
	}
	plot, err := asciigraph.Plot(samples, asciigraph.Height(10), asciigraph.Caption("query latency (ns)"))
	if err != nil {
		return
	}
	fmt.Fprintln(w, plot)
}
