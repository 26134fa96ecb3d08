// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command pdrmq is the CLI dispatcher of spec §6: two subcommands, pd and
// rmq, each reading an instance file, building the corresponding index,
// writing the query results as a single line to the output file, and
// printing a RESULT metrics line to stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/tokenbucket"
	"github.com/fabstu/pd-rmq/internal/instance"
	"github.com/fabstu/pd-rmq/internal/report"
	"github.com/fabstu/pd-rmq/predecessor"
	"github.com/fabstu/pd-rmq/rmq"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	validate    bool
	qps         float64
	metricsAddr string
)

func main() {
	root := &cobra.Command{
		Use:           "pdrmq",
		Short:         "predecessor and range-minimum-query engines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "print a human-readable space/latency breakdown")
	root.PersistentFlags().BoolVar(&validate, "validate", false, "report duplicate input keys before building the index")
	root.PersistentFlags().Float64Var(&qps, "qps", 0, "rate-limit query replay to this many queries/sec (0 = unlimited)")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address")

	root.AddCommand(pdCommand(), rmqCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func pdCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "pd <input-path> <output-path>",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPD(args[0], args[1])
		},
	}
}

func rmqCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "rmq <input-path> <output-path>",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRMQ(args[0], args[1])
		},
	}
}

// newLimiter returns a tokenbucket.TokenBucket configured for qps, or nil
// when unset, matching the teacher's use of tokenbucket for pacing rather
// than a bespoke sleep loop.
func newLimiter() *tokenbucket.TokenBucket {
	if qps <= 0 {
		return nil
	}
	tb := &tokenbucket.TokenBucket{}
	tb.Init(tokenbucket.TokensPerSecond(qps), tokenbucket.Tokens(qps))
	return tb
}

func throttle(ctx context.Context, tb *tokenbucket.TokenBucket) {
	if tb == nil {
		return
	}
	_ = tb.WaitCtx(ctx, tokenbucket.Tokens(1))
}

func runPD(inputPath, outputPath string) error {
	inst, err := instance.ReadPD(inputPath)
	if err != nil {
		return err
	}
	if validate {
		if dups := instance.CountDuplicates(inst.Keys); dups > 0 {
			fmt.Fprintf(os.Stderr, "note: %d duplicate keys in input\n", dups)
		}
	}

	start := time.Now()
	idx := predecessor.Build(inst.Keys)
	constructElapsed := time.Since(start)

	metrics := maybeStartMetrics("pd")
	hist := report.NewLatencyHistogram()
	ctx := context.Background()
	tb := newLimiter()

	results := make([]string, len(inst.Queries))
	for i, q := range inst.Queries {
		throttle(ctx, tb)
		qStart := time.Now()
		res := idx.Pred(q)
		hist.Record(time.Since(qStart))
		results[i] = strconv.FormatUint(res, 10)
	}
	elapsed := time.Since(start)
	if metrics != nil {
		metrics.IncQueries(len(inst.Queries))
	}

	if err := instance.WriteResultLine(outputPath, results); err != nil {
		return err
	}

	if metrics != nil {
		metrics.SetConstructMillis(constructElapsed.Milliseconds())
	}
	res := report.Result{
		Algo:       "pd",
		Name:       report.Author,
		TimeMillis: elapsed.Milliseconds(),
		SpaceBytes: int64(idx.SpaceBytes()),
	}
	fmt.Println(res.Line())
	if verbose {
		writeVerbosePD(idx, inputPath, hist)
	}
	return nil
}

func runRMQ(inputPath, outputPath string) error {
	inst, err := instance.ReadRMQ(inputPath)
	if err != nil {
		return err
	}

	start := time.Now()
	idx := rmq.NewBlock(inst.Array)
	constructElapsed := time.Since(start)

	metrics := maybeStartMetrics("rmq")
	hist := report.NewLatencyHistogram()
	ctx := context.Background()
	tb := newLimiter()

	results := make([]string, len(inst.Queries))
	for n, q := range inst.Queries {
		throttle(ctx, tb)
		qStart := time.Now()
		k, err := idx.Query(q[0], q[1])
		hist.Record(time.Since(qStart))
		if err != nil {
			return err
		}
		results[n] = strconv.Itoa(k)
	}
	elapsed := time.Since(start)
	if metrics != nil {
		metrics.IncQueries(len(inst.Queries))
	}

	if err := instance.WriteResultLine(outputPath, results); err != nil {
		return err
	}

	if metrics != nil {
		metrics.SetConstructMillis(constructElapsed.Milliseconds())
	}
	res := report.Result{
		Algo:       "rmq",
		Name:       report.Author,
		TimeMillis: elapsed.Milliseconds(),
		SpaceBytes: int64(idx.SpaceBytes()),
	}
	fmt.Println(res.Line())
	if verbose {
		writeVerboseRMQ(idx, inputPath, hist)
	}
	return nil
}

func maybeStartMetrics(algo string) *report.Metrics {
	if metricsAddr == "" {
		return nil
	}
	m := report.NewMetrics(algo)
	go func() {
		if err := m.Serve(metricsAddr); err != nil {
			fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
		}
	}()
	return m
}

func writeVerbosePD(idx *predecessor.Index, inputPath string, hist *report.LatencyHistogram) {
	tags := report.Tags("pd", inputPath)
	breakdown := []report.SpaceBreakdown{
		{Name: "total", Bytes: idx.SpaceBytes()},
	}
	report.WriteVerbose(os.Stderr, tags, breakdown, hist)
}

func writeVerboseRMQ(idx *rmq.Block, inputPath string, hist *report.LatencyHistogram) {
	tags := report.Tags("rmq", inputPath)
	shapes := idx.Shapes()
	breakdown := []report.SpaceBreakdown{
		{Name: "total", Bytes: idx.SpaceBytes()},
		{Name: fmt.Sprintf("distinct block shapes (%d)", len(shapes)), Bytes: 0},
	}
	report.WriteVerbose(os.Stderr, tags, breakdown, hist)
}
