// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package predecessor

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// TestDataDriven runs spec §8 scenarios B and C, plus the empty-index edge
// case, through a build/pred command vocabulary.
func TestDataDriven(t *testing.T) {
	var idx *Index

	datadriven.RunTest(t, "testdata/predecessor", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "build":
			var keys []uint64
			for _, f := range strings.Fields(d.Input) {
				v, err := strconv.ParseUint(f, 10, 64)
				require.NoError(t, err)
				keys = append(keys, v)
			}
			idx = Build(keys)
			return fmt.Sprintf("ok: n=%d", idx.Len())

		case "pred":
			out := make([]string, 0)
			for _, f := range strings.Fields(d.Input) {
				q, err := strconv.ParseUint(f, 10, 64)
				require.NoError(t, err)
				out = append(out, formatResult(idx.Pred(q)))
			}
			return strings.Join(out, " ")

		default:
			t.Fatalf("unknown command %q", d.Cmd)
			return ""
		}
	})
}

func formatResult(v uint64) string {
	if v == MAX {
		return "MAX"
	}
	return strconv.FormatUint(v, 10)
}

// TestAccessSorted checks that Access(i) reproduces the sorted key sequence.
// On mismatch it reports a unified diff of expected vs. actual, the way a
// text-oriented comparison tool renders a readable failure instead of a
// single "slices not equal" line.
func TestAccessSorted(t *testing.T) {
	keys := []uint64{9, 1, 1, 4, 4, 4, 20, 0}
	idx := Build(keys)

	want := slices.Clone(keys)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	got := make([]uint64, idx.Len())
	for i := range got {
		got[i] = idx.Access(i)
	}

	if !slices.Equal(want, got) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(fmt.Sprintf("%v\n", want)),
			B:        difflib.SplitLines(fmt.Sprintf("%v\n", got)),
			FromFile: "want",
			ToFile:   "got",
			Context:  1,
		})
		t.Fatalf("access() sequence mismatch:\n%s", diff)
	}
}

// TestPredStress is a property-style stress test (spec §8's PD invariants):
// a random multiset of keys (duplicates included) built once, then checked
// against a naive linear-scan predecessor over a wide range of queries,
// fixed seed.
func TestPredStress(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	const n = 2000
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = uint64(rng.Int64N(1 << 20))
	}
	idx := Build(keys)

	sorted := slices.Clone(keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	naivePred := func(q uint64) uint64 {
		best := MAX
		for _, k := range sorted {
			if k <= q && (best == MAX || k > best) {
				best = k
			}
		}
		return best
	}

	for i := 0; i < 10000; i++ {
		q := uint64(rng.Int64N(1 << 21))
		want := naivePred(q)
		got := idx.Pred(q)
		require.Equalf(t, want, got, "pred(%d)", q)
	}

	for i, k := range sorted {
		require.Equal(t, k, idx.Pred(k), "pred(key[%d]=%d) must return the key itself", i, k)
	}

	var prevResult uint64 = 0
	prevDefined := false
	for q := uint64(0); q < 2000; q++ {
		got := idx.Pred(q)
		if got == MAX {
			continue
		}
		if prevDefined {
			require.GreaterOrEqualf(t, got, prevResult, "pred must be non-decreasing at q=%d", q)
		}
		prevResult = got
		prevDefined = true
	}
}

// TestPredEmpty checks the degenerate n=0 case directly (no stored keys).
func TestPredEmpty(t *testing.T) {
	idx := Build(nil)
	require.Equal(t, 0, idx.Len())
	require.Equal(t, MAX, idx.Pred(0))
	require.Equal(t, MAX, idx.Pred(1<<40))
}
