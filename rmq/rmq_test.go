// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rmq

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

// TestDataDriven runs spec §8 scenario D against the production BlockRMQ
// path.
func TestDataDriven(t *testing.T) {
	var idx *Block

	datadriven.RunTest(t, "testdata/rmq", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "build":
			var a []uint64
			for _, f := range strings.Fields(d.Input) {
				v, err := strconv.ParseUint(f, 10, 64)
				require.NoError(t, err)
				a = append(a, v)
			}
			idx = NewBlock(a)
			return fmt.Sprintf("ok: n=%d", idx.Len())

		case "query":
			out := make([]string, 0)
			for _, f := range strings.Fields(d.Input) {
				parts := strings.SplitN(f, ",", 2)
				i, err := strconv.Atoi(parts[0])
				require.NoError(t, err)
				j, err := strconv.Atoi(parts[1])
				require.NoError(t, err)
				k, err := idx.Query(i, j)
				require.NoError(t, err)
				out = append(out, strconv.Itoa(k))
			}
			return strings.Join(out, " ")

		default:
			t.Fatalf("unknown command %q", d.Cmd)
			return ""
		}
	})
}

// mismatch records one disagreement between implementations for a failed
// cross-implementation query, printed via kr/pretty on failure.
type mismatch struct {
	I, J                          int
	NaiveIdx, SparseIdx, BlockIdx int
	NaiveVal, SparseVal, BlockVal uint64
}

// TestCrossImplementationAgreement is spec §8 scenario E: 10^4 random
// values, fixed seed, 10^4 random queries, asserting Naive, Sparse, and
// Block agree on A[argmin] (ties broken toward the smaller index, so the
// indices themselves must also agree).
func TestCrossImplementationAgreement(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	const n = 10000
	a := make([]uint64, n)
	for i := range a {
		a[i] = uint64(rng.Int64N(1000)) // small range to force frequent ties
	}

	naive := NewNaive(a)
	sparse := NewSparse(a)
	block := NewBlock(a)

	var mismatches []mismatch
	for q := 0; q < 10000; q++ {
		i := rng.IntN(n)
		j := i + rng.IntN(n-i)

		ni, err := naive.Query(i, j)
		require.NoError(t, err)
		si, err := sparse.Query(i, j)
		require.NoError(t, err)
		bi, err := block.Query(i, j)
		require.NoError(t, err)

		if ni != si || ni != bi {
			mismatches = append(mismatches, mismatch{
				I: i, J: j,
				NaiveIdx: ni, SparseIdx: si, BlockIdx: bi,
				NaiveVal: a[ni], SparseVal: a[si], BlockVal: a[bi],
			})
		}
	}

	if len(mismatches) > 0 {
		t.Fatalf("%d mismatches:\n%# v", len(mismatches), pretty.Formatter(mismatches))
	}
}

// TestRMQInvariants checks spec §8's universal RMQ invariants directly
// against BlockRMQ: i <= argmin <= j, A[argmin] is the true minimum, and
// rmq(i, i) == i.
func TestRMQInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	const n = 500
	a := make([]uint64, n)
	for i := range a {
		a[i] = uint64(rng.Int64N(100))
	}
	idx := NewBlock(a)

	for i := 0; i < n; i++ {
		k, err := idx.Query(i, i)
		require.NoError(t, err)
		require.Equal(t, i, k)
	}

	for trial := 0; trial < 5000; trial++ {
		i := rng.IntN(n)
		j := i + rng.IntN(n-i)
		k, err := idx.Query(i, j)
		require.NoError(t, err)
		require.GreaterOrEqual(t, k, i)
		require.LessOrEqual(t, k, j)
		for m := i; m <= j; m++ {
			require.LessOrEqualf(t, a[k], a[m], "argmin %d not minimal over [%d,%d]", k, i, j)
		}
	}
}

// TestOutOfRange checks the RMQOutOfRange error kind (spec §7) on all three
// implementations.
func TestOutOfRange(t *testing.T) {
	a := []uint64{1, 2, 3}
	for _, idx := range []interface {
		Query(i, j int) (int, error)
	}{NewNaive(a), NewSparse(a), NewBlock(a)} {
		_, err := idx.Query(2, 1)
		require.ErrorIs(t, err, ErrOutOfRange)
		_, err = idx.Query(0, 3)
		require.ErrorIs(t, err, ErrOutOfRange)
	}
}
