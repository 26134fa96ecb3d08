// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bitvector

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

// TestDataDriven runs spec §8 scenario A (and the select0/select1 zero
// conventions) through a small build/rank1/rank0/select1/select0 command
// vocabulary, the way the teacher's data_test.go drives pebble's DB/Iterator
// surface from testdata files.
func TestDataDriven(t *testing.T) {
	var bits *Bits
	var rank *RankIndex
	var sel1, sel0 *SelectIndex

	datadriven.RunTest(t, "testdata/rank_select", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "build":
			fields := strings.Fields(d.Input)
			vals := make([]bool, len(fields))
			for i, f := range fields {
				vals[i] = f == "1"
			}
			bits = NewBitsFromBools(vals)
			rank = NewRankIndex(bits)
			sel1 = NewSelectIndex(bits, One)
			sel0 = NewSelectIndex(bits, Zero)
			return fmt.Sprintf("ok: n=%d", bits.Len())

		case "rank1":
			return joinInts(strings.Fields(d.Input), func(v int) (int, error) {
				return rank.Rank1(v), nil
			})

		case "rank0":
			return joinInts(strings.Fields(d.Input), func(v int) (int, error) {
				return rank.Rank0(v), nil
			})

		case "select1":
			return joinInts(strings.Fields(d.Input), func(v int) (int, error) {
				return sel1.Select(v)
			})

		case "select0":
			return joinInts(strings.Fields(d.Input), func(v int) (int, error) {
				return sel0.Select(v)
			})

		default:
			t.Fatalf("unknown command %q", d.Cmd)
			return ""
		}
	})
}

// joinInts applies fn to each decimal field and joins the results with a
// space, or returns a single "error: ..." line the first time fn fails —
// matching the single-line, space-separated output the scenario file
// expects per command.
func joinInts(fields []string, fn func(int) (int, error)) string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return "error: " + err.Error()
		}
		r, err := fn(v)
		if err != nil {
			return "error: " + err.Error()
		}
		out = append(out, strconv.Itoa(r))
	}
	return strings.Join(out, " ")
}

// TestRankSelectStress is spec §8 scenario F: 5000 random bits, fixed seed,
// rank1 checked against a naive prefix sum at every index and select1
// checked against a naive scan for every valid rank.
func TestRankSelectStress(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const n = 5000
	vals := make([]bool, n)
	var naivePrefix []int
	count := 0
	for i := range vals {
		naivePrefix = append(naivePrefix, count)
		vals[i] = rng.IntN(2) == 1
		if vals[i] {
			count++
		}
	}
	naivePrefix = append(naivePrefix, count) // rank1(n)

	b := NewBitsFromBools(vals)
	rank := NewRankIndex(b)
	sel1 := NewSelectIndex(b, One)

	for i := 0; i <= n; i++ {
		require.Equalf(t, naivePrefix[i], rank.Rank1(i), "rank1(%d)", i)
		require.Equal(t, i-naivePrefix[i], rank.Rank0(i))
	}

	var onePositions []int
	for i, v := range vals {
		if v {
			onePositions = append(onePositions, i)
		}
	}
	for j := 1; j <= len(onePositions); j++ {
		pos, err := sel1.Select(j)
		require.NoError(t, err)
		require.Equalf(t, onePositions[j-1], pos, "select1(%d)", j)
	}
	_, err := sel1.Select(len(onePositions) + 1)
	require.ErrorIs(t, err, ErrSelectNotEnough)
}

// TestUniversalInvariants checks the spec §8 "universal invariants" that
// must hold for any BitSequence, over several random lengths including
// tiny edge cases.
func TestUniversalInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 9))
	for _, n := range []int{0, 1, 2, 63, 64, 65, 127, 1000, 4097} {
		vals := make([]bool, n)
		for i := range vals {
			vals[i] = rng.IntN(2) == 1
		}
		b := NewBitsFromBools(vals)
		rank := NewRankIndex(b)
		sel1 := NewSelectIndex(b, One)

		require.Equal(t, n, rank.Rank1(n)+rank.Rank0(n))

		for i := 0; i < n; i++ {
			require.Contains(t, []int{0, 1}, rank.Rank1(i+1)-rank.Rank1(i))
			require.Equal(t, b.Get(i), rank.Rank1(i+1)-rank.Rank1(i))
		}

		for j := 1; j <= sel1.Total(); j++ {
			pos, err := sel1.Select(j)
			require.NoError(t, err)
			require.Equal(t, 1, b.Get(pos))
			require.Equal(t, j, rank.Rank1(pos+1))
		}
	}
}
