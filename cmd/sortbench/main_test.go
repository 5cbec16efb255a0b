// Copyright 2025 sortof Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"

	"github.com/aelij/sortof/workerpool"
)

func testConfig() config {
	return config{
		Count:    5000,
		Seed:     7,
		Radix:    8,
		Loops:    2,
		Workers:  4,
		Pool:     "builtin",
		Timeout:  10 * time.Second,
		LogLevel: "error",
	}
}

func TestGenerateRecordsDeterministic(t *testing.T) {
	ctx := context.Background()
	a, err := generateRecords(ctx, 70000, 3)
	require.NoError(t, err)
	b, err := generateRecords(ctx, 70000, 3)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different records:\n%s", diff)
	}

	lo := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2056, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range a {
		require.Equal(t, int32(i), r.ID)
		require.False(t, r.ReleaseDate.Before(lo), "record %s", r)
		require.True(t, r.ReleaseDate.Before(hi), "record %s", r)
		require.GreaterOrEqual(t, r.Price, 0.0)
		require.Less(t, r.Price, 50000.0)
	}
}

func TestGenerateRecordsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := generateRecords(ctx, 200000, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPrepareKeysRejectsOutOfRangeDates(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	records := []Record{
		{ID: 0, ReleaseDate: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), Price: 3},
		{ID: 1, ReleaseDate: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), Price: 4},
		{ID: 2, ReleaseDate: time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC), Price: 5},
	}
	err := prepareKeys(pool, records, make([]uint64, 3), make([]int32, 3))
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
}

func TestVerifyOrder(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC) }
	good := []Record{
		{ID: 0, ReleaseDate: day(3), Price: 1},
		{ID: 1, ReleaseDate: day(2), Price: 1},
		{ID: 2, ReleaseDate: day(2), Price: 2},
	}
	require.NoError(t, verifyOrder(len(good), func(i int) Record { return good[i] }))

	bad := []Record{good[2], good[1], good[0]}
	err := verifyOrder(len(bad), func(i int) Record { return bad[i] })
	require.Len(t, multierr.Errors(err), 2)
}

func TestSelectVariants(t *testing.T) {
	all, err := selectVariants(nil)
	require.NoError(t, err)
	require.Len(t, all, len(variants))

	some, err := selectVariants([]string{"parallel", "radix", "radix"})
	require.NoError(t, err)
	require.Equal(t, []string{"radix", "parallel"}, []string{some[0].name, some[1].name})

	_, err = selectVariants([]string{"bogosort"})
	require.ErrorContains(t, err, "bogosort")
}

func TestAllVariantsSort(t *testing.T) {
	for _, pool := range []string{"builtin", "ants"} {
		cfg := testConfig()
		cfg.Pool = pool
		b, closeBench, err := newBench(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)

		for _, v := range variants {
			res, err := b.measure(v)
			require.NoError(t, err, "variant %s", v.name)
			require.Equal(t, cfg.Loops, res.loops)
			if v.name == "parallel" {
				require.Equal(t, 4, res.workers)
			}
		}
		closeBench()
	}
}

func TestVariantsAgree(t *testing.T) {
	b, closeBench, err := newBench(context.Background(), testConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer closeBench()

	orders := make(map[string][]int32)
	for _, v := range variants[1:] {
		_, err := b.measure(v)
		require.NoError(t, err)
		orders[v.name] = append([]int32(nil), b.scratchIndex...)
	}
	// Keys are unique with overwhelming probability, so every proxy variant
	// yields the same permutation.
	require.Equal(t, orders["introsort"], orders["radix"])
	require.Equal(t, orders["radix"], orders["parallel"])
}

func TestCommand(t *testing.T) {
	cmd, err := newCommand(newViper())
	require.NoError(t, err)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--count", "3000", "--only", "radix,parallel", "--pool", "ants", "--workers", "2", "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[1], "radix "), lines[1])
	require.True(t, strings.HasPrefix(lines[2], "parallel "), lines[2])
}

func TestCommandEnvironment(t *testing.T) {
	t.Setenv("SORTOF_COUNT", "1500")
	t.Setenv("SORTOF_LOG_LEVEL", "error")
	t.Setenv("SORTOF_ONLY", "introsort")

	v := newViper()
	cmd, err := newCommand(v)
	require.NoError(t, err)
	require.Equal(t, 1500, v.GetInt("count"))
	require.Equal(t, []string{"introsort"}, v.GetStringSlice("only"))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "introsort")
	require.NotContains(t, out.String(), "comparator")
}

func TestCommandRejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--loops", "0"},
		{"--radix", "17"},
		{"--pool", "goroutines", "--count", "10"},
		{"--only", "bogosort"},
		{"--log-level", "loud", "--count", "10"},
	} {
		cmd, err := newCommand(newViper())
		require.NoError(t, err)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		require.Error(t, cmd.Execute(), "args %v", args)
	}
}
