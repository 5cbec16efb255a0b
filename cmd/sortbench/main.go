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

// sortbench generates a set of product records and puts them in release order
// (newest first, then cheapest first) with several sorting strategies, timing
// and verifying each.
//
// Usage:
//
//	sortbench --count 10000000 --loops 3
//	sortbench --only radix,parallel --pool ants --workers 8
//	SORTOF_COUNT=500000 sortbench --log-level debug
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sys/cpu"

	"github.com/aelij/sortof/radix"
	"github.com/aelij/sortof/workerpool"
)

type config struct {
	Count    int
	Seed     int64
	Radix    int
	Loops    int
	Workers  int
	Pool     string
	Timeout  time.Duration
	Only     []string
	LogLevel string
}

func (c config) validate() error {
	switch {
	case c.Count < 0:
		return errors.Errorf("--count must not be negative, got %d", c.Count)
	case c.Loops < 1:
		return errors.Errorf("--loops must be at least 1, got %d", c.Loops)
	case c.Workers < 1:
		return errors.Errorf("--workers must be at least 1, got %d", c.Workers)
	case c.Radix < 1 || c.Radix > radix.MaxRadix:
		return errors.Errorf("--radix must be in 1..%d, got %d", radix.MaxRadix, c.Radix)
	}
	return nil
}

func main() {
	cmd, err := newCommand(newViper())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand(v *viper.Viper) (*cobra.Command, error) {
	var cfg config
	cmd := &cobra.Command{
		Use:          "sortbench",
		Short:        "Compare comparator, introsort and radix sorts on release-ordered records",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
	opts := []opt{
		{destP: &cfg.Count, flag: "count", dflt: 1_000_000, desc: "Number of records to generate"},
		{destP: &cfg.Seed, flag: "seed", dflt: int64(1), desc: "Random seed for the generator"},
		{destP: &cfg.Radix, flag: "radix", dflt: radix.DefaultRadix, desc: "Digit width in bits for the radix variants"},
		{destP: &cfg.Loops, flag: "loops", dflt: 1, desc: "Timed repetitions per variant"},
		{destP: &cfg.Workers, flag: "workers", dflt: runtime.NumCPU(), desc: "Maximum workers for the parallel variant"},
		{destP: &cfg.Pool, flag: "pool", dflt: "builtin", desc: "Executor for the parallel variant: builtin or ants"},
		{destP: &cfg.Timeout, flag: "timeout", dflt: radix.DefaultTimeout, desc: "Worker timeout for each parallel step"},
		{destP: &cfg.Only, flag: "only", dflt: []string{}, desc: fmt.Sprintf("Variants to run (default all of %v)", variantNames())},
		{destP: &cfg.LogLevel, flag: "log-level", dflt: "info", desc: "Log level: debug, info, warn or error"},
	}
	if err := bindOptions(v, cmd, opts); err != nil {
		return nil, err
	}
	return cmd, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "--log-level")
	}
	logconf := zap.NewProductionConfig()
	logconf.Level = zap.NewAtomicLevelAt(lvl)
	return logconf.Build()
}

func run(ctx context.Context, out io.Writer, cfg config) (err error) {
	if err := cfg.validate(); err != nil {
		return err
	}
	selected, err := selectVariants(cfg.Only)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.Int("records", cfg.Count),
		zap.Int("cpus", runtime.NumCPU()),
		zap.Bool("avx2", cpu.X86.HasAVX2),
		zap.Bool("asimd", cpu.ARM64.HasASIMD))

	b, closeBench, err := newBench(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBench()

	fmt.Fprintf(out, "%-12s %8s %14s %16s %8s %10s\n", "variant", "loops", "mean", "keys/s", "workers", "workspace")
	for _, v := range selected {
		res, verr := b.measure(v)
		if verr != nil {
			logger.Error("variant failed", zap.String("variant", v.name), zap.Error(verr))
			err = multierr.Append(err, verr)
			continue
		}
		writeResult(out, res, cfg.Count)
	}
	return err
}

func writeResult(out io.Writer, res result, count int) {
	rate := "-"
	if mean := res.mean(); mean > 0 {
		rate = humanize.Comma(int64(float64(count) / mean.Seconds()))
	}
	fmt.Fprintf(out, "%-12s %8d %14s %16s %8d %10s\n",
		res.name, res.loops, res.mean().Round(time.Microsecond), rate, res.workers, humanize.Bytes(res.wsBytes))
}

// newBench generates the records, prepares the keys and allocates every
// buffer the variants share.
func newBench(ctx context.Context, cfg config, logger *zap.Logger) (*bench, func(), error) {
	start := time.Now()
	pool := workerpool.New(cfg.Workers)
	executor, release, err := newExecutor(cfg.Pool, cfg.Workers)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	closeAll := func() {
		release()
		pool.Close()
	}

	records, err := generateRecords(ctx, cfg.Count, cfg.Seed)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	n := len(records)
	b := &bench{
		cfg:          cfg,
		logger:       logger,
		records:      records,
		keys:         make([]uint64, n),
		scratchKeys:  make([]uint64, n),
		scratchIndex: make([]int32, n),
		wsIndex:      make([]int32, n),
		scratchRecs:  make([]Record, n),
		executor:     executor,
	}
	if err := prepareKeys(pool, records, b.keys, b.scratchIndex); err != nil {
		closeAll()
		return nil, nil, err
	}

	size, err := radix.ParallelWorkspaceSize(n, radix.WithRadix(cfg.Radix), radix.WithMaxWorkers(cfg.Workers))
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	b.wsKeys = make([]uint64, max(size, n))

	logger.Info("records ready",
		zap.String("count", humanize.Comma(int64(n))),
		zap.String("workspace", humanize.Bytes(uint64(len(b.wsKeys))*8)),
		zap.Duration("elapsed", time.Since(start)))
	return b, closeAll, nil
}
