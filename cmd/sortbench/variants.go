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
	"slices"
	"time"
	"unsafe"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/aelij/sortof/introsort"
	"github.com/aelij/sortof/radix"
	"github.com/aelij/sortof/workerpool"
)

// bench holds the data set and the scratch buffers shared by all variants.
type bench struct {
	cfg     config
	logger  *zap.Logger
	records []Record

	// Prepared once; variants sort copies.
	keys []uint64

	scratchKeys  []uint64
	scratchIndex []int32
	wsKeys       []uint64
	wsIndex      []int32
	scratchRecs  []Record

	executor radix.Executor
}

// result is the timing of one variant.
type result struct {
	name    string
	loops   int
	total   time.Duration
	workers int
	wsBytes uint64
}

func (r result) mean() time.Duration {
	if r.loops == 0 {
		return 0
	}
	return r.total / time.Duration(r.loops)
}

// variant is one way of putting the records into release order. run sorts the
// prepared input once and returns the worker count it used, if any.
type variant struct {
	name string
	// reset restores the unsorted input before each loop.
	reset func(b *bench)
	run   func(b *bench) (int, error)
	// verify checks the output of the last loop.
	verify func(b *bench) error
	// wsBytes reports the workspace the variant needs beyond its input.
	wsBytes func(b *bench) uint64
}

var variants = []variant{
	{
		name:  "comparator",
		reset: func(b *bench) { copy(b.scratchRecs, b.records) },
		run: func(b *bench) (int, error) {
			slices.SortFunc(b.scratchRecs, compareRecords)
			return 0, nil
		},
		verify: func(b *bench) error {
			return verifyOrder(len(b.scratchRecs), func(i int) Record { return b.scratchRecs[i] })
		},
		wsBytes: func(b *bench) uint64 { return uint64(len(b.records)) * recordBytes },
	},
	{
		name:  "introsort",
		reset: resetProxy,
		run: func(b *bench) (int, error) {
			introsort.Sort(b.scratchKeys, b.scratchIndex)
			return 0, nil
		},
		verify:  verifyProxy,
		wsBytes: func(b *bench) uint64 { return proxyBytes(len(b.records)) },
	},
	{
		name:  "radix",
		reset: resetProxy,
		run: func(b *bench) (int, error) {
			n := len(b.scratchKeys)
			err := radix.Sort(b.scratchKeys, b.scratchIndex, b.wsKeys[:n], b.wsIndex, b.radixOptions()...)
			return 0, err
		},
		verify: verifyProxy,
		wsBytes: func(b *bench) uint64 {
			return proxyBytes(len(b.records)) * 2
		},
	},
	{
		name:  "parallel",
		reset: resetProxy,
		run: func(b *bench) (int, error) {
			opts := append(b.radixOptions(),
				radix.WithExecutor(b.executor),
				radix.WithMaxWorkers(b.cfg.Workers),
				radix.WithTimeout(b.cfg.Timeout))
			return radix.ParallelSort(b.scratchKeys, b.scratchIndex, b.wsKeys, b.wsIndex, opts...)
		},
		verify: verifyProxy,
		wsBytes: func(b *bench) uint64 {
			return proxyBytes(len(b.records)) + uint64(len(b.wsKeys))*8 + uint64(len(b.wsIndex))*4
		},
	},
}

var recordBytes = uint64(unsafe.Sizeof(Record{}))

func proxyBytes(n int) uint64 {
	return uint64(n) * (8 + 4)
}

func variantNames() []string {
	return lo.Map(variants, func(v variant, _ int) string { return v.name })
}

// selectVariants returns the variants named in only, or all of them when only
// is empty.
func selectVariants(only []string) ([]variant, error) {
	if len(only) == 0 {
		return variants, nil
	}
	unknown, _ := lo.Difference(lo.Uniq(only), variantNames())
	if len(unknown) > 0 {
		return nil, errors.Errorf("unknown variants %v (have %v)", unknown, variantNames())
	}
	return lo.Filter(variants, func(v variant, _ int) bool {
		return lo.Contains(only, v.name)
	}), nil
}

// newExecutor returns the task executor for the parallel variant and a func
// that releases it.
func newExecutor(kind string, workers int) (radix.Executor, func(), error) {
	switch kind {
	case "builtin":
		pool := workerpool.New(workers)
		return pool, pool.Close, nil
	case "ants":
		pool, err := ants.NewPool(workers)
		if err != nil {
			return nil, nil, errors.Wrap(err, "creating ants pool")
		}
		return pool, pool.Release, nil
	default:
		return nil, nil, errors.Errorf("unknown pool %q (have builtin, ants)", kind)
	}
}

func (b *bench) radixOptions() []radix.Option {
	return []radix.Option{radix.WithRadix(b.cfg.Radix), radix.WithLogger(b.logger)}
}

func resetProxy(b *bench) {
	copy(b.scratchKeys, b.keys)
	for i := range b.scratchIndex {
		b.scratchIndex[i] = int32(i)
	}
}

func verifyProxy(b *bench) error {
	if !introsort.IsSorted(b.scratchKeys) {
		return errors.New("keys are not in ascending order")
	}
	return verifyOrder(len(b.scratchIndex), func(i int) Record { return b.records[b.scratchIndex[i]] })
}

// measure runs v cfg.Loops times and verifies the last output.
func (b *bench) measure(v variant) (result, error) {
	res := result{name: v.name, wsBytes: v.wsBytes(b)}
	for i := 0; i < b.cfg.Loops; i++ {
		v.reset(b)
		start := time.Now()
		workers, err := v.run(b)
		if err != nil {
			return res, errors.Wrapf(err, "variant %s", v.name)
		}
		res.total += time.Since(start)
		res.workers = workers
		res.loops++
	}
	if err := v.verify(b); err != nil {
		return res, errors.Wrapf(err, "variant %s out of order", v.name)
	}
	return res, nil
}
