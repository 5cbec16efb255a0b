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
	"cmp"
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/aelij/sortof/keycodec"
	"github.com/aelij/sortof/workerpool"
)

// Record is one row of the benchmark data set.
type Record struct {
	ID          int32
	ReleaseDate time.Time
	Price       float64
}

func (r Record) String() string {
	return fmt.Sprintf("#%d %s %.2f", r.ID, r.ReleaseDate.Format(time.RFC3339), r.Price)
}

var releaseEpoch = time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)

// generateChunk is the number of records produced by one generator goroutine.
// Each chunk has its own seeded source, so output depends only on seed and count.
const generateChunk = 1 << 16

// generateRecords builds count records with release dates spread over 50 years
// from 2005 and prices in [0, 50000).
func generateRecords(ctx context.Context, count int, seed int64) ([]Record, error) {
	if count < 0 || int64(count) > 1<<31-1 {
		return nil, errors.Errorf("record count %d out of range", count)
	}
	records := make([]Record, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < count; start += generateChunk {
		start := start
		end := min(start+generateChunk, count)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seed + int64(start)))
			for i := start; i < end; i++ {
				date := releaseEpoch.
					AddDate(rng.Intn(50), 0, rng.Intn(365)).
					Add(time.Duration(rng.Intn(86400)) * time.Second)
				records[i] = Record{ID: int32(i), ReleaseDate: date, Price: rng.Float64() * 50000}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// prepareKeys fills keys with the release keys of records and index with the
// identity permutation.
func prepareKeys(pool *workerpool.Pool, records []Record, keys []uint64, index []int32) error {
	var (
		mu   sync.Mutex
		errs error
	)
	pool.ParallelFor(len(records), func(start, end int) {
		for i := start; i < end; i++ {
			k, err := keycodec.Release(records[i].ReleaseDate, records[i].Price)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, errors.Wrapf(err, "record %d", records[i].ID))
				mu.Unlock()
				continue
			}
			keys[i] = k
			index[i] = int32(i)
		}
	})
	return errs
}

// compareRecords orders by release date descending, then price ascending.
func compareRecords(a, b Record) int {
	if c := b.ReleaseDate.Compare(a.ReleaseDate); c != 0 {
		return c
	}
	return cmp.Compare(a.Price, b.Price)
}

// maxReported caps the ordering failures collected by verifyOrder.
const maxReported = 10

// verifyOrder checks that at(0..n-1) is in release order. Prices are compared at
// float32 precision, which is what the keys carry.
func verifyOrder(n int, at func(i int) Record) error {
	var errs error
	reported := 0
	for i := 1; i < n && reported < maxReported; i++ {
		prev, cur := at(i-1), at(i)
		c := cur.ReleaseDate.Compare(prev.ReleaseDate)
		if c == 0 {
			c = cmp.Compare(float32(prev.Price), float32(cur.Price))
		}
		if c > 0 {
			errs = multierr.Append(errs, errors.Errorf("position %d: %s sorted before %s", i, prev, cur))
			reported++
		}
	}
	return errs
}
