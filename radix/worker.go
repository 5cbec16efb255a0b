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

package radix

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/cpu"
)

type step uint8

const (
	stepCount step = iota
	stepScatter
	stepCopy
	stepFlipNegatives
)

func (s step) String() string {
	switch s {
	case stepCount:
		return "count"
	case stepScatter:
		return "scatter"
	case stepCopy:
		return "copy"
	case stepFlipNegatives:
		return "flipNegatives"
	default:
		return "unknown"
	}
}

// pass is the configuration every worker reads during one step. The
// coordinator writes it only while no worker is running.
type pass[K Key] struct {
	step      step
	shift     int
	groupMask K
	flip      K
}

// batch describes one worker's contiguous share of the buffers. counts is
// private to the worker; nonEmpty and lastBucket summarize it for the scatter
// fast path.
type batch struct {
	_          cpu.CacheLinePad
	index      int
	start, end int
	counts     []int
	nonEmpty   int
	lastBucket int
	_          cpu.CacheLinePad
}

// coordinator drives the steps of one ParallelSort call.
type coordinator[K Key, V any] struct {
	cfg         *config
	n           int
	bucketCount int
	batches     []batch
	tasks       []func()

	// table holds one row of bucketCount counters per batch, row-major. It
	// holds counts after stepCount and absolute offsets after computeOffsets.
	table []K
	bp    bufferPair[K, V]
	pass  pass[K]

	mu          sync.Mutex
	totals      []int
	outstanding int
	done        chan struct{}
}

func newCoordinator[K Key, V any](cfg *config, workers, n int, table []K, bp bufferPair[K, V]) *coordinator[K, V] {
	bucketCount := 1 << cfg.radix
	c := &coordinator[K, V]{
		cfg:         cfg,
		n:           n,
		bucketCount: bucketCount,
		batches:     make([]batch, workers),
		tasks:       make([]func(), workers),
		table:       table,
		bp:          bp,
		totals:      make([]int, bucketCount),
	}
	batchSize := (n-1)/workers + 1
	for i := range c.batches {
		i := i
		c.batches[i] = batch{
			index:  i,
			start:  min(i*batchSize, n),
			end:    min((i+1)*batchSize, n),
			counts: make([]int, bucketCount),
		}
		c.tasks[i] = func() { c.run(&c.batches[i]) }
	}
	return c
}

// execute runs one step on every batch: all but the first are submitted to
// the executor and the calling goroutine handles batch 0 itself.
func (c *coordinator[K, V]) execute(p pass[K]) error {
	c.pass = p
	c.mu.Lock()
	if p.step == stepCount {
		clear(c.totals)
	}
	c.outstanding = len(c.batches)
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	for i := 1; i < len(c.tasks); i++ {
		if err := c.cfg.executor.Submit(c.tasks[i]); err != nil {
			c.cfg.logger.Debug("executor rejected task, running inline",
				zap.Stringer("step", p.step), zap.Int("batch", i), zap.Error(err))
			c.tasks[i]()
		}
	}
	c.tasks[0]()

	select {
	case <-done:
		return nil
	default:
	}
	timer := c.cfg.clock.Timer(c.cfg.timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
		c.mu.Lock()
		outstanding := c.outstanding
		c.mu.Unlock()
		return errors.Wrapf(ErrWorkerTimeout, "%s step: %d of %d batches outstanding after %s",
			p.step, outstanding, len(c.batches), c.cfg.timeout)
	}
}

func (c *coordinator[K, V]) run(b *batch) {
	switch c.pass.step {
	case stepCount:
		c.count(b)
		return
	case stepScatter:
		c.scatter(b)
	case stepCopy:
		c.bp.copyRange(b.start, b.end)
	case stepFlipNegatives:
		flipNegatives(c.bp.keys[b.start:b.end])
	}
	c.mu.Lock()
	c.finishLocked()
	c.mu.Unlock()
}

func (c *coordinator[K, V]) finishLocked() {
	c.outstanding--
	if c.outstanding == 0 {
		close(c.done)
	}
}

// count histograms the batch into its private counters, then publishes them
// to its table row and the shared totals under the lock.
func (c *coordinator[K, V]) count(b *batch) {
	p := c.pass
	counts := b.counts
	clear(counts)
	for _, k := range c.bp.keys[b.start:b.end] {
		counts[((k^p.flip)>>p.shift)&p.groupMask]++
	}

	nonEmpty, last := 0, 0
	for d, n := range counts {
		if n != 0 {
			nonEmpty++
			last = d
		}
	}
	b.nonEmpty, b.lastBucket = nonEmpty, last

	row := c.table[b.index*c.bucketCount : (b.index+1)*c.bucketCount]
	c.mu.Lock()
	for d, n := range counts {
		row[d] = K(n)
		c.totals[d] += n
	}
	c.finishLocked()
	c.mu.Unlock()
}

// computeOffsets rewrites the table from counts to absolute offsets, bucket by
// bucket starting at start, batches in order within a bucket. It reports false
// when a single bucket holds every key, leaving the table partially rewritten.
func (c *coordinator[K, V]) computeOffsets(start int) bool {
	buckets := c.bucketCount
	offset := K(0)
	for i := 0; i < buckets; i++ {
		d := (start + i) & (buckets - 1)
		if c.totals[d] == c.n {
			return false
		}
		for j := range c.batches {
			cell := j*buckets + d
			count := c.table[cell]
			c.table[cell] = offset
			offset += count
		}
	}
	return true
}

// scatter moves the batch to its offsets in the destination. A batch whose
// keys all share one bucket lands in one contiguous range and is copied whole.
func (c *coordinator[K, V]) scatter(b *batch) {
	if b.start == b.end {
		return
	}
	row := c.table[b.index*c.bucketCount : (b.index+1)*c.bucketCount]
	bp := &c.bp
	src := bp.keys[b.start:b.end]

	if b.nonEmpty == 1 {
		o := int(row[b.lastBucket])
		copy(bp.wsKeys[o:o+len(src)], src)
		if bp.hasValues() {
			copy(bp.wsValues[o:o+len(src)], bp.values[b.start:b.end])
		}
		return
	}

	p := c.pass
	dst := bp.wsKeys
	if !bp.hasValues() {
		for _, k := range src {
			d := ((k ^ p.flip) >> p.shift) & p.groupMask
			dst[row[d]] = k
			row[d]++
		}
		return
	}

	values, dstValues := bp.values[b.start:b.end], bp.wsValues
	for i, k := range src {
		d := ((k ^ p.flip) >> p.shift) & p.groupMask
		o := row[d]
		dst[o] = k
		dstValues[o] = values[i]
		row[d] = o + 1
	}
}
