// Copyright 2025 The sortof Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool. A Pool is
// created once and shared by many sorts, so the parallel radix kernel does not
// pay goroutine spawn costs on every digit pass.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	_, err := radix.ParallelSort(keys, values, ws, wsValues, radix.WithExecutor(pool))
//
//	pool.ParallelFor(len(records), func(start, end int) {
//	    encodeKeys(records[start:end], keys[start:end])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("workerpool: pool closed")

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	// mu guards sends on workC against a concurrent Close.
	mu        sync.RWMutex
	closeOnce sync.Once
	closed    atomic.Bool
}

// workItem is a single task; barrier is nil for fire-and-forget submissions.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}

	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		if item.barrier != nil {
			item.barrier.Done()
		}
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed.Store(true)
		close(p.workC)
		p.mu.Unlock()
	})
}

// Submit queues fn for execution on a worker and returns without waiting.
// It blocks only while the queue is full.
func (p *Pool) Submit(fn func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() {
		return ErrClosed
	}
	p.workC <- workItem{fn: fn}
	return nil
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	p.mu.RLock()
	if p.closed.Load() {
		p.mu.RUnlock()
		fn(0, n)
		return
	}
	for i := 0; i < workers; i++ {
		start := i * chunkSize
		if start >= n {
			break
		}
		end := min(start+chunkSize, n)
		wg.Add(1)
		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}
	p.mu.RUnlock()

	wg.Wait()
}
