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
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/aelij/sortof/workerpool"
)

const (
	// DefaultRadix is the digit width used when no WithRadix option is given.
	DefaultRadix = 8

	// MaxRadix bounds the digit width, and with it the 2^r counters per batch.
	MaxRadix = 16

	// DefaultTimeout bounds the wait for the workers of one parallel step.
	DefaultTimeout = 10 * time.Second

	// batchLength is the number of keys per worker below which no further
	// worker is added.
	batchLength = 1024
)

// NumberSystem describes where the raw key bits came from.
type NumberSystem uint8

const (
	// Unsigned keys sort by plain numeric value.
	Unsigned NumberSystem = iota
	// Signed keys are two's-complement integers.
	Signed
	// Float keys are IEEE-754 bit patterns of the key's width.
	Float
)

func (ns NumberSystem) String() string {
	switch ns {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("NumberSystem(%d)", uint8(ns))
	}
}

// Executor runs tasks asynchronously. *workerpool.Pool and *ants.Pool both
// satisfy it.
type Executor interface {
	Submit(task func()) error
}

// Option configures a sort.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

type config struct {
	radix        int
	descending   bool
	mask         uint64
	numberSystem NumberSystem
	logger       *zap.Logger
	executor     Executor
	maxWorkers   int
	timeout      time.Duration
	clock        clock.Clock
}

func newConfig(opts []Option) *config {
	c := &config{
		radix:      DefaultRadix,
		mask:       ^uint64(0),
		logger:     zap.NewNop(),
		maxWorkers: runtime.NumCPU(),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.maxWorkers < 1 {
		c.maxWorkers = 1
	}
	if c.clock == nil {
		c.clock = clock.New()
	}
	return c
}

// WithRadix sets the digit width in bits, 1 to MaxRadix.
func WithRadix(r int) Option {
	return optionFunc(func(c *config) { c.radix = r })
}

// Descending sorts from the largest key to the smallest.
func Descending() Option {
	return optionFunc(func(c *config) { c.descending = true })
}

// WithMask restricts sorting to the key bits set in mask. Digit groups with no
// mask bits are skipped entirely. Bits above the key width are ignored.
func WithMask(mask uint64) Option {
	return optionFunc(func(c *config) { c.mask = mask })
}

// WithNumberSystem declares how the raw key bits should be ordered.
func WithNumberSystem(ns NumberSystem) Option {
	return optionFunc(func(c *config) { c.numberSystem = ns })
}

// WithLogger sets the logger for debug output. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithExecutor sets the executor for parallel sorts. The default is a
// process-wide workerpool.Pool with GOMAXPROCS workers.
func WithExecutor(e Executor) Option {
	return optionFunc(func(c *config) { c.executor = e })
}

// WithMaxWorkers caps the number of batches of a parallel sort. The default is
// runtime.NumCPU().
func WithMaxWorkers(n int) Option {
	return optionFunc(func(c *config) { c.maxWorkers = n })
}

// WithTimeout bounds the wait for the workers of each parallel step.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *config) { c.timeout = d })
}

// WithClock sets the clock used for the worker timeout.
func WithClock(clk clock.Clock) Option {
	return optionFunc(func(c *config) { c.clock = clk })
}

var (
	sharedPoolOnce sync.Once
	sharedPoolInst *workerpool.Pool
)

func sharedPool() *workerpool.Pool {
	sharedPoolOnce.Do(func() {
		sharedPoolInst = workerpool.New(runtime.GOMAXPROCS(0))
	})
	return sharedPoolInst
}
