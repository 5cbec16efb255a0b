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
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// workerCount returns how many batches a parallel sort of n keys uses: one per
// started block of batchLength keys, capped at maxWorkers.
func workerCount(n, maxWorkers int) int {
	if n <= 0 {
		return 0
	}
	return min((n-1)/batchLength+1, maxWorkers)
}

// ParallelWorkspaceSize returns the minimum workspace length for
// ParallelSort: one row of 2^r counters per batch followed by n keys. It
// depends on WithRadix and WithMaxWorkers, which must match the sort call.
func ParallelWorkspaceSize(n int, opts ...Option) (int, error) {
	c := newConfig(opts)
	return parallelWorkspaceSize(n, c)
}

func parallelWorkspaceSize(n int, c *config) (int, error) {
	if err := checkRadix(n, c.radix); err != nil {
		return 0, err
	}
	if n <= 1 {
		return 0, nil
	}
	return workerCount(n, c.maxWorkers)<<c.radix + n, nil
}

// ParallelSortKeys is ParallelSort without values.
func ParallelSortKeys[K Key](keys, workspace []K, opts ...Option) (int, error) {
	return ParallelSort[K, struct{}](keys, nil, workspace, nil, opts...)
}

// ParallelSort sorts keys with a stable LSD radix sort split across workers,
// applying the same permutation to values. values may be nil; otherwise it
// must match keys in length and wsValues must hold at least len(keys)
// elements. workspace must hold at least ParallelWorkspaceSize elements.
//
// Each digit pass counts buckets per batch, computes global offsets, and
// scatters every batch into the workspace. Passes whose keys all fall into
// one bucket are skipped. The result is in keys and values on return.
//
// It returns the number of workers used, 0 when there was nothing to do.
func ParallelSort[K Key, V any](keys []K, values []V, workspace []K, wsValues []V, opts ...Option) (int, error) {
	c := newConfig(opts)
	n := len(keys)
	size, err := parallelWorkspaceSize(n, c)
	if err != nil {
		return 0, err
	}

	mask := K(c.mask)
	if n <= 1 || mask == 0 {
		return 0, nil
	}
	if len(workspace) < size {
		return 0, errors.Wrapf(ErrSize, "workspace holds %d, need %d (see ParallelWorkspaceSize)", len(workspace), size)
	}
	if err := checkValues(n, values, wsValues); err != nil {
		return 0, err
	}
	if uint64(n) > uint64(^K(0)) {
		return 0, errors.Wrapf(ErrSize, "%d keys overflow %d-bit offsets", n, keyBits[K]())
	}
	if c.executor == nil {
		c.executor = sharedPool()
	}

	workers := workerCount(n, c.maxWorkers)
	tableLen := workers << c.radix
	bp := newBufferPair(keys, values, workspace[tableLen:tableLen+n], wsValues)
	co := newCoordinator(c, workers, n, workspace[:tableLen], bp)

	c.logger.Debug("parallel radix sort",
		zap.Int("keys", n),
		zap.Int("workers", workers),
		zap.Int("radix", c.radix),
		zap.Bool("descending", c.descending),
		zap.Stringer("numberSystem", c.numberSystem))

	if c.numberSystem == Float {
		if err := co.execute(pass[K]{step: stepFlipNegatives}); err != nil {
			return 0, err
		}
	}

	flip := flipFor[K](c.descending)
	g := newGroups(c.radix, mask)
	for {
		groupMask, shift, top, ok := g.next()
		if !ok {
			break
		}

		p := pass[K]{step: stepCount, shift: shift, groupMask: groupMask, flip: flip}
		if err := co.execute(p); err != nil {
			return 0, err
		}

		start := 0
		if top && c.numberSystem != Unsigned {
			start = signBucket(keyBits[K](), c.radix)
		}
		if !co.computeOffsets(start) {
			c.logger.Debug("radix pass skipped, all keys in one bucket", zap.Int("shift", shift))
			continue
		}

		p.step = stepScatter
		if err := co.execute(p); err != nil {
			return 0, err
		}
		co.bp.swap()
	}

	if co.bp.swapped {
		if err := co.execute(pass[K]{step: stepCopy}); err != nil {
			return 0, err
		}
		co.bp.swap()
	}

	if c.numberSystem == Float {
		if err := co.execute(pass[K]{step: stepFlipNegatives}); err != nil {
			return 0, err
		}
	}
	return workers, nil
}
