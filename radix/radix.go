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

	"github.com/aelij/sortof/introsort"
)

// smallSortThreshold: inputs this short skip the radix passes entirely.
const smallSortThreshold = 16

// WorkspaceSize returns the minimum key workspace length for Sort. The value
// workspace, when values are sorted too, must hold n elements.
func WorkspaceSize(n int, opts ...Option) (int, error) {
	c := newConfig(opts)
	if err := checkRadix(n, c.radix); err != nil {
		return 0, err
	}
	if n <= 1 {
		return 0, nil
	}
	return n, nil
}

// SortKeys is Sort without values.
func SortKeys[K Key](keys, workspace []K, opts ...Option) error {
	return Sort[K, struct{}](keys, nil, workspace, nil, opts...)
}

// Sort sorts keys with a stable LSD radix sort and applies the same
// permutation to values. values may be nil; otherwise it must have the same
// length as keys and wsValues must be at least as long.
//
// The result is in keys and values on return regardless of how many passes
// ran. Buffer lengths are checked before anything is written.
func Sort[K Key, V any](keys []K, values []V, wsKeys []K, wsValues []V, opts ...Option) error {
	c := newConfig(opts)
	n := len(keys)
	size, err := WorkspaceSize(n, WithRadix(c.radix))
	if err != nil {
		return err
	}
	if len(wsKeys) < size {
		return errors.Wrapf(ErrSize, "key workspace holds %d, need %d", len(wsKeys), size)
	}
	if err := checkValues(n, values, wsValues); err != nil {
		return err
	}

	mask := K(c.mask)
	if n <= 1 || mask == 0 {
		return nil
	}

	if n <= smallSortThreshold && mask == ^K(0) && !c.descending && c.numberSystem == Unsigned {
		introsort.InsertionSort(keys, values)
		return nil
	}

	if c.numberSystem == Float {
		flipNegatives(keys)
		defer flipNegatives(keys)
	}

	bp := newBufferPair(keys, values, wsKeys, wsValues)
	counts := make([]int, 1<<c.radix)
	flip := flipFor[K](c.descending)
	g := newGroups(c.radix, mask)
	for {
		groupMask, shift, top, ok := g.next()
		if !ok {
			break
		}

		clear(counts)
		for _, k := range bp.keys {
			counts[((k^flip)>>shift)&groupMask]++
		}

		start := 0
		if top && c.numberSystem != Unsigned {
			start = signBucket(keyBits[K](), c.radix)
		}
		if !prefixSums(counts, start, n) {
			c.logger.Debug("radix pass skipped, all keys in one bucket", zap.Int("shift", shift))
			continue
		}

		scatter(&bp, counts, shift, groupMask, flip)
		bp.swap()
	}
	bp.flush()
	return nil
}

// scatter places every element at its bucket's next offset in the destination.
func scatter[K Key, V any](bp *bufferPair[K, V], offsets []int, shift int, groupMask, flip K) {
	dst := bp.wsKeys
	if !bp.hasValues() {
		for _, k := range bp.keys {
			d := ((k ^ flip) >> shift) & groupMask
			dst[offsets[d]] = k
			offsets[d]++
		}
		return
	}

	values, dstValues := bp.values, bp.wsValues
	for i, k := range bp.keys {
		d := ((k ^ flip) >> shift) & groupMask
		o := offsets[d]
		dst[o] = k
		dstValues[o] = values[i]
		offsets[d] = o + 1
	}
}
