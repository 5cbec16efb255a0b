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
	"math/bits"

	"github.com/pkg/errors"
)

// Key is an unsigned sort key of 32 or 64 bits.
type Key interface {
	~uint32 | ~uint64
}

// =============================================================================
// Digit groups
// =============================================================================

func keyBits[K Key]() int {
	var k K
	return bits.OnesCount64(uint64(^k))
}

func checkRadix(n, r int) error {
	if n < 0 {
		return errors.Wrapf(ErrRadix, "negative count %d", n)
	}
	if r < 1 || r > MaxRadix {
		return errors.Wrapf(ErrRadix, "digit width %d not in 1..%d", r, MaxRadix)
	}
	return nil
}

// groupCount is the number of r-bit digits needed to cover a key.
func groupCount(keyBits, r int) int {
	return (keyBits + r - 1) / r
}

// signBucket is the bucket of the top digit group that holds the smallest
// value carrying the sign bit. Visiting buckets from there and wrapping
// around puts negative keys before non-negative ones.
func signBucket(keyBits, r int) int {
	return 1 << ((keyBits - 1) % r)
}

// groups walks the digit groups that still carry mask bits.
type groups[K Key] struct {
	r        int
	count    int
	shift    int
	index    int
	mask     K
	radixMax K
}

func newGroups[K Key](r int, mask K) groups[K] {
	return groups[K]{
		r:        r,
		count:    groupCount(keyBits[K](), r),
		mask:     mask,
		radixMax: K(1)<<r - 1,
	}
}

// next returns the digit mask of the next group with any mask bits set, its
// shift and whether it is the most significant group. ok is false once the
// mask is exhausted.
func (g *groups[K]) next() (groupMask K, shift int, top bool, ok bool) {
	for g.index < g.count && g.mask != 0 {
		shift = g.shift
		top = g.index == g.count-1
		groupMask = (g.mask >> shift) & g.radixMax
		g.mask &^= g.radixMax << shift
		g.index++
		g.shift += g.r
		if groupMask != 0 {
			return groupMask, shift, top, true
		}
	}
	return 0, 0, false, false
}

// flipFor returns the value XORed into every key before digit extraction.
// Descending order reads the digits of the complemented key.
func flipFor[K Key](descending bool) K {
	if descending {
		return ^K(0)
	}
	return 0
}

// =============================================================================
// Offsets
// =============================================================================

// prefixSums turns counts into exclusive offsets, visiting buckets from start
// and wrapping around. It reports false without finishing when one bucket
// holds all n keys.
func prefixSums(counts []int, start, n int) bool {
	buckets := len(counts)
	offset := 0
	for i := 0; i < buckets; i++ {
		b := (start + i) & (buckets - 1)
		c := counts[b]
		if c == n {
			return false
		}
		counts[b] = offset
		offset += c
	}
	return true
}

// flipNegatives toggles the magnitude bits of every key with the sign bit set.
// On IEEE bit patterns this yields two's-complement order, and applying it
// twice restores the input.
func flipNegatives[K Key](keys []K) {
	sign := K(1) << (keyBits[K]() - 1)
	magnitude := sign - 1
	for i, k := range keys {
		if k&sign != 0 {
			keys[i] = k ^ magnitude
		}
	}
}
