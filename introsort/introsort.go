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

// Package introsort sorts a key slice in place while permuting a parallel
// value slice identically.
//
// The algorithm is an introspective sort:
//   - Compare-and-swap networks for partitions of 2 and 3 elements
//   - Insertion sort for partitions up to 16 elements
//   - Median-of-three quicksort for larger partitions
//   - Heapsort once the recursion budget of 2*log2(n) levels is spent
//
// The result is ordered but not stable. Use the radix package when equal keys
// must keep their input order.
package introsort

import "golang.org/x/exp/constraints"

// sizeThreshold is the largest partition handled without partitioning.
const sizeThreshold = 16

// Sort sorts keys ascending and applies every swap to values as well.
// values may be nil; otherwise it must be at least as long as keys.
func Sort[K constraints.Integer, V any](keys []K, values []V) {
	n := len(keys)
	if n < 2 {
		return
	}
	if values != nil {
		_ = values[n-1]
	}
	s := sorter[K, V]{keys: keys, values: values}
	s.introSort(0, n-1, 2*floorLog2(n))
}

// floorLog2 counts the significant bits of n, which over-estimates
// floor(log2(n)) by one and leaves the quicksort a little extra headroom.
func floorLog2(n int) int {
	result := 0
	for n >= 1 {
		result++
		n /= 2
	}
	return result
}

type sorter[K constraints.Integer, V any] struct {
	keys   []K
	values []V
}

// introSort works on the inclusive range [lo, hi].
func (s *sorter[K, V]) introSort(lo, hi, depthLimit int) {
	for hi > lo {
		size := hi - lo + 1
		if size <= sizeThreshold {
			switch size {
			case 2:
				s.swapIfGreater(lo, hi)
			case 3:
				s.swapIfGreater(lo, hi-1)
				s.swapIfGreater(lo, hi)
				s.swapIfGreater(hi-1, hi)
			default:
				s.insertionSort(lo, hi)
			}
			return
		}

		if depthLimit == 0 {
			s.heapSort(lo, hi)
			return
		}
		depthLimit--

		p := s.pickPivotAndPartition(lo, hi)
		s.introSort(p+1, hi, depthLimit)
		hi = p - 1
	}
}

func (s *sorter[K, V]) swap(i, j int) {
	if i == j {
		return
	}
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	if s.values != nil {
		s.values[i], s.values[j] = s.values[j], s.values[i]
	}
}

func (s *sorter[K, V]) swapIfGreater(a, b int) {
	if a != b && s.keys[a] > s.keys[b] {
		s.swap(a, b)
	}
}

// pickPivotAndPartition orders lo, middle and hi, parks the median at hi-1 and
// runs a Hoare partition over (lo, hi-1). It returns the pivot's final index.
func (s *sorter[K, V]) pickPivotAndPartition(lo, hi int) int {
	middle := lo + (hi-lo)/2

	s.swapIfGreater(lo, middle)
	s.swapIfGreater(lo, hi)
	s.swapIfGreater(middle, hi)

	pivot := s.keys[middle]
	s.swap(middle, hi-1)

	// lo and hi are already on the correct side of the pivot.
	left, right := lo, hi-1
	for left < right {
		for left++; s.keys[left] < pivot; left++ {
		}
		for right--; pivot < s.keys[right]; right-- {
		}
		if left >= right {
			break
		}
		s.swap(left, right)
	}

	s.swap(left, hi-1)
	return left
}

func (s *sorter[K, V]) insertionSort(lo, hi int) {
	keys := s.keys
	if s.values == nil {
		for i := lo; i < hi; i++ {
			t := keys[i+1]
			j := i
			for j >= lo && t < keys[j] {
				keys[j+1] = keys[j]
				j--
			}
			keys[j+1] = t
		}
		return
	}

	values := s.values
	for i := lo; i < hi; i++ {
		t, tv := keys[i+1], values[i+1]
		j := i
		for j >= lo && t < keys[j] {
			keys[j+1] = keys[j]
			values[j+1] = values[j]
			j--
		}
		keys[j+1] = t
		values[j+1] = tv
	}
}

// InsertionSort sorts keys ascending, carrying values along. Equal keys keep
// their relative order. values may be nil.
func InsertionSort[K constraints.Integer, V any](keys []K, values []V) {
	if len(keys) < 2 {
		return
	}
	if values != nil {
		_ = values[len(keys)-1]
	}
	s := sorter[K, V]{keys: keys, values: values}
	s.insertionSort(0, len(keys)-1)
}

// IsSorted reports whether keys is in ascending order.
func IsSorted[K constraints.Integer](keys []K) bool {
	for i := 1; i < len(keys); i++ {
		if keys[i] < keys[i-1] {
			return false
		}
	}
	return true
}
