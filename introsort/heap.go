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

package introsort

import "golang.org/x/exp/constraints"

// Heapsort sorts keys ascending in O(n log n) regardless of input, carrying
// values along. values may be nil.
func Heapsort[K constraints.Integer, V any](keys []K, values []V) {
	if len(keys) < 2 {
		return
	}
	if values != nil {
		_ = values[len(keys)-1]
	}
	s := sorter[K, V]{keys: keys, values: values}
	s.heapSort(0, len(keys)-1)
}

// heapSort builds a max-heap over [lo, hi] and repeatedly moves the root to
// the end of the shrinking heap.
func (s *sorter[K, V]) heapSort(lo, hi int) {
	n := hi - lo + 1
	for i := n / 2; i >= 1; i-- {
		s.downHeap(i, n, lo)
	}
	for i := n; i > 1; i-- {
		s.swap(lo, lo+i-1)
		s.downHeap(1, i-1, lo)
	}
}

// downHeap sifts the node at 1-based heap index i down a heap of n nodes
// rooted at lo.
func (s *sorter[K, V]) downHeap(i, n, lo int) {
	keys := s.keys
	d := keys[lo+i-1]
	var dv V
	if s.values != nil {
		dv = s.values[lo+i-1]
	}
	for i <= n/2 {
		child := 2 * i
		if child < n && keys[lo+child-1] < keys[lo+child] {
			child++
		}
		if keys[lo+child-1] < d {
			break
		}
		keys[lo+i-1] = keys[lo+child-1]
		if s.values != nil {
			s.values[lo+i-1] = s.values[lo+child-1]
		}
		i = child
	}
	keys[lo+i-1] = d
	if s.values != nil {
		s.values[lo+i-1] = dv
	}
}
