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

import "github.com/pkg/errors"

// bufferPair holds the current source buffers and the scatter destination.
// swap exchanges their roles; swapped tracks whether the caller's buffers are
// currently the destination.
type bufferPair[K Key, V any] struct {
	keys     []K
	wsKeys   []K
	values   []V
	wsValues []V
	swapped  bool
}

// newBufferPair trims both workspaces to len(keys). values and wsValues are
// ignored when values is nil.
func newBufferPair[K Key, V any](keys []K, values []V, wsKeys []K, wsValues []V) bufferPair[K, V] {
	n := len(keys)
	bp := bufferPair[K, V]{
		keys:   keys,
		wsKeys: wsKeys[:n],
	}
	if values != nil {
		bp.values = values[:n]
		bp.wsValues = wsValues[:n]
	}
	return bp
}

func (bp *bufferPair[K, V]) hasValues() bool {
	return bp.values != nil
}

func (bp *bufferPair[K, V]) swap() {
	bp.keys, bp.wsKeys = bp.wsKeys, bp.keys
	bp.values, bp.wsValues = bp.wsValues, bp.values
	bp.swapped = !bp.swapped
}

// flush moves the result back into the caller's buffers after an odd number
// of swaps.
func (bp *bufferPair[K, V]) flush() {
	if !bp.swapped {
		return
	}
	copy(bp.wsKeys, bp.keys)
	if bp.hasValues() {
		copy(bp.wsValues, bp.values)
	}
	bp.swap()
}

// copyRange copies [start, end) of the current buffers into the destination.
func (bp *bufferPair[K, V]) copyRange(start, end int) {
	copy(bp.wsKeys[start:end], bp.keys[start:end])
	if bp.hasValues() {
		copy(bp.wsValues[start:end], bp.values[start:end])
	}
}

// checkValues validates the value buffers against n keys.
func checkValues[V any](n int, values, wsValues []V) error {
	if values == nil {
		return nil
	}
	if len(values) != n {
		return errors.Wrapf(ErrSize, "%d values for %d keys", len(values), n)
	}
	if len(wsValues) < n {
		return errors.Wrapf(ErrSize, "value workspace holds %d, need %d", len(wsValues), n)
	}
	return nil
}
