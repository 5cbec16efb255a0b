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
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Number is any native numeric element type SortNumbers accepts. Only 32 and
// 64-bit types are actually sortable.
type Number interface {
	constraints.Integer | constraints.Float
}

// SortNumbers sorts data in place with ParallelSort, reading the element bits
// directly as keys. The number system is derived from T; a WithNumberSystem
// option is overridden. The workspace is allocated per call.
func SortNumbers[T Number](data []T, opts ...Option) (int, error) {
	var zero T
	ns := numberSystemOf[T]()
	opts = append(opts[:len(opts):len(opts)], WithNumberSystem(ns))

	switch unsafe.Sizeof(zero) {
	case 4:
		return sortNumberBits(reinterpret[T, uint32](data), opts)
	case 8:
		return sortNumberBits(reinterpret[T, uint64](data), opts)
	default:
		return 0, errors.Wrapf(ErrUnsupportedKeyWidth, "%T is %d bits wide", zero, unsafe.Sizeof(zero)*8)
	}
}

func sortNumberBits[K Key](keys []K, opts []Option) (int, error) {
	size, err := ParallelWorkspaceSize(len(keys), opts...)
	if err != nil {
		return 0, err
	}
	workspace := make([]K, size)
	return ParallelSortKeys(keys, workspace, opts...)
}

// reinterpret views data as a slice of the same-width unsigned type.
func reinterpret[T Number, K Key](data []T) []K {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*K)(unsafe.Pointer(unsafe.SliceData(data))), len(data))
}

func numberSystemOf[T Number]() NumberSystem {
	var one, zero T = 1, 0
	switch {
	case one/2 != 0:
		return Float
	case zero-one < zero:
		return Signed
	default:
		return Unsigned
	}
}
