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

package radix_test

import (
	"fmt"

	"github.com/aelij/sortof/keycodec"
	"github.com/aelij/sortof/radix"
)

func ExampleSort() {
	temperatures := []int32{5, -3, 5, 0}
	keys := make([]uint32, len(temperatures))
	keycodec.EncodeInt32s(keys, temperatures)
	index := []int32{0, 1, 2, 3}

	size, _ := radix.WorkspaceSize(len(keys))
	if err := radix.Sort(keys, index, make([]uint32, size), make([]int32, len(index))); err != nil {
		panic(err)
	}
	for _, i := range index {
		fmt.Print(temperatures[i], " ")
	}
	fmt.Println()
	// Output: -3 0 5 5
}

func ExampleParallelSort() {
	keys := []uint64{30, 10, 20, 10}
	names := []string{"c", "a", "b", "a2"}

	size, _ := radix.ParallelWorkspaceSize(len(keys))
	workers, err := radix.ParallelSort(keys, names, make([]uint64, size), make([]string, len(names)), radix.Descending())
	if err != nil {
		panic(err)
	}
	fmt.Println(workers, keys, names)
	// Output: 1 [30 20 10 10] [c b a a2]
}

func ExampleSortNumbers() {
	data := []float64{2.5, -1, 0, 1e9}
	if _, err := radix.SortNumbers(data); err != nil {
		panic(err)
	}
	fmt.Println(data)
	// Output: [-1 0 2.5 1e+09]
}
