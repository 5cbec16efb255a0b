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

var (
	// ErrSize reports a workspace or value buffer shorter than required.
	ErrSize = errors.New("radix: buffer too small")

	// ErrRadix reports a digit width outside 1..MaxRadix or a negative count.
	ErrRadix = errors.New("radix: invalid argument")

	// ErrUnsupportedKeyWidth reports an element type that is not 32 or 64 bits wide.
	ErrUnsupportedKeyWidth = errors.New("radix: unsupported key width")

	// ErrWorkerTimeout reports that the workers of a parallel step did not all
	// finish in time. The executor is starved; the buffers are left in an
	// undefined state.
	ErrWorkerTimeout = errors.New("radix: timed out waiting for workers")
)
