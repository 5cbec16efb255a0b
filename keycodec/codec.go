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

package keycodec

import (
	"math"

	"github.com/pkg/errors"
)

// ErrOutOfRange is returned when a value has no order-preserving key in the
// requested width.
var ErrOutOfRange = errors.New("keycodec: value out of range")

const (
	signBit32 = uint32(1) << 31
	signBit64 = uint64(1) << 63
)

// EncodeInt32 rebases v so that math.MinInt32 maps to 0.
func EncodeInt32(v int32) uint32 {
	return uint32(v) ^ signBit32
}

// DecodeInt32 is the inverse of EncodeInt32.
func DecodeInt32(k uint32) int32 {
	return int32(k ^ signBit32)
}

// EncodeInt64 rebases v so that math.MinInt64 maps to 0.
func EncodeInt64(v int64) uint64 {
	return uint64(v) ^ signBit64
}

// DecodeInt64 is the inverse of EncodeInt64.
func DecodeInt64(k uint64) int64 {
	return int64(k ^ signBit64)
}

// EncodeFloat32 returns the order-preserving key of v.
func EncodeFloat32(v float32) uint32 {
	return FloatBits32(math.Float32bits(v))
}

// DecodeFloat32 is the inverse of EncodeFloat32.
func DecodeFloat32(k uint32) float32 {
	return math.Float32frombits(UnfloatBits32(k))
}

// EncodeFloat64 returns the order-preserving key of v.
func EncodeFloat64(v float64) uint64 {
	return FloatBits64(math.Float64bits(v))
}

// DecodeFloat64 is the inverse of EncodeFloat64.
func DecodeFloat64(k uint64) float64 {
	return math.Float64frombits(UnfloatBits64(k))
}

// FloatBits32 maps raw IEEE-754 single precision bits to a sort key.
// Negative values take the complement of the whole pattern, which is the
// two's-complement negation of the magnitude less one; this keeps -0.0 distinct
// from +0.0.
func FloatBits32(bits uint32) uint32 {
	if bits&signBit32 != 0 {
		return ^bits
	}
	return bits | signBit32
}

// UnfloatBits32 is the inverse of FloatBits32.
func UnfloatBits32(k uint32) uint32 {
	if k&signBit32 != 0 {
		return k &^ signBit32
	}
	return ^k
}

// FloatBits64 maps raw IEEE-754 double precision bits to a sort key.
func FloatBits64(bits uint64) uint64 {
	if bits&signBit64 != 0 {
		return ^bits
	}
	return bits | signBit64
}

// UnfloatBits64 is the inverse of FloatBits64.
func UnfloatBits64(k uint64) uint64 {
	if k&signBit64 != 0 {
		return k &^ signBit64
	}
	return ^k
}

// EncodeInt32s writes the keys of src into dst, which must be at least as long.
func EncodeInt32s(dst []uint32, src []int32) {
	_ = dst[:len(src)]
	for i, v := range src {
		dst[i] = EncodeInt32(v)
	}
}

// EncodeFloat32s writes the keys of src into dst, which must be at least as long.
func EncodeFloat32s(dst []uint32, src []float32) {
	_ = dst[:len(src)]
	for i, v := range src {
		dst[i] = EncodeFloat32(v)
	}
}
