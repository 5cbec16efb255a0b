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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const orderPairs = 10000

var int32Boundaries = []int32{math.MinInt32, math.MinInt32 + 1, -1, 0, 1, math.MaxInt32 - 1, math.MaxInt32}

var float32Boundaries = []float32{
	float32(math.Inf(-1)), -math.MaxFloat32, -1.5, -math.SmallestNonzeroFloat32,
	float32(math.Copysign(0, -1)), 0, math.SmallestNonzeroFloat32, 1.5, math.MaxFloat32, float32(math.Inf(1)),
}

func randomInt32(rng *rand.Rand) int32 {
	if rng.Intn(8) == 0 {
		return int32Boundaries[rng.Intn(len(int32Boundaries))]
	}
	return int32(rng.Uint32())
}

func randomFloat32(rng *rand.Rand) float32 {
	if rng.Intn(8) == 0 {
		return float32Boundaries[rng.Intn(len(float32Boundaries))]
	}
	for {
		f := math.Float32frombits(rng.Uint32())
		if !math.IsNaN(float64(f)) {
			return f
		}
	}
}

func TestEncodeInt32Order(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < orderPairs; i++ {
		a, b := randomInt32(rng), randomInt32(rng)
		require.Equal(t, a < b, EncodeInt32(a) < EncodeInt32(b), "a=%d b=%d", a, b)
		require.Equal(t, a == b, EncodeInt32(a) == EncodeInt32(b), "a=%d b=%d", a, b)
	}
	require.Equal(t, uint32(0), EncodeInt32(math.MinInt32))
	require.Equal(t, uint32(math.MaxUint32), EncodeInt32(math.MaxInt32))
}

func TestEncodeInt32RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < orderPairs; i++ {
		v := randomInt32(rng)
		require.Equal(t, v, DecodeInt32(EncodeInt32(v)))
	}
}

func TestEncodeInt64(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	values := []int64{math.MinInt64, -1, 0, 1, math.MaxInt64}
	for i := 0; i < orderPairs; i++ {
		values = append(values, int64(rng.Uint64()))
	}
	for i := 1; i < len(values); i++ {
		a, b := values[i-1], values[i]
		require.Equal(t, a < b, EncodeInt64(a) < EncodeInt64(b), "a=%d b=%d", a, b)
		require.Equal(t, a, DecodeInt64(EncodeInt64(a)))
	}
}

func TestEncodeFloat32Order(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < orderPairs; i++ {
		a, b := randomFloat32(rng), randomFloat32(rng)
		ka, kb := EncodeFloat32(a), EncodeFloat32(b)
		if a < b {
			require.Less(t, ka, kb, "a=%g b=%g", a, b)
		} else if a > b {
			require.Greater(t, ka, kb, "a=%g b=%g", a, b)
		}
	}
}

func TestEncodeFloat32RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < orderPairs; i++ {
		v := randomFloat32(rng)
		require.Equal(t, math.Float32bits(v), math.Float32bits(DecodeFloat32(EncodeFloat32(v))))
	}
	nan := math.Float32frombits(0x7FC00001)
	require.Equal(t, math.Float32bits(nan), math.Float32bits(DecodeFloat32(EncodeFloat32(nan))))
}

func TestEncodeFloatZeros(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	require.Equal(t, uint32(0x7FFFFFFF), EncodeFloat32(negZero))
	require.Equal(t, uint32(0x80000000), EncodeFloat32(0))
	require.Less(t, EncodeFloat32(-math.SmallestNonzeroFloat32), EncodeFloat32(negZero))
	require.Less(t, EncodeFloat32(0), EncodeFloat32(math.SmallestNonzeroFloat32))

	require.Equal(t, uint64(1)<<63-1, EncodeFloat64(math.Copysign(0, -1)))
	require.Equal(t, uint64(1)<<63, EncodeFloat64(0))
}

func TestEncodeFloat64(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < orderPairs; i++ {
		a := math.Float64frombits(rng.Uint64())
		b := math.Float64frombits(rng.Uint64())
		if math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		require.Equal(t, a < b, EncodeFloat64(a) < EncodeFloat64(b), "a=%g b=%g", a, b)
		require.Equal(t, math.Float64bits(a), math.Float64bits(DecodeFloat64(EncodeFloat64(a))))
	}
}

func TestEncodeSlices(t *testing.T) {
	ints := []int32{5, -3, 5, 0}
	keys := make([]uint32, len(ints))
	EncodeInt32s(keys, ints)
	for i, v := range ints {
		require.Equal(t, EncodeInt32(v), keys[i])
	}

	floats := []float32{-1.5, 2.5}
	EncodeFloat32s(keys, floats)
	require.Equal(t, EncodeFloat32(-1.5), keys[0])
	require.Equal(t, EncodeFloat32(2.5), keys[1])
}

func TestFloatBitsInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < orderPairs; i++ {
		b32 := rng.Uint32()
		require.Equal(t, b32, UnfloatBits32(FloatBits32(b32)))
		require.Equal(t, b32, FloatBits32(UnfloatBits32(b32)))

		b64 := rng.Uint64()
		require.Equal(t, b64, UnfloatBits64(FloatBits64(b64)))
	}
	require.Equal(t, uint64(0x7FFFFFFFFFFFFFFF), FloatBits64(math.Float64bits(math.Copysign(0, -1))))
	require.Equal(t, uint64(0x8000000000000000), FloatBits64(0))
}
