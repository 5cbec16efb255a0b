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
	"time"

	"github.com/pkg/errors"
)

// Field is one component of a composite key. Key must already be an
// order-preserving key that fits in Bits.
type Field struct {
	Key        uint64
	Bits       uint
	Descending bool
}

// PackComposite packs fields into a single key, first field in the most
// significant bits. The fields' widths must add up to at most 64.
func PackComposite(fields ...Field) (uint64, error) {
	var (
		packed uint64
		used   uint
	)
	for i, f := range fields {
		if f.Bits == 0 || f.Bits > 64 {
			return 0, errors.Wrapf(ErrOutOfRange, "field %d: width %d", i, f.Bits)
		}
		if used+f.Bits > 64 {
			return 0, errors.Wrapf(ErrOutOfRange, "field %d: total width %d exceeds 64 bits", i, used+f.Bits)
		}
		mask := widthMask(f.Bits)
		if f.Key&^mask != 0 {
			return 0, errors.Wrapf(ErrOutOfRange, "field %d: key %#x does not fit in %d bits", i, f.Key, f.Bits)
		}
		k := f.Key
		if f.Descending {
			k = ^k & mask
		}
		if f.Bits == 64 {
			packed = k
		} else {
			packed = packed<<f.Bits | k
		}
		used += f.Bits
	}
	return packed, nil
}

// UnpackComposite splits a key produced by PackComposite with the same field
// layout. Only Bits and Descending of layout are read.
func UnpackComposite(packed uint64, layout ...Field) ([]uint64, error) {
	var total uint
	for i, f := range layout {
		if f.Bits == 0 || f.Bits > 64 || total+f.Bits > 64 {
			return nil, errors.Wrapf(ErrOutOfRange, "field %d: width %d", i, f.Bits)
		}
		total += f.Bits
	}
	out := make([]uint64, len(layout))
	shift := total
	for i, f := range layout {
		shift -= f.Bits
		mask := widthMask(f.Bits)
		k := (packed >> shift) & mask
		if f.Descending {
			k = ^k & mask
		}
		out[i] = k
	}
	return out, nil
}

func widthMask(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<bits - 1
}

var (
	millennium        = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	millennialMinimum = millennium.Add(2 * time.Second)
	millennialMaximum = millennium.Add(time.Duration(1<<32-2) * time.Second)
)

// Millennial returns t as whole seconds since 2000-01-01 UTC. The zero time maps
// to 0; any other instant must lie between 2000-01-01T00:00:02Z and
// 2136-02-07T06:28:14Z inclusive.
func Millennial(t time.Time) (uint32, error) {
	if t.IsZero() {
		return 0, nil
	}
	if t.Before(millennialMinimum) || t.After(millennialMaximum) {
		return 0, errors.Wrapf(ErrOutOfRange, "time %s outside %s to %s",
			t.UTC().Format(time.RFC3339), millennialMinimum.Format(time.RFC3339), millennialMaximum.Format(time.RFC3339))
	}
	return uint32(t.Sub(millennium) / time.Second), nil
}

// FromMillennial converts a Millennial key back into a UTC time, truncated to
// the second. Key 0 yields the zero time.
func FromMillennial(k uint32) time.Time {
	if k == 0 {
		return time.Time{}
	}
	return millennium.Add(time.Duration(k) * time.Second)
}

// Release builds the key that orders records by release date descending and
// then by price ascending. The price is narrowed to float32.
func Release(date time.Time, price float64) (uint64, error) {
	d, err := Millennial(date)
	if err != nil {
		return 0, err
	}
	return PackComposite(
		Field{Key: uint64(d), Bits: 32, Descending: true},
		Field{Key: uint64(EncodeFloat32(float32(price))), Bits: 32},
	)
}
