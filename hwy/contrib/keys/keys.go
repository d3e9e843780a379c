// Copyright 2025 go-highway Authors
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

package keys

import (
	"math"

	"github.com/ajroetker/radixcount/hwy"
)

// Bool returns v for Ascending and !v for Descending.
func Bool(v bool, o Order) bool {
	if o == Ascending {
		return v
	}
	return !v
}

// Unsigned returns v for Ascending and its bitwise complement for Descending.
// Unsigned bit patterns are already rank ordered, so the complement reverses
// the order.
func Unsigned[U hwy.UnsignedInts](v U, o Order) U {
	if o == Ascending {
		return v
	}
	return ^v
}

// signedMask returns 100..0 for Ascending and 011..1 for Descending.
func signedMask(bits int, o Order) uint64 {
	sign := uint64(1) << (bits - 1)
	if o == Ascending {
		return sign
	}
	return sign - 1
}

// Int8 returns the order-preserving encoding of v.
func Int8(v int8, o Order) uint8 {
	return uint8(v) ^ uint8(signedMask(8, o))
}

// Int16 returns the order-preserving encoding of v.
func Int16(v int16, o Order) uint16 {
	return uint16(v) ^ uint16(signedMask(16, o))
}

// Int32 returns the order-preserving encoding of v.
func Int32(v int32, o Order) uint32 {
	return uint32(v) ^ uint32(signedMask(32, o))
}

// Int64 returns the order-preserving encoding of v.
//
// Ascending maps math.MinInt64 to 0 and math.MaxInt64 to math.MaxUint64.
func Int64(v int64, o Order) uint64 {
	return uint64(v) ^ signedMask(64, o)
}

// floatMasks returns the XOR masks applied to a float's raw bits, indexed by
// the original sign bit.
//
//	ascending:  sign 0 -> flip sign bit, sign 1 -> flip all bits
//	descending: sign 0 -> flip non-sign bits, sign 1 -> no flip
func floatMasks(bits int, o Order) [2]uint64 {
	sign := uint64(1) << (bits - 1)
	all := sign | (sign - 1)
	if o == Ascending {
		return [2]uint64{sign, all}
	}
	return [2]uint64{sign - 1, 0}
}

// unfloatMasks inverts floatMasks, indexed by the encoded top bit.
func unfloatMasks(bits int, o Order) [2]uint64 {
	sign := uint64(1) << (bits - 1)
	all := sign | (sign - 1)
	if o == Ascending {
		return [2]uint64{all, sign}
	}
	return [2]uint64{sign - 1, 0}
}

// Float32 returns the order-preserving encoding of v.
//
// Non-negative values are pushed into the upper half by flipping the sign
// bit; negative values have every bit flipped so that larger magnitudes land
// lower. Descending uses the mirrored masks. -0 orders below +0 when
// ascending.
func Float32(v float32, o Order) uint32 {
	u := math.Float32bits(v)
	m := floatMasks(32, o)
	return u ^ uint32(m[u>>31])
}

// Float64 returns the order-preserving encoding of v. See [Float32].
func Float64(v float64, o Order) uint64 {
	u := math.Float64bits(v)
	m := floatMasks(64, o)
	return u ^ m[u>>63]
}

// ToFloat32 inverts [Float32].
func ToFloat32(u uint32, o Order) float32 {
	m := unfloatMasks(32, o)
	return math.Float32frombits(u ^ uint32(m[u>>31]))
}

// ToFloat64 inverts [Float64].
func ToFloat64(u uint64, o Order) float64 {
	m := unfloatMasks(64, o)
	return math.Float64frombits(u ^ m[u>>63])
}
