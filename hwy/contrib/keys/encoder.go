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
	"fmt"
	"unsafe"

	"github.com/ajroetker/radixcount/hwy"
)

// xorMask returns the mask applied to the raw bits of a non-float kind.
func xorMask(k Kind, o Order) uint64 {
	switch {
	case k == Bool:
		if o == Ascending {
			return 0
		}
		return 1
	case k.IsUnsigned():
		if o == Ascending {
			return 0
		}
		return ^uint64(0) >> (64 - k.Bits())
	default:
		return signedMask(k.Bits(), o)
	}
}

// Encoder returns the order-preserving transform for T and o, widened to
// uint64. The kind and order are resolved here, once; the returned function
// is a raw load and an XOR (plus a sign lookup for floats).
//
// Encoder panics if T has no supported kind.
func Encoder[T hwy.Keys](o Order) func(T) uint64 {
	k := KindOf[T]()
	switch k {
	case Float32:
		m := floatMasks(32, o)
		return func(v T) uint64 {
			u := uint64(*(*uint32)(unsafe.Pointer(&v)))
			return u ^ m[u>>31]
		}
	case Float64:
		m := floatMasks(64, o)
		return func(v T) uint64 {
			u := *(*uint64)(unsafe.Pointer(&v))
			return u ^ m[u>>63]
		}
	case Invalid:
		panic(fmt.Sprintf("keys: unsupported element type %T", *new(T)))
	}

	m := xorMask(k, o)
	switch k.Size() {
	case 1:
		return func(v T) uint64 {
			return uint64(*(*uint8)(unsafe.Pointer(&v))) ^ m
		}
	case 2:
		return func(v T) uint64 {
			return uint64(*(*uint16)(unsafe.Pointer(&v))) ^ m
		}
	case 4:
		return func(v T) uint64 {
			return uint64(*(*uint32)(unsafe.Pointer(&v))) ^ m
		}
	default:
		return func(v T) uint64 {
			return *(*uint64)(unsafe.Pointer(&v)) ^ m
		}
	}
}

// Decoder returns the inverse of Encoder[T](o). Bits above the kind's width
// are ignored.
func Decoder[T hwy.Keys](o Order) func(uint64) T {
	k := KindOf[T]()
	switch k {
	case Float32:
		m := unfloatMasks(32, o)
		return func(u uint64) T {
			r := uint32(u)
			r ^= uint32(m[r>>31])
			return *(*T)(unsafe.Pointer(&r))
		}
	case Float64:
		m := unfloatMasks(64, o)
		return func(u uint64) T {
			r := u ^ m[u>>63]
			return *(*T)(unsafe.Pointer(&r))
		}
	case Bool:
		m := uint8(xorMask(k, o))
		return func(u uint64) T {
			r := (uint8(u) ^ m) & 1
			return *(*T)(unsafe.Pointer(&r))
		}
	case Invalid:
		panic(fmt.Sprintf("keys: unsupported element type %T", *new(T)))
	}

	m := xorMask(k, o)
	switch k.Size() {
	case 1:
		return func(u uint64) T {
			r := uint8(u ^ m)
			return *(*T)(unsafe.Pointer(&r))
		}
	case 2:
		return func(u uint64) T {
			r := uint16(u ^ m)
			return *(*T)(unsafe.Pointer(&r))
		}
	case 4:
		return func(u uint64) T {
			r := uint32(u ^ m)
			return *(*T)(unsafe.Pointer(&r))
		}
	default:
		return func(u uint64) T {
			r := u ^ m
			return *(*T)(unsafe.Pointer(&r))
		}
	}
}

// EncodeSlice writes the encoding of each src element into dst.
// dst must be at least as long as src.
func EncodeSlice[T hwy.Keys](dst []uint64, src []T, o Order) {
	enc := Encoder[T](o)
	dst = dst[:len(src)]

	i := 0
	for ; i+4 <= len(src); i += 4 {
		dst[i] = enc(src[i])
		dst[i+1] = enc(src[i+1])
		dst[i+2] = enc(src[i+2])
		dst[i+3] = enc(src[i+3])
	}
	for ; i < len(src); i++ {
		dst[i] = enc(src[i])
	}
}

// DecodeSlice inverts EncodeSlice. dst must be at least as long as src.
func DecodeSlice[T hwy.Keys](dst []T, src []uint64, o Order) {
	dec := Decoder[T](o)
	dst = dst[:len(src)]
	for i, u := range src {
		dst[i] = dec(u)
	}
}
