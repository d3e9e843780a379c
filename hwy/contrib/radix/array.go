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

package radix

import (
	"reflect"
	"slices"
	"unsafe"

	"github.com/ajroetker/radixcount/hwy/contrib/device"
)

// Array is a typed buffer bound to the queue that owns it.
type Array struct {
	// Data is a slice of a supported element type.
	Data any
	// Shape is the extent of each dimension.
	Shape []int
	// Strides is the element step of each dimension. Nil means C-contiguous.
	Strides []int
	// Queue is the queue Data was allocated for.
	Queue *device.Queue
}

// NewArray returns a contiguous rank-1 view of data on q.
func NewArray(data any, q *device.Queue) Array {
	n := 0
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice {
		n = v.Len()
	}
	return Array{Data: data, Shape: []int{n}, Strides: []int{1}, Queue: q}
}

// DType returns the element type of a.
func (a Array) DType() DType { return DTypeOf(a.Data) }

// Rank returns the number of dimensions.
func (a Array) Rank() int { return len(a.Shape) }

// Size returns the number of elements the shape covers.
func (a Array) Size() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// dataLen returns the length of the backing slice.
func (a Array) dataLen() int {
	v := reflect.ValueOf(a.Data)
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}

// IsCContiguous reports whether a is laid out row-major without gaps and
// its backing slice covers the shape.
func (a Array) IsCContiguous() bool {
	if a.Size() > a.dataLen() {
		return false
	}
	if a.Strides == nil {
		return true
	}
	if len(a.Strides) != len(a.Shape) {
		return false
	}
	want := 1
	for i := len(a.Shape) - 1; i >= 0; i-- {
		if a.Shape[i] > 1 && a.Strides[i] != want {
			return false
		}
		want *= a.Shape[i]
	}
	return true
}

// view reinterprets the first n elements of a's backing slice as []T.
// The caller has matched T to a.DType().
func view[T any](a Array, n int) []T {
	v := reflect.ValueOf(a.Data)
	if v.Len() == 0 {
		return nil
	}
	return slices.Clip(unsafe.Slice((*T)(v.UnsafePointer()), v.Len())[:n])
}
