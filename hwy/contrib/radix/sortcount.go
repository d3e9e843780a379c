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
	"context"

	"github.com/ajroetker/radixcount/hwy"
	"github.com/ajroetker/radixcount/hwy/contrib/device"
	"github.com/ajroetker/radixcount/hwy/contrib/keys"
)

// SortCount counts the DefaultDigitBits wide digit at radixOffset of every
// element of vals in ascending key order, writing the histogram into
// counts. See SortCountOrder.
func SortCount(ctx context.Context, vals, counts Array, segments, blockSize int, radixOffset uint32, deps []*device.Event) (keepAlive, done *device.Event, err error) {
	return SortCountOrder(ctx, vals, counts, segments, blockSize, radixOffset, keys.Ascending, deps)
}

// SortCountOrder validates its arguments and submits the counting kernel on
// the queue of vals.
//
// Checks run in this order, each returning a *ValidationError: both arrays
// are rank 1, both are bound to compatible queues, both are C-contiguous,
// counts is int64 and vals has a supported element type, and finally the
// launch sizes and histogram length fit.
//
// done resolves when the histogram is written. keepAlive resolves once done
// has, whatever its outcome; vals and counts may be released after it.
func SortCountOrder(ctx context.Context, vals, counts Array, segments, blockSize int, radixOffset uint32, order keys.Order, deps []*device.Event) (keepAlive, done *device.Event, err error) {
	if err := checkArrays(vals, counts, true); err != nil {
		return nil, nil, err
	}
	q := vals.Queue
	cfg := Config{DigitBits: DefaultDigitBits, Order: order}
	if err := checkLaunch(cfg, counts, segments, blockSize, q.Device().MaxGroupSize()); err != nil {
		return nil, nil, err
	}

	k := newArrayKernel(vals.DType(), cfg)
	done = k.submit(ctx, q, vals, view[int64](counts, counts.Shape[0]), segments, blockSize, radixOffset, deps)
	keepAlive = q.KeepAlive([]*device.Event{done}, vals.Data, counts.Data)
	return keepAlive, done, nil
}

// CountSerialArray validates like SortCountOrder, without the placement
// check, and counts on the calling goroutine.
func CountSerialArray(vals, counts Array, segments, blockSize int, radixOffset uint32, order keys.Order) error {
	if err := checkArrays(vals, counts, false); err != nil {
		return err
	}
	cfg := Config{DigitBits: DefaultDigitBits, Order: order}
	if err := checkLaunch(cfg, counts, segments, blockSize, 0); err != nil {
		return err
	}

	k := newArrayKernel(vals.DType(), cfg)
	k.serial(vals, view[int64](counts, counts.Shape[0]), segments, blockSize, radixOffset)
	return nil
}

func checkArrays(vals, counts Array, placement bool) error {
	if vals.Rank() != 1 || counts.Rank() != 1 {
		return validationErrorf(CategoryShape, "input arrays must be vectors, got ranks %d and %d", vals.Rank(), counts.Rank())
	}
	if vals.Shape[0] < 0 || counts.Shape[0] < 0 {
		return validationErrorf(CategoryShape, "negative extents %d and %d", vals.Shape[0], counts.Shape[0])
	}
	if placement && !vals.Queue.Compatible(counts.Queue) {
		return validationErrorf(CategoryPlacement, "incompatible allocation queues: can not deduce execution placement")
	}
	if !vals.IsCContiguous() || !counts.IsCContiguous() {
		return validationErrorf(CategoryLayout, "input arrays must be C-contiguous")
	}
	if vals.DType() == DTypeInvalid || counts.DType() != DTypeInt64 {
		return validationErrorf(CategoryType, "unsupported data types %s and %s", vals.DType(), counts.DType())
	}
	return nil
}

// checkLaunch validates the launch sizes. maxGroupSize 0 means no limit.
func checkLaunch(cfg Config, counts Array, segments, blockSize, maxGroupSize int) error {
	if err := cfg.Validate(); err != nil {
		return validationErrorf(CategoryType, "%v", err)
	}
	if segments <= 0 || blockSize <= 0 {
		return validationErrorf(CategoryShape, "segments (%d) and block size (%d) must be positive", segments, blockSize)
	}
	if maxGroupSize > 0 && blockSize > maxGroupSize {
		return validationErrorf(CategoryShape, "block size %d exceeds the device limit %d", blockSize, maxGroupSize)
	}
	if need := HistogramLen(cfg.Buckets(), segments); counts.Shape[0] < need {
		return validationErrorf(CategoryShape, "counts holds %d counters, %d segments need %d", counts.Shape[0], segments, need)
	}
	return nil
}

// arrayKernel runs a Kernel over the backing slice of an Array.
type arrayKernel interface {
	submit(ctx context.Context, q *device.Queue, vals Array, counts []int64, segments, blockSize int, off uint32, deps []*device.Event) *device.Event
	serial(vals Array, counts []int64, segments, blockSize int, off uint32)
}

type typedKernel[T hwy.Keys] struct {
	k *Kernel[T, int64]
}

func (t typedKernel[T]) submit(ctx context.Context, q *device.Queue, vals Array, counts []int64, segments, blockSize int, off uint32, deps []*device.Event) *device.Event {
	return t.k.Submit(ctx, q, view[T](vals, vals.Shape[0]), counts, segments, blockSize, off, deps)
}

func (t typedKernel[T]) serial(vals Array, counts []int64, segments, blockSize int, off uint32) {
	t.k.CountSerial(view[T](vals, vals.Shape[0]), counts, segments, blockSize, off)
}

func newTyped[T hwy.Keys](cfg Config) arrayKernel {
	k, err := NewKernel[T, int64](cfg)
	if err != nil {
		// cfg has been validated and T is a supported kind.
		panic(err)
	}
	return typedKernel[T]{k: k}
}

// newArrayKernel resolves dt to its kernel once per call.
func newArrayKernel(dt DType, cfg Config) arrayKernel {
	switch dt {
	case DTypeBool:
		return newTyped[bool](cfg)
	case DTypeInt8:
		return newTyped[int8](cfg)
	case DTypeInt16:
		return newTyped[int16](cfg)
	case DTypeInt32:
		return newTyped[int32](cfg)
	case DTypeInt64:
		return newTyped[int64](cfg)
	case DTypeUint8:
		return newTyped[uint8](cfg)
	case DTypeUint16:
		return newTyped[uint16](cfg)
	case DTypeUint32:
		return newTyped[uint32](cfg)
	case DTypeUint64:
		return newTyped[uint64](cfg)
	case DTypeFloat32:
		return newTyped[float32](cfg)
	case DTypeFloat64:
		return newTyped[float64](cfg)
	}
	panic("radix: no kernel for " + dt.String())
}
