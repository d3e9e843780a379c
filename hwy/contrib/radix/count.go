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
	"fmt"

	"github.com/ajroetker/radixcount/hwy"
	"github.com/ajroetker/radixcount/hwy/contrib/device"
	"github.com/ajroetker/radixcount/hwy/contrib/keys"
)

// TaskName is the name counting launches are submitted under.
const TaskName = "radix_count"

// tallyFunc adds the digit of every stride-th element of vals in [i, end)
// to t.
type tallyFunc[T hwy.Keys, C hwy.Counters] func(t *[MaxBuckets]C, vals []T, i, end, stride int, off uint32)

// Kernel counts digits of T keys into C counters. Its configuration, key
// encoding and loop variant are fixed when it is built.
type Kernel[T hwy.Keys, C hwy.Counters] struct {
	cfg     Config
	kind    keys.Kind
	buckets int
	unroll  int
	tally   tallyFunc[T, C]
}

// NewKernel builds a kernel for cfg.
func NewKernel[T hwy.Keys, C hwy.Counters](cfg Config) (*Kernel[T, C], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	k := keys.KindOf[T]()
	if k == keys.Invalid {
		return nil, fmt.Errorf("radix: unsupported key type %T", *new(T))
	}

	unroll := hwy.UnrollFactor()
	return &Kernel[T, C]{
		cfg:     cfg,
		kind:    k,
		buckets: cfg.Buckets(),
		unroll:  unroll,
		tally:   newTally[T, C](keys.Encoder[T](cfg.Order), cfg.Mask(), unroll),
	}, nil
}

// Config returns the kernel's configuration with defaults applied.
func (k *Kernel[T, C]) Config() Config { return k.cfg }

// Kind returns the key kind.
func (k *Kernel[T, C]) Kind() keys.Kind { return k.kind }

// Buckets returns the number of histogram rows.
func (k *Kernel[T, C]) Buckets() int { return k.buckets }

// Unroll returns the number of tallies each lane keeps in its scan loop.
func (k *Kernel[T, C]) Unroll() int { return k.unroll }

// Passes returns the number of passes an LSD sort of T needs.
func (k *Kernel[T, C]) Passes() int { return PassesInType(k.kind, k.cfg.DigitBits) }

// Submit enqueues the counting of values into counts on q after deps.
//
// One group of blockSize lanes runs per segment. The returned event resolves
// when every (bucket, segment) entry of counts is written. values and counts
// must not be touched by the caller until then.
//
// Submit does not validate its arguments; see SortCount.
func (k *Kernel[T, C]) Submit(ctx context.Context, q *device.Queue, values []T, counts []C, segments, blockSize int, radixOffset uint32, deps []*device.Event) *device.Event {
	geo := NewGeometry(len(values), blockSize, segments)
	assertLaunch(k.cfg, geo, len(counts), radixOffset)

	buckets := k.buckets
	return q.Submit(ctx, TaskName, func(h *device.Handler) {
		h.DependsOn(deps...)
		shared := device.NewLocal[C](h, blockSize*buckets)
		h.ParallelFor(device.NDRange{Groups: segments, GroupSize: blockSize}, func(it *device.Item) {
			k.lane(it, shared.Slice(it), values, counts, geo, radixOffset)
		})
	})
}

func (k *Kernel[T, C]) lane(it *device.Item, shared []C, values []T, counts []C, geo Geometry, off uint32) {
	lid, grp := it.LocalID(), it.GroupID()
	bs, buckets := geo.BlockSize, k.buckets

	var tally [MaxBuckets]C
	start, end := geo.SegmentRange(grp)
	k.tally(&tally, values, start+lid, end, bs, off)

	copy(shared[lid*buckets:(lid+1)*buckets], tally[:buckets])
	it.Barrier()

	// Stage A: slot lid gathers every stripe that holds bucket lid%buckets.
	acc := shared[lid]
	for i := 1; i < buckets; i++ {
		acc += shared[bs*i+lid]
	}
	shared[lid] = acc
	it.Barrier()

	// Stage B: halve the active lanes until one slot per bucket is left.
	for active := bs >> 1; active >= buckets; active >>= 1 {
		if lid < active {
			shared[lid] += shared[active+lid]
		}
		it.Barrier()
	}

	if lid < buckets {
		counts[HistogramIndex(geo.Segments, lid, grp)] = shared[lid]
	}
}

// newTally returns the scan loop for the given unroll factor.
func newTally[T hwy.Keys, C hwy.Counters](enc func(T) uint64, mask uint64, unroll int) tallyFunc[T, C] {
	switch {
	case unroll >= 4:
		return func(t *[MaxBuckets]C, vals []T, i, end, stride int, off uint32) {
			var t1, t2, t3 [MaxBuckets]C
			for ; i+3*stride < end; i += 4 * stride {
				t[(enc(vals[i])>>off)&mask]++
				t1[(enc(vals[i+stride])>>off)&mask]++
				t2[(enc(vals[i+2*stride])>>off)&mask]++
				t3[(enc(vals[i+3*stride])>>off)&mask]++
			}
			for ; i < end; i += stride {
				t[(enc(vals[i])>>off)&mask]++
			}
			for b := uint64(0); b <= mask; b++ {
				t[b] += t1[b] + t2[b] + t3[b]
			}
		}
	case unroll == 2:
		return func(t *[MaxBuckets]C, vals []T, i, end, stride int, off uint32) {
			var t1 [MaxBuckets]C
			for ; i+stride < end; i += 2 * stride {
				t[(enc(vals[i])>>off)&mask]++
				t1[(enc(vals[i+stride])>>off)&mask]++
			}
			for ; i < end; i += stride {
				t[(enc(vals[i])>>off)&mask]++
			}
			for b := uint64(0); b <= mask; b++ {
				t[b] += t1[b]
			}
		}
	default:
		return func(t *[MaxBuckets]C, vals []T, i, end, stride int, off uint32) {
			for ; i < end; i += stride {
				t[(enc(vals[i])>>off)&mask]++
			}
		}
	}
}
