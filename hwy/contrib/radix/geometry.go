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
	"github.com/samber/lo"

	"github.com/ajroetker/radixcount/hwy"
)

// Geometry is the block and segment layout of one counting launch.
type Geometry struct {
	N                int
	BlockSize        int
	Segments         int
	BlocksTotal      int
	BlocksPerSegment int
}

// NewGeometry splits n elements into blocks of blockSize and spreads them
// as evenly as possible over segments.
func NewGeometry(n, blockSize, segments int) Geometry {
	g := Geometry{N: n, BlockSize: blockSize, Segments: segments}
	if blockSize > 0 {
		g.BlocksTotal = CeilDiv(n, blockSize)
	}
	if segments > 0 {
		g.BlocksPerSegment = CeilDiv(g.BlocksTotal, segments)
	}
	return g
}

// SegmentRange returns the half-open element range [start, end) counted by
// segment s. Ranges past the end of the input are empty.
func (g Geometry) SegmentRange(s int) (start, end int) {
	span := g.BlocksPerSegment * g.BlockSize
	start = min(s*span, g.N)
	end = min(start+span, g.N)
	return start, end
}

// SegmentLen returns the number of elements counted by segment s.
func (g Geometry) SegmentLen(s int) int {
	start, end := g.SegmentRange(s)
	return end - start
}

// HistogramLen returns the number of counters a histogram needs:
// buckets*(segments+1).
func HistogramLen(buckets, segments int) int {
	return buckets * (segments + 1)
}

// HistogramIndex returns the position of (bucket, segment).
func HistogramIndex(segments, bucket, segment int) int {
	return (segments+1)*bucket + segment
}

// Histogram is a read-only view of a bucket-major histogram.
type Histogram[C hwy.Counters] struct {
	Counts   []C
	Buckets  int
	Segments int
}

// NewHistogram wraps counts. counts must hold HistogramLen(buckets, segments)
// counters.
func NewHistogram[C hwy.Counters](counts []C, buckets, segments int) Histogram[C] {
	return Histogram[C]{Counts: counts, Buckets: buckets, Segments: segments}
}

// At returns the count of bucket in segment.
func (h Histogram[C]) At(bucket, segment int) C {
	return h.Counts[HistogramIndex(h.Segments, bucket, segment)]
}

// Row returns the per-segment counts of bucket, without the reserved column.
func (h Histogram[C]) Row(bucket int) []C {
	start := HistogramIndex(h.Segments, bucket, 0)
	return h.Counts[start : start+h.Segments]
}

// Reserved returns the reserved column entry of bucket.
func (h Histogram[C]) Reserved(bucket int) C {
	return h.At(bucket, h.Segments)
}

// SegmentTotal returns the number of elements segment s counted.
func (h Histogram[C]) SegmentTotal(s int) C {
	return lo.SumBy(lo.Range(h.Buckets), func(b int) C {
		return h.At(b, s)
	})
}

// BucketTotal returns the number of elements in bucket over all segments.
func (h Histogram[C]) BucketTotal(bucket int) C {
	return lo.Sum(h.Row(bucket))
}

// BucketTotals returns BucketTotal for every bucket.
func (h Histogram[C]) BucketTotals() []C {
	return lo.Map(lo.Range(h.Buckets), func(b int, _ int) C {
		return h.BucketTotal(b)
	})
}

// Total returns the number of elements counted.
func (h Histogram[C]) Total() C {
	return lo.Sum(h.BucketTotals())
}
