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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajroetker/radixcount/hwy/contrib/keys"
)

func TestSegmentationCoverage(t *testing.T) {
	for n := 0; n <= 130; n += 13 {
		for _, blockSize := range []int{1, 2, 4, 16, 64} {
			for _, segments := range []int{1, 2, 3, 5, 8, 40} {
				geo := NewGeometry(n, blockSize, segments)
				assert.Equal(t, CeilDiv(n, blockSize), geo.BlocksTotal)

				seen := make([]int, n)
				next, short := 0, false
				for s := range segments {
					start, end := geo.SegmentRange(s)
					if start != next {
						t.Fatalf("n=%d block=%d segments=%d: segment %d starts at %d, want %d", n, blockSize, segments, s, start, next)
					}
					if l := end - start; l > 0 {
						if short {
							t.Fatalf("n=%d block=%d segments=%d: segment %d follows a short segment", n, blockSize, segments, s)
						}
						short = l < geo.BlocksPerSegment*blockSize
					}
					for i := start; i < end; i++ {
						seen[i]++
					}
					next = end
				}
				if next != n {
					t.Fatalf("n=%d block=%d segments=%d: ranges end at %d", n, blockSize, segments, next)
				}
				for i, c := range seen {
					if c != 1 {
						t.Fatalf("n=%d block=%d segments=%d: index %d counted %d times", n, blockSize, segments, i, c)
					}
				}
			}
		}
	}
}

func TestGeometryFourSegments(t *testing.T) {
	geo := NewGeometry(32, 2, 4)
	assert.Equal(t, Geometry{N: 32, BlockSize: 2, Segments: 4, BlocksTotal: 16, BlocksPerSegment: 4}, geo)

	start, end := geo.SegmentRange(3)
	assert.Equal(t, 24, start)
	assert.Equal(t, 32, end)
}

func TestGeometryEmpty(t *testing.T) {
	geo := NewGeometry(0, 16, 4)
	assert.Equal(t, 0, geo.BlocksTotal)
	for s := range 4 {
		assert.Equal(t, 0, geo.SegmentLen(s))
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{64, 4, 16},
	}
	for _, tt := range tests {
		if got := CeilDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBucket(t *testing.T) {
	assert.Equal(t, uint64(0xc), Bucket(0xabc, 0, 0xf))
	assert.Equal(t, uint64(0xb), Bucket(0xabc, 4, 0xf))
	assert.Equal(t, uint64(0x2b), Bucket(0xabc, 4, 0x3f))
	assert.Equal(t, uint64(0xf), Bucket(0xf000000000000000, 60, 0xf))
	assert.Equal(t, uint64(0), Bucket(^uint64(0), 64, 0xf))
	assert.Equal(t, uint64(0), Bucket(^uint64(0), 100, 0xf))
}

func TestPassesInType(t *testing.T) {
	tests := []struct {
		kind keys.Kind
		bits uint32
		want int
	}{
		{keys.Bool, 4, 1},
		{keys.Int8, 4, 2},
		{keys.Uint16, 8, 2},
		{keys.Float32, 4, 8},
		{keys.Int64, 4, 16},
		{keys.Float64, 3, 22},
		{keys.Int64, 0, 0},
	}
	for _, tt := range tests {
		if got := PassesInType(tt.kind, tt.bits); got != tt.want {
			t.Errorf("PassesInType(%s, %d) = %d, want %d", tt.kind, tt.bits, got, tt.want)
		}
	}
	assert.Equal(t, []uint32{0, 4}, Offsets(keys.Int8, 4))
}

func TestHistogramView(t *testing.T) {
	// 2 buckets, 3 segments, reserved column last.
	counts := []int64{
		1, 2, 3, 100,
		4, 5, 6, 200,
	}
	h := NewHistogram(counts, 2, 3)

	assert.Equal(t, 8, HistogramLen(2, 3))
	assert.Equal(t, 5, HistogramIndex(3, 1, 1))
	assert.Equal(t, int64(5), h.At(1, 1))
	assert.Equal(t, []int64{4, 5, 6}, h.Row(1))
	assert.Equal(t, int64(200), h.Reserved(1))
	assert.Equal(t, int64(7), h.SegmentTotal(2))
	assert.Equal(t, int64(6), h.BucketTotal(0))
	assert.Equal(t, []int64{6, 15}, h.BucketTotals())
	assert.Equal(t, int64(21), h.Total())
}

func TestConfig(t *testing.T) {
	assert.Equal(t, 16, Config{}.Buckets())
	assert.Equal(t, uint64(0xff), Config{DigitBits: 8}.Mask())
	assert.NoError(t, Config{DigitBits: 1}.Validate())
	assert.Error(t, Config{DigitBits: 12}.Validate())
}
