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

package radix_test

import (
	"context"
	"fmt"

	"github.com/ajroetker/radixcount/hwy/contrib/device"
	"github.com/ajroetker/radixcount/hwy/contrib/radix"
)

func ExampleSortCount() {
	q := device.NewQueue()
	defer q.Close()

	const segments = 2
	values := []int64{5, 1, 3, 7, 2, 6, 0, 4, 5, 5, 12, 15, 9, 8, 1, 1}
	counts := make([]int64, radix.HistogramLen(16, segments))

	ctx := context.Background()
	keepAlive, done, err := radix.SortCount(ctx, radix.NewArray(values, q), radix.NewArray(counts, q), segments, 16, 0, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := done.Wait(ctx); err != nil {
		fmt.Println(err)
		return
	}

	h := radix.NewHistogram(counts, 16, segments)
	fmt.Println(h.BucketTotals())
	fmt.Println(h.SegmentTotal(0), h.SegmentTotal(1))
	_ = keepAlive.Wait(ctx)
	// Output:
	// [1 3 1 1 1 3 1 1 1 1 0 0 1 0 0 1]
	// 16 0
}

func ExampleKernel_CountSerial() {
	k, err := radix.NewKernel[float64, int32](radix.Config{DigitBits: 1})
	if err != nil {
		fmt.Println(err)
		return
	}
	counts := make([]int32, radix.HistogramLen(k.Buckets(), 1))
	k.CountSerial([]float64{-2, -0.5, 0, 3, 8}, counts, 1, 2, 63)
	fmt.Println("negative:", counts[radix.HistogramIndex(1, 0, 0)])
	fmt.Println("non-negative:", counts[radix.HistogramIndex(1, 1, 0)])
	// Output:
	// negative: 2
	// non-negative: 3
}
