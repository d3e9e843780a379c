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

// Package contrib groups the components built on top of package hwy.
//
// # Subpackages
//
//   - keys: order-preserving unsigned encodings of numeric keys
//   - radix: the per-segment radix histogram kernel and its host wrapper
//   - radix/gpu: the same kernel as a WGSL compute shader (build tag webgpu)
//   - device: queue, events and thread-group launches the kernel runs on
//   - workerpool: persistent worker pool the device schedules groups on
//   - metrics: task observers (atomic counters and Prometheus)
//
// # Counting a pass
//
//	import "github.com/ajroetker/radixcount/hwy/contrib/radix"
//
//	q := device.NewQueue()
//	defer q.Close()
//	vals := radix.NewArray([]int64{3, 1, 2}, q)
//	counts := radix.NewArray(make([]int64, 16*(4+1)), q)
//	keep, done, err := radix.SortCount(ctx, vals, counts, 4, 32, 0, nil)
//
// Both events resolve when the histogram is complete. keep also holds the
// arrays reachable until then.
package contrib
