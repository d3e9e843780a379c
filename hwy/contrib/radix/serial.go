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

import "github.com/ajroetker/radixcount/hwy/contrib/keys"

// CountSerial fills counts exactly like Submit, on the calling goroutine.
// It is the reference the parallel kernel is checked against.
func (k *Kernel[T, C]) CountSerial(values []T, counts []C, segments, blockSize int, radixOffset uint32) {
	geo := NewGeometry(len(values), blockSize, segments)
	enc := keys.Encoder[T](k.cfg.Order)
	mask := k.cfg.Mask()

	for s := range segments {
		var tally [MaxBuckets]C
		start, end := geo.SegmentRange(s)
		for _, v := range values[start:end] {
			tally[Bucket(enc(v), radixOffset, mask)]++
		}
		for b := range k.buckets {
			counts[HistogramIndex(segments, b, s)] = tally[b]
		}
	}
}
