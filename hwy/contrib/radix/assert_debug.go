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

//go:build radixdebug

package radix

import (
	"fmt"
	"math/bits"
)

// assertLaunch panics when a launch breaks a precondition the kernel
// relies on but does not check in release builds.
func assertLaunch(cfg Config, geo Geometry, countsLen int, off uint32) {
	buckets := cfg.Buckets()
	if geo.BlockSize <= 0 || bits.OnesCount(uint(geo.BlockSize)) != 1 {
		panic(fmt.Sprintf("radix: block size %d is not a power of two", geo.BlockSize))
	}
	if geo.BlockSize < buckets {
		panic(fmt.Sprintf("radix: block size %d smaller than %d buckets", geo.BlockSize, buckets))
	}
	if off%cfg.DigitBits != 0 {
		panic(fmt.Sprintf("radix: offset %d not a multiple of %d digit bits", off, cfg.DigitBits))
	}
	if need := HistogramLen(buckets, geo.Segments); countsLen < need {
		panic(fmt.Sprintf("radix: histogram holds %d counters, need %d", countsLen, need))
	}
}
