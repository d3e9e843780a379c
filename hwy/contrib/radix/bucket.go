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

// Bucket returns the digit of an encoded key at bit offset off.
// Offsets of 64 or more select the digit 0.
func Bucket(encoded uint64, off uint32, mask uint64) uint64 {
	return (encoded >> off) & mask
}

// CeilDiv returns ceil(a/b) for a >= 0 and b > 0.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// PassesInType returns how many digitBits wide passes cover every bit of k.
func PassesInType(k keys.Kind, digitBits uint32) int {
	if digitBits == 0 {
		return 0
	}
	return CeilDiv(k.Bits(), int(digitBits))
}

// Offsets returns the radix offset of every pass of an LSD sort of k, from
// the least significant digit up.
func Offsets(k keys.Kind, digitBits uint32) []uint32 {
	n := PassesInType(k, digitBits)
	offs := make([]uint32, n)
	for i := range offs {
		offs[i] = uint32(i) * digitBits
	}
	return offs
}
