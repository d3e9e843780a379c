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

package keys_test

import (
	"fmt"

	"github.com/ajroetker/radixcount/hwy/contrib/keys"
)

func ExampleEncoder() {
	enc := keys.Encoder[int64](keys.Descending)
	for _, v := range []int64{-5, 3, 0, -1} {
		fmt.Printf("%3d -> %#016x\n", v, enc(v))
	}
	// Output:
	//  -5 -> 0x8000000000000004
	//   3 -> 0x7ffffffffffffffc
	//   0 -> 0x7fffffffffffffff
	//  -1 -> 0x8000000000000000
}
