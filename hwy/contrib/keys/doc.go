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

// Package keys maps typed values onto unsigned integers of the same width
// whose unsigned order equals the requested sort order.
//
// Radix passes classify elements by slices of these encodings, so every
// supported type gets a transform that makes a plain unsigned comparison
// correct:
//
//   - bool: identity ascending, negation descending
//   - unsigned integers: identity ascending, complement descending
//   - signed integers: flip the sign bit ascending, flip the other bits descending
//   - float32, float64: a sign-dependent flip, see [Float32]
//
// # Example Usage
//
//	enc := keys.Encoder[float64](keys.Ascending)
//	u := enc(-1.5) // u < enc(0.25)
//
// The transform is resolved once per element type and order by [Encoder];
// per-element work is a load and an XOR.
//
// # NaN
//
// NaN bit patterns are not special-cased. They order by their raw bits
// under the same masks: positive NaNs above +Inf, negative NaNs below -Inf
// when ascending.
package keys
