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
	"fmt"

	"github.com/ajroetker/radixcount/hwy/contrib/keys"
)

const (
	// DefaultDigitBits is the digit width used by SortCount.
	DefaultDigitBits = 4

	// MaxDigitBits bounds the digit width so a lane's private tally fits on
	// its stack.
	MaxDigitBits = 8

	// MaxBuckets is the bucket count at MaxDigitBits.
	MaxBuckets = 1 << MaxDigitBits
)

// Config selects the digit width and sort direction of a Kernel.
type Config struct {
	// DigitBits is the number of key bits classified per pass, 1..8.
	// Zero means DefaultDigitBits.
	DigitBits uint32

	// Order is the direction the encoded keys sort in.
	Order keys.Order
}

func (c Config) withDefaults() Config {
	if c.DigitBits == 0 {
		c.DigitBits = DefaultDigitBits
	}
	return c
}

// Validate reports whether c can build a kernel.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.DigitBits > MaxDigitBits {
		return fmt.Errorf("radix: digit bits %d out of range [1, %d]", c.DigitBits, MaxDigitBits)
	}
	if c.Order != keys.Ascending && c.Order != keys.Descending {
		return fmt.Errorf("radix: unknown order %d", c.Order)
	}
	return nil
}

// Buckets returns the number of distinct digits, 1<<DigitBits.
func (c Config) Buckets() int {
	return 1 << c.withDefaults().DigitBits
}

// Mask returns the digit mask, Buckets()-1.
func (c Config) Mask() uint64 {
	return uint64(c.Buckets() - 1)
}
