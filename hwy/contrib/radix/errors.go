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
	"errors"
	"fmt"
)

// Category classifies a rejected SortCount call.
type Category string

const (
	// CategoryShape covers ranks, lengths and launch sizes.
	CategoryShape Category = "shape"
	// CategoryPlacement covers arrays bound to incompatible queues.
	CategoryPlacement Category = "placement"
	// CategoryLayout covers non-contiguous arrays.
	CategoryLayout Category = "layout"
	// CategoryType covers unsupported element types.
	CategoryType Category = "type"
)

var (
	// ErrShape matches every shape ValidationError.
	ErrShape = errors.New("radix: invalid shape")
	// ErrPlacement matches every placement ValidationError.
	ErrPlacement = errors.New("radix: incompatible placement")
	// ErrLayout matches every layout ValidationError.
	ErrLayout = errors.New("radix: invalid layout")
	// ErrType matches every type ValidationError.
	ErrType = errors.New("radix: unsupported type")
)

// ValidationError is returned by SortCount before anything is submitted.
type ValidationError struct {
	Category Category
	Msg      string
}

func validationErrorf(c Category, format string, args ...any) *ValidationError {
	return &ValidationError{Category: c, Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("radix: %s: %s", e.Category, e.Msg)
}

// Unwrap returns the sentinel of e's category.
func (e *ValidationError) Unwrap() error {
	switch e.Category {
	case CategoryShape:
		return ErrShape
	case CategoryPlacement:
		return ErrPlacement
	case CategoryLayout:
		return ErrLayout
	case CategoryType:
		return ErrType
	}
	return nil
}
