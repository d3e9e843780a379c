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

package device

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned for tasks submitted to a closed device.
	ErrClosed = errors.New("device: closed")

	// ErrDependencyFailed wraps the error of a failed prior event. The
	// dependent task does not run.
	ErrDependencyFailed = errors.New("device: dependency failed")

	// ErrKernelPanic is matched by the error of a task whose kernel panicked.
	ErrKernelPanic = errors.New("device: kernel panicked")

	// ErrNoCommand is returned when a command group records no command, or
	// more than one.
	ErrNoCommand = errors.New("device: command group must record exactly one command")
)

// ErrInvalidRange indicates an ND-range the device cannot launch.
type ErrInvalidRange struct {
	Range        NDRange
	MaxGroupSize int
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("device: invalid nd-range %d groups x %d lanes (max group size %d)",
		e.Range.Groups, e.Range.GroupSize, e.MaxGroupSize)
}

// PanicError records the first panic raised by a lane of a kernel.
//
// errors.Is(err, ErrKernelPanic) reports true for it.
type PanicError struct {
	Task  string
	Group int
	Lane  int
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("device: kernel %q panicked in group %d lane %d: %v", e.Task, e.Group, e.Lane, e.Value)
}

func (e *PanicError) Unwrap() error { return ErrKernelPanic }
