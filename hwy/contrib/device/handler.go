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

import "context"

// Handler records one command group: its dependencies, its group-local
// buffers and exactly one command.
type Handler struct {
	deps     []*Event
	locals   []func() any
	commands int

	rng    NDRange
	kernel func(*Item)
	host   func(context.Context) error
}

// DependsOn adds events the command must wait for. Nil events are ignored.
func (h *Handler) DependsOn(events ...*Event) {
	for _, ev := range events {
		if ev != nil {
			h.deps = append(h.deps, ev)
		}
	}
}

// ParallelFor records a kernel launch over rng.
func (h *Handler) ParallelFor(rng NDRange, kernel func(*Item)) {
	h.commands++
	h.rng = rng
	h.kernel = kernel
}

// HostTask records a function run on the host once the dependencies have
// resolved.
func (h *Handler) HostTask(fn func(context.Context) error) {
	h.commands++
	h.host = fn
}

// kind names the recorded command for logs and metrics.
func (h *Handler) kind() TaskKind {
	if h.kernel != nil {
		return TaskParallel
	}
	return TaskHost
}
