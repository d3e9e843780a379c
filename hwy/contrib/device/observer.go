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

import "time"

// TaskKind distinguishes kernel launches from host tasks.
type TaskKind string

const (
	TaskParallel TaskKind = "parallel"
	TaskHost     TaskKind = "host"
)

// TaskStats describes one finished task.
type TaskStats struct {
	Name string
	Kind TaskKind

	// Range is zero for host tasks.
	Range NDRange

	// Queued is the time spent waiting for dependencies and admission,
	// Run the time spent executing.
	Queued time.Duration
	Run    time.Duration

	// Err is nil if the task succeeded.
	Err error
}

// Observer receives a TaskStats for every task a device finishes, including
// tasks that never ran because a dependency failed.
//
// Implementations must be safe for concurrent use. See package
// hwy/contrib/metrics for in-memory and Prometheus observers.
type Observer interface {
	RecordTask(TaskStats)
}

// NoopObserver discards all task statistics.
type NoopObserver struct{}

func (NoopObserver) RecordTask(TaskStats) {}
