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

// Package metrics provides device.Observer implementations: an in-memory
// collector for debugging and a Prometheus collector for services.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/ajroetker/radixcount/hwy/contrib/device"
)

// BasicObserver keeps task totals in memory.
type BasicObserver struct {
	Tasks         atomic.Int64
	TaskErrors    atomic.Int64
	Kernels       atomic.Int64
	Lanes         atomic.Int64
	QueuedNanos   atomic.Int64
	RunTotalNanos atomic.Int64
}

// RecordTask implements device.Observer.
func (b *BasicObserver) RecordTask(s device.TaskStats) {
	b.Tasks.Add(1)
	if s.Err != nil {
		b.TaskErrors.Add(1)
	}
	if s.Kind == device.TaskParallel {
		b.Kernels.Add(1)
		b.Lanes.Add(int64(s.Range.Lanes()))
	}
	b.QueuedNanos.Add(s.Queued.Nanoseconds())
	b.RunTotalNanos.Add(s.Run.Nanoseconds())
}

// BasicStats is a snapshot of a BasicObserver.
type BasicStats struct {
	Tasks      int64
	TaskErrors int64
	Kernels    int64
	Lanes      int64
	AvgQueued  time.Duration
	AvgRun     time.Duration
}

// Stats returns a snapshot of the current totals.
func (b *BasicObserver) Stats() BasicStats {
	s := BasicStats{
		Tasks:      b.Tasks.Load(),
		TaskErrors: b.TaskErrors.Load(),
		Kernels:    b.Kernels.Load(),
		Lanes:      b.Lanes.Load(),
	}
	if s.Tasks > 0 {
		s.AvgQueued = time.Duration(b.QueuedNanos.Load() / s.Tasks)
		s.AvgRun = time.Duration(b.RunTotalNanos.Load() / s.Tasks)
	}
	return s
}
