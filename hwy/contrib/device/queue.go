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
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/ajroetker/radixcount/hwy/contrib/workerpool"
)

// Device owns the workers that execute thread-groups and the admission
// limits shared by all of its queues.
type Device struct {
	opts    options
	pool    *workerpool.Pool
	sem     *semaphore.Weighted // nil if unbounded
	limiter *rate.Limiter

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// New creates a Device. Call Close to release its workers.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Device{
		opts:    o,
		pool:    workerpool.New(o.workers),
		limiter: rate.NewLimiter(o.launchRate, o.launchBurst),
	}
	if o.maxInFlight > 0 {
		d.sem = semaphore.NewWeighted(o.maxInFlight)
	}
	return d
}

// Workers returns the number of thread-groups that may run at once.
func (d *Device) Workers() int {
	return d.pool.NumWorkers()
}

// MaxGroupSize returns the largest GroupSize the device accepts.
func (d *Device) MaxGroupSize() int {
	return d.opts.maxGroupSize
}

// NewQueue returns a queue that submits to d.
func (d *Device) NewQueue() *Queue {
	return &Queue{dev: d}
}

// Close waits for every submitted task to resolve and stops the workers.
// Tasks submitted after Close fail with ErrClosed.
func (d *Device) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.inflight.Wait()
	d.pool.Close()
}

// track registers a task; it returns false once the device is closed.
func (d *Device) track() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.inflight.Add(1)
	return true
}

// Queue submits tasks to a Device. Queues of the same device are
// compatible: their tasks may share memory and depend on each other's
// events.
type Queue struct {
	dev   *Device
	owned bool
}

// NewQueue creates a queue on a fresh device configured by opts. Closing the
// queue closes the device.
func NewQueue(opts ...Option) *Queue {
	q := New(opts...).NewQueue()
	q.owned = true
	return q
}

// Device returns the device q submits to.
func (q *Queue) Device() *Device {
	return q.dev
}

// Compatible reports whether q and other execute on the same device.
func (q *Queue) Compatible(other *Queue) bool {
	return q != nil && other != nil && q.dev == other.dev
}

// Close closes the device if the queue was created by NewQueue; otherwise
// it does nothing.
func (q *Queue) Close() {
	if q.owned {
		q.dev.Close()
	}
}

// Submit records a command group with cgf and schedules it. The command runs
// after every event passed to Handler.DependsOn has resolved successfully;
// if one of them failed, or ctx is done first, the command is skipped and
// the returned event carries the error.
//
// name identifies the task in logs and metrics.
func (q *Queue) Submit(ctx context.Context, name string, cgf func(h *Handler)) *Event {
	d := q.dev
	h := &Handler{}
	cgf(h)

	if h.commands != 1 {
		return failed(name, ErrNoCommand)
	}
	if h.kernel != nil {
		if h.rng.Groups < 0 || h.rng.GroupSize < 1 || h.rng.GroupSize > d.opts.maxGroupSize {
			return failed(name, &ErrInvalidRange{Range: h.rng, MaxGroupSize: d.opts.maxGroupSize})
		}
	}
	if !d.track() {
		return failed(name, ErrClosed)
	}

	d.opts.logger.LogSubmit(ctx, name, h.kind(), len(h.deps))

	ev := newEvent(name)
	go func() {
		defer d.inflight.Done()
		stats := d.run(ctx, name, h)
		d.opts.logger.LogTask(ctx, stats)
		d.opts.observer.RecordTask(stats)
		ev.resolve(stats.Err)
	}()
	return ev
}

// run waits for admission and executes the recorded command.
func (d *Device) run(ctx context.Context, name string, h *Handler) TaskStats {
	stats := TaskStats{Name: name, Kind: h.kind(), Range: h.rng}
	start := time.Now()

	if stats.Err = WaitAll(ctx, h.deps...); stats.Err != nil {
		stats.Queued = time.Since(start)
		return stats
	}
	if d.sem != nil {
		if stats.Err = d.sem.Acquire(ctx, 1); stats.Err != nil {
			stats.Queued = time.Since(start)
			return stats
		}
		defer d.sem.Release(1)
	}
	if h.kernel != nil {
		if stats.Err = d.limiter.Wait(ctx); stats.Err != nil {
			stats.Queued = time.Since(start)
			return stats
		}
	}

	runStart := time.Now()
	stats.Queued = runStart.Sub(start)
	if h.kernel != nil {
		stats.Err = launch(d.pool, name, h.rng, h.locals, h.kernel)
	} else {
		stats.Err = h.host(ctx)
	}
	stats.Run = time.Since(runStart)
	return stats
}

// KeepAlive returns an event that resolves once every event in deps has
// resolved, successfully or not, and keeps args reachable until then. Use it
// to bound the lifetime of memory read or written by those tasks.
func (q *Queue) KeepAlive(deps []*Event, args ...any) *Event {
	d := q.dev
	if !d.track() {
		return failed("keep_alive", ErrClosed)
	}

	ev := newEvent("keep_alive")
	go func() {
		defer d.inflight.Done()
		for _, dep := range deps {
			if dep != nil {
				<-dep.done
			}
		}
		runtime.KeepAlive(args)
		ev.resolve(nil)
	}()
	return ev
}

// Wait blocks until every task submitted so far has resolved, or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.dev.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
