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
	"sync"

	"github.com/ajroetker/radixcount/hwy/contrib/workerpool"
)

// NDRange describes a launch: Groups thread-groups of GroupSize lanes each.
type NDRange struct {
	Groups    int
	GroupSize int
}

// Lanes returns the total number of lanes in the launch.
func (r NDRange) Lanes() int {
	return r.Groups * r.GroupSize
}

// Item identifies one lane of a running kernel. It is only valid inside the
// kernel invocation it was passed to.
type Item struct {
	local int
	grp   *group
}

// LocalID returns the lane index within its group.
func (it *Item) LocalID() int { return it.local }

// GroupID returns the index of the lane's group.
func (it *Item) GroupID() int { return it.grp.id }

// GlobalID returns GroupID()*LocalRange() + LocalID().
func (it *Item) GlobalID() int { return it.grp.id*it.grp.rng.GroupSize + it.local }

// LocalRange returns the number of lanes in a group.
func (it *Item) LocalRange() int { return it.grp.rng.GroupSize }

// GroupRange returns the number of groups in the launch.
func (it *Item) GroupRange() int { return it.grp.rng.Groups }

// Barrier blocks until every lane of the group has reached it. Writes to
// group-local memory made before the barrier are visible to every lane after
// it. Every lane that is still running must reach the same sequence of
// barriers.
func (it *Item) Barrier() { it.grp.bar.wait() }

// Local is a handle to a group-local scratch buffer registered with
// NewLocal. Each group of a launch gets its own zeroed buffer, released when
// the group finishes.
type Local[T any] struct {
	slot int
	size int
}

// NewLocal registers a group-local buffer of size elements for the kernel
// recorded by h.
func NewLocal[T any](h *Handler, size int) Local[T] {
	slot := len(h.locals)
	h.locals = append(h.locals, func() any { return make([]T, size) })
	return Local[T]{slot: slot, size: size}
}

// Len returns the buffer length in elements.
func (l Local[T]) Len() int { return l.size }

// Slice returns the calling lane's group buffer.
func (l Local[T]) Slice(it *Item) []T {
	return it.grp.locals[l.slot].([]T)
}

// group is the state shared by the lanes of one thread-group.
type group struct {
	id     int
	rng    NDRange
	bar    *barrier
	locals []any
}

// launch runs kernel over rng on pool and returns the first lane panic.
func launch(pool *workerpool.Pool, task string, rng NDRange, allocs []func() any, kernel func(*Item)) error {
	var (
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	batch := max(1, rng.Groups/(pool.NumWorkers()*8))
	pool.RunBatched(rng.Groups, batch, func(start, end int) {
		for g := start; g < end; g++ {
			runGroup(task, g, rng, allocs, kernel, record)
		}
	})
	return firstErr
}

// runGroup runs the lanes of one group concurrently, lane 0 on the calling
// goroutine.
func runGroup(task string, id int, rng NDRange, allocs []func() any, kernel func(*Item), record func(error)) {
	grp := &group{
		id:     id,
		rng:    rng,
		bar:    newBarrier(rng.GroupSize),
		locals: make([]any, len(allocs)),
	}
	for i, alloc := range allocs {
		grp.locals[i] = alloc()
	}

	lane := func(l int) {
		defer func() {
			r := recover()
			if r == nil {
				grp.bar.leave()
				return
			}
			if _, ok := r.(barrierBroken); !ok {
				record(&PanicError{Task: task, Group: id, Lane: l, Value: r})
			}
			grp.bar.breakAll()
		}()
		kernel(&Item{local: l, grp: grp})
	}

	var wg sync.WaitGroup
	wg.Add(rng.GroupSize - 1)
	for l := 1; l < rng.GroupSize; l++ {
		go func() {
			defer wg.Done()
			lane(l)
		}()
	}
	lane(0)
	wg.Wait()
}
