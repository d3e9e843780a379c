// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the persistent workers that execute the
// thread-groups of a device launch. A Pool is created once per device queue
// and reused by every kernel submitted to it, so a launch costs a few channel
// sends instead of one goroutine spawn per group.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.Run(segments, func(group int) {
//	    runGroup(group)
//	})
//
// Groups are handed out with an atomic counter, so a slow group (a long
// segment) does not hold back the others.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many launches.
// Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a launch.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. Launches already queued still complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Run executes fn once for every group index in [0, groups) and blocks until
// all of them have returned. At most NumWorkers groups run at the same time;
// fn must not call Run on the same pool.
//
// A closed pool runs the groups sequentially on the caller's goroutine.
func (p *Pool) Run(groups int, fn func(group int)) {
	if groups <= 0 {
		return
	}

	workers := min(p.numWorkers, groups)
	if workers == 1 || p.closed.Load() {
		for g := range groups {
			fn(g)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					g := int(next.Add(1)) - 1
					if g >= groups {
						return
					}
					fn(g)
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// RunBatched is Run with groups handed out batch at a time, which cuts the
// atomic traffic when groups are tiny. fn receives [start, end).
func (p *Pool) RunBatched(groups, batch int, fn func(start, end int)) {
	if groups <= 0 {
		return
	}
	if batch <= 0 {
		batch = 1
	}

	batches := (groups + batch - 1) / batch
	p.Run(batches, func(b int) {
		start := b * batch
		fn(start, min(start+batch, groups))
	})
}
