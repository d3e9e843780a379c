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
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	stats []TaskStats
}

func (r *recordingObserver) RecordTask(s TaskStats) {
	r.mu.Lock()
	r.stats = append(r.stats, s)
	r.mu.Unlock()
}

func TestParallelForGroupReduction(t *testing.T) {
	q := NewQueue(WithWorkers(4))
	defer q.Close()

	const groups, size = 8, 64
	out := make([]int, groups)

	ev := q.Submit(context.Background(), "sum", func(h *Handler) {
		scratch := NewLocal[int](h, size)
		h.ParallelFor(NDRange{Groups: groups, GroupSize: size}, func(it *Item) {
			s := scratch.Slice(it)
			s[it.LocalID()] = it.GlobalID()
			it.Barrier()
			for active := size >> 1; active > 0; active >>= 1 {
				if it.LocalID() < active {
					s[it.LocalID()] += s[it.LocalID()+active]
				}
				it.Barrier()
			}
			if it.LocalID() == 0 {
				out[it.GroupID()] = s[0]
			}
		})
	})
	require.NoError(t, ev.Wait(context.Background()))

	for g := range groups {
		lo := g * size
		hi := lo + size - 1
		assert.Equal(t, (lo+hi)*size/2, out[g], "group %d", g)
	}
}

func TestItemGeometry(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	rng := NDRange{Groups: 3, GroupSize: 5}
	seen := make([]atomic.Int32, rng.Lanes())

	ev := q.Submit(context.Background(), "ids", func(h *Handler) {
		h.ParallelFor(rng, func(it *Item) {
			if it.LocalRange() != 5 || it.GroupRange() != 3 {
				panic("bad range")
			}
			seen[it.GroupID()*it.LocalRange()+it.LocalID()].Add(1)
			if it.GlobalID() != it.GroupID()*5+it.LocalID() {
				panic("bad global id")
			}
		})
	})
	require.NoError(t, ev.Wait(context.Background()))
	for i := range seen {
		assert.Equal(t, int32(1), seen[i].Load(), "lane %d", i)
	}
}

func TestLocalBuffersArePerGroup(t *testing.T) {
	q := NewQueue(WithWorkers(2))
	defer q.Close()

	var clobbered atomic.Bool
	ev := q.Submit(context.Background(), "locals", func(h *Handler) {
		a := NewLocal[int64](h, 4)
		b := NewLocal[uint8](h, 1)
		h.ParallelFor(NDRange{Groups: 16, GroupSize: 4}, func(it *Item) {
			s := a.Slice(it)
			if s[it.LocalID()] != 0 {
				clobbered.Store(true)
			}
			s[it.LocalID()] = int64(it.GroupID() + 1)
			it.Barrier()
			for _, v := range s {
				if v != int64(it.GroupID()+1) {
					clobbered.Store(true)
				}
			}
			if len(b.Slice(it)) != b.Len() {
				clobbered.Store(true)
			}
		})
	})
	require.NoError(t, ev.Wait(context.Background()))
	assert.False(t, clobbered.Load())
}

func TestDependencyOrdering(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var order []string
	var mu sync.Mutex
	step := func(name string, delay time.Duration, deps ...*Event) *Event {
		return q.Submit(context.Background(), name, func(h *Handler) {
			h.DependsOn(deps...)
			h.HostTask(func(context.Context) error {
				time.Sleep(delay)
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				return nil
			})
		})
	}

	a := step("a", 20*time.Millisecond)
	b := step("b", 0, a)
	c := step("c", 0, b, nil)
	require.NoError(t, c.Wait(context.Background()))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestDependencyFailurePropagates(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	boom := errors.New("boom")
	a := q.Submit(context.Background(), "a", func(h *Handler) {
		h.HostTask(func(context.Context) error { return boom })
	})

	var ran atomic.Bool
	b := q.Submit(context.Background(), "b", func(h *Handler) {
		h.DependsOn(a)
		h.HostTask(func(context.Context) error {
			ran.Store(true)
			return nil
		})
	})

	err := b.Wait(context.Background())
	require.ErrorIs(t, err, ErrDependencyFailed)
	require.ErrorIs(t, err, boom)
	assert.False(t, ran.Load())
}

func TestCancelBeforeStart(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	gate := make(chan struct{})
	blocker := q.Submit(context.Background(), "blocker", func(h *Handler) {
		h.HostTask(func(context.Context) error {
			<-gate
			return nil
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	var ran atomic.Bool
	ev := q.Submit(ctx, "cancelled", func(h *Handler) {
		h.DependsOn(blocker)
		h.HostTask(func(context.Context) error {
			ran.Store(true)
			return nil
		})
	})
	cancel()

	require.ErrorIs(t, ev.Wait(context.Background()), context.Canceled)
	close(gate)
	require.NoError(t, blocker.Wait(context.Background()))
	assert.False(t, ran.Load())
}

func TestKernelPanic(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	ev := q.Submit(context.Background(), "panics", func(h *Handler) {
		h.ParallelFor(NDRange{Groups: 2, GroupSize: 8}, func(it *Item) {
			if it.GroupID() == 1 && it.LocalID() == 3 {
				panic("lane failure")
			}
			it.Barrier()
			it.Barrier()
		})
	})

	err := ev.Wait(context.Background())
	require.ErrorIs(t, err, ErrKernelPanic)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Group)
	assert.Equal(t, 3, pe.Lane)
	assert.Equal(t, "panics", pe.Task)
}

func TestEarlyReturnLeavesBarrier(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var passed atomic.Int32
	ev := q.Submit(context.Background(), "early", func(h *Handler) {
		h.ParallelFor(NDRange{Groups: 1, GroupSize: 8}, func(it *Item) {
			if it.LocalID() >= 4 {
				return
			}
			it.Barrier()
			passed.Add(1)
		})
	})
	require.NoError(t, ev.Wait(context.Background()))
	assert.Equal(t, int32(4), passed.Load())
}

func TestInvalidCommandGroups(t *testing.T) {
	q := NewQueue(WithMaxGroupSize(32))
	defer q.Close()

	none := q.Submit(context.Background(), "none", func(h *Handler) {})
	require.ErrorIs(t, none.Err(), ErrNoCommand)

	two := q.Submit(context.Background(), "two", func(h *Handler) {
		h.HostTask(func(context.Context) error { return nil })
		h.HostTask(func(context.Context) error { return nil })
	})
	require.ErrorIs(t, two.Err(), ErrNoCommand)

	big := q.Submit(context.Background(), "big", func(h *Handler) {
		h.ParallelFor(NDRange{Groups: 1, GroupSize: 64}, func(*Item) {})
	})
	var ir *ErrInvalidRange
	require.ErrorAs(t, big.Err(), &ir)
	assert.Equal(t, 32, ir.MaxGroupSize)
}

func TestZeroGroups(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	ev := q.Submit(context.Background(), "empty", func(h *Handler) {
		h.ParallelFor(NDRange{Groups: 0, GroupSize: 16}, func(*Item) {
			panic("must not run")
		})
	})
	require.NoError(t, ev.Wait(context.Background()))
}

func TestClosedDevice(t *testing.T) {
	q := NewQueue()
	q.Close()

	ev := q.Submit(context.Background(), "late", func(h *Handler) {
		h.HostTask(func(context.Context) error { return nil })
	})
	require.ErrorIs(t, ev.Err(), ErrClosed)
	require.ErrorIs(t, q.KeepAlive(nil).Err(), ErrClosed)
}

func TestKeepAliveIgnoresFailures(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	bad := q.Submit(context.Background(), "bad", func(h *Handler) {
		h.HostTask(func(context.Context) error { return errors.New("fail") })
	})
	buf := make([]int64, 16)
	keep := q.KeepAlive([]*Event{bad, Completed()}, buf)

	require.NoError(t, keep.Wait(context.Background()))
	require.Error(t, bad.Err())
}

func TestMaxInFlight(t *testing.T) {
	q := NewQueue(WithMaxInFlight(2))
	defer q.Close()

	var running, peak atomic.Int32
	events := make([]*Event, 8)
	for i := range events {
		events[i] = q.Submit(context.Background(), "work", func(h *Handler) {
			h.HostTask(func(context.Context) error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		})
	}
	require.NoError(t, WaitAll(context.Background(), events...))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestObserverAndQueueWait(t *testing.T) {
	obs := &recordingObserver{}
	q := NewQueue(WithObserver(obs), WithLogger(NoopLogger()))
	defer q.Close()

	q.Submit(context.Background(), "k", func(h *Handler) {
		h.ParallelFor(NDRange{Groups: 2, GroupSize: 2}, func(*Item) {})
	})
	q.Submit(context.Background(), "h", func(h *Handler) {
		h.HostTask(func(context.Context) error { return nil })
	})
	require.NoError(t, q.Wait(context.Background()))

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.stats, 2)
	kinds := map[string]TaskKind{}
	for _, s := range obs.stats {
		kinds[s.Name] = s.Kind
		assert.NoError(t, s.Err)
	}
	assert.Equal(t, TaskParallel, kinds["k"])
	assert.Equal(t, TaskHost, kinds["h"])
}

func TestCompatible(t *testing.T) {
	d := New()
	defer d.Close()

	a, b := d.NewQueue(), d.NewQueue()
	other := NewQueue()
	defer other.Close()

	assert.True(t, a.Compatible(b))
	assert.False(t, a.Compatible(other))
	assert.False(t, a.Compatible(nil))
	assert.Same(t, d, a.Device())
}

func TestBarrierGenerations(t *testing.T) {
	const parties, rounds = 6, 50
	b := newBarrier(parties)
	counts := make([]atomic.Int32, rounds)

	var wg sync.WaitGroup
	for range parties {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rounds {
				counts[r].Add(1)
				b.wait()
				if got := counts[r].Load(); got != parties {
					t.Errorf("round %d: %d arrivals after barrier, want %d", r, got, parties)
				}
				b.wait()
			}
		}()
	}
	wg.Wait()
}
