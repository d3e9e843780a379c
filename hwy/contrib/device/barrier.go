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

import "sync"

// barrierBroken is the panic value that unwinds lanes blocked on a barrier
// after another lane of their group panicked.
type barrierBroken struct{}

// barrier is a reusable group barrier. Lanes that return from the kernel
// leave the barrier, so the remaining lanes are not held waiting for them.
type barrier struct {
	mu      sync.Mutex
	cond    sync.Cond
	parties int
	waiting int
	gen     uint64
	broken  bool
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond.L = &b.mu
	return b
}

// wait blocks until every remaining party has called wait for the current
// generation. Memory written before wait is visible to all parties after it.
func (b *barrier) wait() {
	b.mu.Lock()
	if b.broken {
		b.mu.Unlock()
		panic(barrierBroken{})
	}

	b.waiting++
	if b.waiting == b.parties {
		b.trip()
		b.mu.Unlock()
		return
	}

	gen := b.gen
	for gen == b.gen && !b.broken {
		b.cond.Wait()
	}
	broken := gen == b.gen
	b.mu.Unlock()
	if broken {
		panic(barrierBroken{})
	}
}

// leave removes a finished lane from the party count.
func (b *barrier) leave() {
	b.mu.Lock()
	b.parties--
	if b.waiting > 0 && b.waiting == b.parties {
		b.trip()
	}
	b.mu.Unlock()
}

// breakAll releases every waiter with a barrierBroken panic. Later calls to
// wait panic immediately.
func (b *barrier) breakAll() {
	b.mu.Lock()
	b.broken = true
	b.cond.Broadcast()
	b.mu.Unlock()
}

// trip starts a new generation. b.mu must be held.
func (b *barrier) trip() {
	b.waiting = 0
	b.gen++
	b.cond.Broadcast()
}
