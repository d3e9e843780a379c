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
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Event is the completion signal of a submitted task. It resolves exactly
// once, with a nil error on success.
type Event struct {
	name string
	done chan struct{}
	err  error
}

func newEvent(name string) *Event {
	return &Event{name: name, done: make(chan struct{})}
}

// resolve must be called exactly once.
func (e *Event) resolve(err error) {
	e.err = err
	close(e.done)
}

// failed returns an event that has already resolved with err.
func failed(name string, err error) *Event {
	e := newEvent(name)
	e.resolve(err)
	return e
}

// Completed returns an event that has already resolved successfully.
func Completed() *Event {
	return failed("completed", nil)
}

// Name returns the name of the task the event belongs to.
func (e *Event) Name() string {
	return e.name
}

// Done returns a channel that is closed once the event has resolved.
func (e *Event) Done() <-chan struct{} {
	return e.done
}

// Err returns the task's error once the event has resolved, nil before.
func (e *Event) Err() error {
	select {
	case <-e.done:
		return e.err
	default:
		return nil
	}
}

// Wait blocks until the event resolves or ctx is done.
func (e *Event) Wait(ctx context.Context) error {
	select {
	case <-e.done:
		return e.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitAll waits for every event. It returns the first failure, with failed
// events wrapped in ErrDependencyFailed, or ctx's error.
func WaitAll(ctx context.Context, events ...*Event) error {
	if len(events) == 0 {
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, ev := range events {
		if ev == nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-ev.done:
				if ev.err != nil {
					return fmt.Errorf("%w: %s: %w", ErrDependencyFailed, ev.name, ev.err)
				}
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	return g.Wait()
}
