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

// Package device is a small host-side model of an accelerator execution
// queue: tasks are submitted against a list of prior events, run once those
// events have resolved, and resolve an Event of their own.
//
// A parallel task launches an ND-range of thread-groups. Every group gets
// its lanes running concurrently, a group-local scratch buffer per
// registered [Local], and a barrier reachable through [Item.Barrier]. Groups
// never communicate with each other.
//
// # Example Usage
//
//	q := device.NewQueue()
//	defer q.Close()
//
//	ev := q.Submit(ctx, "fill", func(h *device.Handler) {
//	    h.DependsOn(prev)
//	    scratch := device.NewLocal[int64](h, 256)
//	    h.ParallelFor(device.NDRange{Groups: 4, GroupSize: 256}, func(it *device.Item) {
//	        s := scratch.Slice(it)
//	        s[it.LocalID()] = int64(it.GlobalID())
//	        it.Barrier()
//	        // ...
//	    })
//	})
//	err := ev.Wait(ctx)
//
// Cancellation applies to whole tasks: a task whose context is cancelled
// before it starts never runs. A running kernel is not interrupted.
package device
