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

import "golang.org/x/time/rate"

// DefaultMaxGroupSize is the largest thread-group a device accepts unless
// WithMaxGroupSize says otherwise.
const DefaultMaxGroupSize = 1024

type options struct {
	workers      int
	maxInFlight  int64
	launchRate   rate.Limit
	launchBurst  int
	maxGroupSize int
	logger       *Logger
	observer     Observer
}

func defaultOptions() options {
	return options{
		launchRate:   rate.Inf,
		maxGroupSize: DefaultMaxGroupSize,
		logger:       NoopLogger(),
		observer:     NoopObserver{},
	}
}

// Option configures a Device.
type Option func(*options)

// WithWorkers sets how many thread-groups may execute at the same time.
// If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxInFlight bounds the number of tasks executing at the same time.
// Tasks beyond the bound wait, after their dependencies, for a free slot.
// If n <= 0, the number is unbounded.
func WithMaxInFlight(n int64) Option {
	return func(o *options) {
		o.maxInFlight = n
	}
}

// WithLaunchRate throttles kernel launches to r per second with the given
// burst. Host tasks are not throttled.
func WithLaunchRate(r rate.Limit, burst int) Option {
	return func(o *options) {
		o.launchRate = r
		o.launchBurst = max(burst, 1)
	}
}

// WithMaxGroupSize sets the largest accepted GroupSize.
func WithMaxGroupSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxGroupSize = n
		}
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithObserver sets the task observer. If nil is passed, NoopObserver is used.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			obs = NoopObserver{}
		}
		o.observer = obs
	}
}
