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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ajroetker/radixcount/hwy/contrib/device"
)

// Prometheus exports task metrics as Prometheus collectors.
type Prometheus struct {
	taskLatency *prometheus.HistogramVec
	queueDelay  *prometheus.HistogramVec
	tasks       *prometheus.CounterVec
	lanes       prometheus.Counter
}

// NewPrometheus creates the collectors and registers them with reg. If reg
// is nil, prometheus.DefaultRegisterer is used.
func NewPrometheus(namespace string, reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &Prometheus{
		taskLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_run_seconds",
			Help:      "Execution time of device tasks.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"task", "status"}),
		queueDelay: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_queued_seconds",
			Help:      "Time device tasks spent waiting for dependencies and admission.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"task"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Device tasks finished, by kind and status.",
		}, []string{"task", "kind", "status"}),
		lanes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lanes_launched_total",
			Help:      "Kernel lanes launched.",
		}),
	}

	for _, c := range []prometheus.Collector{p.taskLatency, p.queueDelay, p.tasks, p.lanes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RecordTask implements device.Observer.
func (p *Prometheus) RecordTask(s device.TaskStats) {
	status := "ok"
	if s.Err != nil {
		status = "error"
	}
	p.taskLatency.WithLabelValues(s.Name, status).Observe(s.Run.Seconds())
	p.queueDelay.WithLabelValues(s.Name).Observe(s.Queued.Seconds())
	p.tasks.WithLabelValues(s.Name, string(s.Kind), status).Inc()
	if s.Kind == device.TaskParallel {
		p.lanes.Add(float64(s.Range.Lanes()))
	}
}
