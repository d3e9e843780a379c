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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/radixcount/hwy/contrib/device"
)

var _ device.Observer = (*BasicObserver)(nil)
var _ device.Observer = (*Prometheus)(nil)

func sampleStats() []device.TaskStats {
	return []device.TaskStats{
		{Name: "count", Kind: device.TaskParallel, Range: device.NDRange{Groups: 4, GroupSize: 16}, Queued: time.Millisecond, Run: 3 * time.Millisecond},
		{Name: "count", Kind: device.TaskParallel, Range: device.NDRange{Groups: 2, GroupSize: 16}, Run: time.Millisecond, Err: errors.New("x")},
		{Name: "keep_alive", Kind: device.TaskHost},
	}
}

func TestBasicObserver(t *testing.T) {
	var b BasicObserver
	for _, s := range sampleStats() {
		b.RecordTask(s)
	}

	st := b.Stats()
	assert.Equal(t, int64(3), st.Tasks)
	assert.Equal(t, int64(1), st.TaskErrors)
	assert.Equal(t, int64(2), st.Kernels)
	assert.Equal(t, int64(96), st.Lanes)
	assert.Equal(t, 4*time.Millisecond/3, st.AvgRun)
}

func TestBasicObserverEmpty(t *testing.T) {
	var b BasicObserver
	assert.Equal(t, BasicStats{}, b.Stats())
}

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus("radix", reg)
	require.NoError(t, err)

	for _, s := range sampleStats() {
		p.RecordTask(s)
	}

	assert.InDelta(t, 96, testutil.ToFloat64(p.lanes), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.tasks.WithLabelValues("count", "parallel", "error")), 0)

	expected := `
# HELP radix_tasks_total Device tasks finished, by kind and status.
# TYPE radix_tasks_total counter
radix_tasks_total{kind="host",status="ok",task="keep_alive"} 1
radix_tasks_total{kind="parallel",status="error",task="count"} 1
radix_tasks_total{kind="parallel",status="ok",task="count"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "radix_tasks_total"))
}

func TestPrometheusDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus("radix", reg)
	require.NoError(t, err)
	_, err = NewPrometheus("radix", reg)
	require.Error(t, err)
}

func TestMulti(t *testing.T) {
	var a, b BasicObserver
	obs := Multi(&a, nil, &b)
	for _, s := range sampleStats() {
		obs.RecordTask(s)
	}
	assert.Equal(t, int64(3), a.Stats().Tasks)
	assert.Equal(t, a.Stats(), b.Stats())
}
