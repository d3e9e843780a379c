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

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ajroetker/radixcount/hwy/contrib/device"
	"github.com/ajroetker/radixcount/hwy/contrib/keys"
	"github.com/ajroetker/radixcount/hwy/contrib/metrics"
	"github.com/ajroetker/radixcount/hwy/contrib/radix"
)

type countOptions struct {
	dtype       string
	arange      int
	segments    int
	blockSize   int
	offset      uint32
	descending  bool
	format      string
	verify      bool
	metricsFile string
}

func newCountCmd(root *rootOptions) *cobra.Command {
	opts := &countOptions{}
	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "Count the digit at --offset of every key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, root, opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.dtype, "dtype", "i8", "key type, by name (int64) or code (i8)")
	f.IntVar(&opts.arange, "arange", 0, "count 0..N-1 instead of reading a file")
	f.IntVar(&opts.segments, "segments", 4, "thread-groups, one per segment")
	f.IntVar(&opts.blockSize, "block-size", 256, "lanes per thread-group")
	f.Uint32Var(&opts.offset, "offset", 0, "bit offset of the digit")
	f.BoolVar(&opts.descending, "descending", false, "encode keys for descending order")
	f.StringVar(&opts.format, "format", "text", "output format (text, json)")
	f.BoolVar(&opts.verify, "verify", false, "check the histogram against a serial count")
	f.StringVar(&opts.metricsFile, "metrics-textfile", "", "write Prometheus metrics to this file")
	return cmd
}

func runCount(cmd *cobra.Command, root *rootOptions, opts *countOptions, args []string) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("--format: unknown format %q", opts.format)
	}
	dt, err := radix.ParseDType(opts.dtype)
	if err != nil {
		return err
	}
	values, err := loadValues(cmd, opts, dt, args)
	if err != nil {
		return err
	}

	logger, err := root.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	basic := &metrics.BasicObserver{}
	observer := device.Observer(basic)
	var reg *prometheus.Registry
	if opts.metricsFile != "" {
		reg = prometheus.NewRegistry()
		prom, err := metrics.NewPrometheus("radixcount", reg)
		if err != nil {
			return err
		}
		observer = metrics.Multi(basic, prom)
	}

	q := device.NewQueue(
		device.WithWorkers(root.workers),
		device.WithLogger(logger),
		device.WithObserver(observer),
	)
	defer q.Close()

	order := keys.Ascending
	if opts.descending {
		order = keys.Descending
	}

	ctx := cmd.Context()
	// Non-positive segment counts are rejected by SortCountOrder.
	counts := make([]int64, max(0, radix.HistogramLen(radix.Config{}.Buckets(), opts.segments)))
	start := time.Now()
	keepAlive, done, err := radix.SortCountOrder(ctx, radix.NewArray(values, q), radix.NewArray(counts, q),
		opts.segments, opts.blockSize, opts.offset, order, nil)
	if err != nil {
		return err
	}
	if err := done.Wait(ctx); err != nil {
		return err
	}
	elapsed := time.Since(start)
	if err := keepAlive.Wait(ctx); err != nil {
		return err
	}

	if opts.verify {
		want := make([]int64, len(counts))
		if err := radix.CountSerialArray(radix.NewArray(values, nil), radix.NewArray(want, nil),
			opts.segments, opts.blockSize, opts.offset, order); err != nil {
			return err
		}
		if diff := cmp.Diff(want, counts); diff != "" {
			return fmt.Errorf("histogram differs from serial count (-serial +kernel):\n%s", diff)
		}
		logger.InfoContext(ctx, "histogram verified")
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("--metrics-textfile: %w", err)
		}
	}

	rep := newReport(dt, values, counts, opts, order, elapsed, basic.Stats())
	if opts.format == "json" {
		return rep.writeJSON(cmd.OutOrStdout())
	}
	return rep.writeText(cmd.OutOrStdout())
}

func loadValues(cmd *cobra.Command, opts *countOptions, dt radix.DType, args []string) (any, error) {
	if opts.arange > 0 {
		if len(args) > 0 {
			return nil, errors.New("--arange and an input file are exclusive")
		}
		return arange(dt, opts.arange)
	}
	if len(args) == 0 {
		return nil, errors.New("an input file or --arange is required")
	}

	r, err := openInput(args[0], cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return decodeValues(r, dt)
}
