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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ajroetker/radixcount/hwy/contrib/keys"
	"github.com/ajroetker/radixcount/hwy/contrib/metrics"
	"github.com/ajroetker/radixcount/hwy/contrib/radix"
)

type report struct {
	DType     string    `json:"dtype"`
	N         int       `json:"n"`
	Segments  int       `json:"segments"`
	BlockSize int       `json:"block_size"`
	Offset    uint32    `json:"offset"`
	Order     string    `json:"order"`
	Buckets   [][]int64 `json:"buckets"`
	Totals    []int64   `json:"totals"`
	ElapsedUS int64     `json:"elapsed_us"`
	Tasks     int64     `json:"tasks"`
	Lanes     int64     `json:"lanes"`
}

func newReport(dt radix.DType, values any, counts []int64, opts *countOptions, order keys.Order, elapsed time.Duration, st metrics.BasicStats) *report {
	buckets := radix.Config{}.Buckets()
	h := radix.NewHistogram(counts, buckets, opts.segments)
	rows := make([][]int64, buckets)
	for b := range rows {
		rows[b] = h.Row(b)
	}
	return &report{
		DType:     dt.String(),
		N:         radix.NewArray(values, nil).Shape[0],
		Segments:  opts.segments,
		BlockSize: opts.blockSize,
		Offset:    opts.offset,
		Order:     order.String(),
		Buckets:   rows,
		Totals:    h.BucketTotals(),
		ElapsedUS: elapsed.Microseconds(),
		Tasks:     st.Tasks,
		Lanes:     st.Lanes,
	}
}

func (r *report) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *report) writeText(w io.Writer) error {
	fmt.Fprintf(w, "dtype=%s n=%d segments=%d block_size=%d offset=%d order=%s\n",
		r.DType, r.N, r.Segments, r.BlockSize, r.Offset, r.Order)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"bucket"}
	for s := range r.Segments {
		header = append(header, fmt.Sprintf("seg%d", s))
	}
	header = append(header, "total")
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for b, row := range r.Buckets {
		cells := []string{fmt.Sprint(b)}
		for _, c := range row {
			cells = append(cells, fmt.Sprint(c))
		}
		cells = append(cells, fmt.Sprint(r.Totals[b]))
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}
