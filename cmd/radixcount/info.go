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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajroetker/radixcount/hwy"
	"github.com/ajroetker/radixcount/hwy/contrib/device"
	"github.com/ajroetker/radixcount/hwy/contrib/radix"
)

func newInfoCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the dispatch level and device limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dev := device.New(device.WithWorkers(root.workers))
			defer dev.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "dispatch:       %s\n", hwy.CurrentName())
			fmt.Fprintf(w, "width:          %d bytes\n", hwy.CurrentWidth())
			fmt.Fprintf(w, "unroll:         %d\n", hwy.UnrollFactor())
			fmt.Fprintf(w, "workers:        %d\n", dev.Workers())
			fmt.Fprintf(w, "max group size: %d\n", dev.MaxGroupSize())
			fmt.Fprintf(w, "digit bits:     %d\n", radix.DefaultDigitBits)
			return nil
		},
	}
}
