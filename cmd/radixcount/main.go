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

// Command radixcount runs the radix counting kernel over a file of keys and
// prints the per-segment digit histogram.
//
// Usage:
//
//	radixcount count --dtype i8 --segments 4 --block-size 256 keys.bin
//	radixcount count --dtype f4 --offset 28 --descending keys.bin.zst
//	radixcount count --arange 32 --segments 4 --block-size 16 --verify
//	radixcount info
//
// Key files hold raw little-endian values. Files ending in .zst or .lz4 are
// decompressed on the fly, and "-" reads standard input.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajroetker/radixcount/hwy/contrib/device"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	logLevel  string
	logFormat string
	workers   int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "radixcount",
		Short:        "Count radix digits of fixed-width keys",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	root.PersistentFlags().IntVar(&opts.workers, "workers", 0, "thread-groups run at once (0 uses GOMAXPROCS)")

	root.AddCommand(newCountCmd(opts), newInfoCmd(opts))
	return root
}

// logger builds the device logger writing to w.
func (o *rootOptions) logger(w io.Writer) (*device.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	switch o.logFormat {
	case "text":
		return device.NewTextLogger(w, level), nil
	case "json":
		return device.NewJSONLogger(w, level), nil
	}
	return nil, fmt.Errorf("--log-format: unknown format %q", o.logFormat)
}
