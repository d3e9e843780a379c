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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajroetker/radixcount/hwy"
	"github.com/ajroetker/radixcount/hwy/contrib/radix"
)

// multiCloser closes the decompressor before the file under it.
type multiCloser struct {
	io.Reader
	closers []func() error
}

func (m *multiCloser) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// openInput opens path, or stdin for "-", and undoes .zst or .lz4
// compression by extension.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(bufio.NewReader(stdin)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &multiCloser{Reader: dec, closers: []func() error{
			func() error { dec.Close(); return nil },
			f.Close,
		}}, nil
	case ".lz4":
		return &multiCloser{Reader: lz4.NewReader(f), closers: []func() error{f.Close}}, nil
	}
	return &multiCloser{Reader: bufio.NewReader(f), closers: []func() error{f.Close}}, nil
}

// decodeValues reads little-endian values of dt until EOF.
func decodeValues(r io.Reader, dt radix.DType) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	size := dt.Size()
	if size == 0 {
		return nil, fmt.Errorf("unsupported dtype %s", dt)
	}
	if len(b)%size != 0 {
		return nil, fmt.Errorf("input is %d bytes, not a multiple of the %s size %d", len(b), dt, size)
	}

	switch dt {
	case radix.DTypeBool:
		return decodeAs[bool](b, size)
	case radix.DTypeInt8:
		return decodeAs[int8](b, size)
	case radix.DTypeInt16:
		return decodeAs[int16](b, size)
	case radix.DTypeInt32:
		return decodeAs[int32](b, size)
	case radix.DTypeInt64:
		return decodeAs[int64](b, size)
	case radix.DTypeUint8:
		return decodeAs[uint8](b, size)
	case radix.DTypeUint16:
		return decodeAs[uint16](b, size)
	case radix.DTypeUint32:
		return decodeAs[uint32](b, size)
	case radix.DTypeUint64:
		return decodeAs[uint64](b, size)
	case radix.DTypeFloat32:
		return decodeAs[float32](b, size)
	case radix.DTypeFloat64:
		return decodeAs[float64](b, size)
	}
	return nil, fmt.Errorf("unsupported dtype %s", dt)
}

func decodeAs[T hwy.Keys](b []byte, size int) (any, error) {
	out := make([]T, len(b)/size)
	if _, err := binary.Decode(b, binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}

// arange returns 0, 1, ..., n-1 as dt, wrapping for narrow types. Bool
// alternates false, true.
func arange(dt radix.DType, n int) (any, error) {
	switch dt {
	case radix.DTypeBool:
		out := make([]bool, n)
		for i := range out {
			out[i] = i%2 == 1
		}
		return out, nil
	case radix.DTypeInt8:
		return arangeAs[int8](n), nil
	case radix.DTypeInt16:
		return arangeAs[int16](n), nil
	case radix.DTypeInt32:
		return arangeAs[int32](n), nil
	case radix.DTypeInt64:
		return arangeAs[int64](n), nil
	case radix.DTypeUint8:
		return arangeAs[uint8](n), nil
	case radix.DTypeUint16:
		return arangeAs[uint16](n), nil
	case radix.DTypeUint32:
		return arangeAs[uint32](n), nil
	case radix.DTypeUint64:
		return arangeAs[uint64](n), nil
	case radix.DTypeFloat32:
		return arangeAs[float32](n), nil
	case radix.DTypeFloat64:
		return arangeAs[float64](n), nil
	}
	return nil, fmt.Errorf("unsupported dtype %s", dt)
}

func arangeAs[T hwy.Lanes](n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(i)
	}
	return out
}
