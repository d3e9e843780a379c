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

//go:build webgpu

package gpu

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/openfluke/webgpu/wgpu"

	"github.com/ajroetker/radixcount/hwy/contrib/keys"
	"github.com/ajroetker/radixcount/hwy/contrib/radix"
)

// ErrNoAdapter is returned when no WebGPU adapter could be opened.
var ErrNoAdapter = errors.New("gpu: no WebGPU adapter")

// Counter owns a WebGPU device and runs counting launches on it.
type Counter struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
}

// NewCounter opens the high performance adapter, falling back to the
// default one.
func NewCounter() (*Counter, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, fmt.Errorf("%w: CreateInstance returned nil", ErrNoAdapter)
	}

	ad, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{PowerPreference: wgpu.PowerPreferenceHighPerformance})
	if err != nil || ad == nil {
		ad, err = inst.RequestAdapter(nil)
	}
	if err != nil || ad == nil {
		inst.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}

	dev, err := ad.RequestDevice(&wgpu.DeviceDescriptor{})
	if err != nil || dev == nil {
		ad.Release()
		inst.Release()
		return nil, fmt.Errorf("%w: RequestDevice: %v", ErrNoAdapter, err)
	}

	return &Counter{instance: inst, adapter: ad, device: dev, queue: dev.GetQueue()}, nil
}

// Close releases the device.
func (c *Counter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return
	}
	c.device.Release()
	c.adapter.Release()
	c.instance.Release()
	c.device = nil
}

// Count fills counts like radix.Kernel.Submit with DefaultDigitBits digits.
// counts must hold radix.HistogramLen(16, segments) entries; the reserved
// column is left as it is.
func (c *Counter) Count(ctx context.Context, values []int64, counts []int64, segments, blockSize int, radixOffset uint32, order keys.Order) error {
	p := Params{
		N:         len(values),
		Segments:  segments,
		BlockSize: blockSize,
		DigitBits: radix.DefaultDigitBits,
		Offset:    radixOffset,
		Order:     order,
	}
	if err := p.Validate(); err != nil {
		return err
	}
	histLen := radix.HistogramLen(p.Buckets(), segments)
	if len(counts) < histLen {
		return fmt.Errorf("gpu: counts holds %d counters, need %d", len(counts), histLen)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return errors.New("gpu: counter closed")
	}

	out, err := c.run(ctx, p, values, histLen)
	if err != nil {
		return err
	}
	h := radix.NewHistogram(counts, p.Buckets(), segments)
	for b := range p.Buckets() {
		row := h.Row(b)
		for s := range row {
			row[s] = int64(out[radix.HistogramIndex(segments, b, s)])
		}
	}
	return nil
}

func (c *Counter) run(ctx context.Context, p Params, values []int64, histLen int) ([]uint32, error) {
	module, err := c.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "RadixCount_Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: GenerateShader(p)},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: compile: %w", err)
	}
	defer module.Release()

	pipeline, err := c.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:   "RadixCount_Pipe",
		Compute: wgpu.ProgrammableStageDescriptor{Module: module, EntryPoint: "main"},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: pipeline: %w", err)
	}
	defer pipeline.Release()

	// Storage bindings may not be empty.
	input := values
	if len(input) == 0 {
		input = []int64{0}
	}
	valBuf, err := c.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "RadixCount_Vals",
		Contents: wgpu.ToBytes(input),
		Usage:    wgpu.BufferUsageStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: values buffer: %w", err)
	}
	defer valBuf.Release()

	countBuf, err := c.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "RadixCount_Counts",
		Contents: wgpu.ToBytes(make([]uint32, histLen)),
		Usage:    wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: counts buffer: %w", err)
	}
	defer countBuf.Release()

	bindGroup, err := c.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "RadixCount_Bind",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: valBuf, Size: valBuf.GetSize()},
			{Binding: 1, Buffer: countBuf, Size: countBuf.GetSize()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: bind group: %w", err)
	}
	defer bindGroup.Release()

	enc, err := c.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: command encoder: %w", err)
	}
	defer enc.Release()
	pass := enc.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(uint32(p.Segments), 1, 1)
	pass.End()
	cmd, err := enc.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: finish: %w", err)
	}
	defer cmd.Release()
	c.queue.Submit(cmd)

	return c.read(ctx, countBuf, histLen)
}

// read copies size counters out of buf through a mapped staging buffer.
func (c *Counter) read(ctx context.Context, buf *wgpu.Buffer, size int) ([]uint32, error) {
	sizeBytes := uint64(size * 4)
	staging, err := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "RadixCount_Staging",
		Size:  sizeBytes,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: staging buffer: %w", err)
	}
	defer staging.Destroy()

	enc, err := c.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: command encoder: %w", err)
	}
	defer enc.Release()
	enc.CopyBufferToBuffer(buf, 0, staging, 0, sizeBytes)
	cmd, err := enc.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: finish: %w", err)
	}
	defer cmd.Release()
	c.queue.Submit(cmd)

	done := make(chan struct{})
	var mapErr error
	err = staging.MapAsync(wgpu.MapModeRead, 0, sizeBytes, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			mapErr = fmt.Errorf("gpu: map failed: %v", status)
		}
		close(done)
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: MapAsync: %w", err)
	}

	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
Loop:
	for {
		c.device.Poll(false, nil)
		select {
		case <-done:
			break Loop
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-tick.C:
		}
	}
	if mapErr != nil {
		return nil, mapErr
	}

	data := staging.GetMappedRange(0, uint(sizeBytes))
	if data == nil {
		return nil, errors.New("gpu: mapped range nil")
	}
	out := make([]uint32, size)
	copy(out, wgpu.FromBytes[uint32](data))
	staging.Unmap()
	return out, nil
}

var (
	defaultOnce    sync.Once
	defaultCounter *Counter
	defaultErr     error
)

// Count runs c.Count on a process-wide Counter opened on first use.
func Count(ctx context.Context, values []int64, counts []int64, segments, blockSize int, radixOffset uint32, order keys.Order) error {
	defaultOnce.Do(func() {
		defaultCounter, defaultErr = NewCounter()
	})
	if defaultErr != nil {
		return defaultErr
	}
	return defaultCounter.Count(ctx, values, counts, segments, blockSize, radixOffset, order)
}
