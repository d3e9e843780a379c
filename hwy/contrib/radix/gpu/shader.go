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

// Package gpu runs the radix counting kernel as a WebGPU compute shader.
//
// Only int64 keys are supported; each key is bound as a vec2<u32> and
// counted into u32 workgroup memory. The shader source is generated with
// the launch constants baked in, so it is built fresh for every geometry.
//
// The device code needs the webgpu build tag:
//
//	go test -tags webgpu ./hwy/contrib/radix/gpu
package gpu

import (
	"fmt"
	"math"

	"github.com/ajroetker/radixcount/hwy/contrib/keys"
	"github.com/ajroetker/radixcount/hwy/contrib/radix"
)

const (
	// MaxBlockSize is the largest workgroup the shader is generated for.
	MaxBlockSize = 256

	// MaxSharedBytes bounds the workgroup counter buffer.
	MaxSharedBytes = 16 << 10

	// MaxSegments is the dispatch limit of one workgroup dimension.
	MaxSegments = 65535
)

// Params describes one counting launch.
type Params struct {
	N         int
	Segments  int
	BlockSize int
	DigitBits uint32
	Offset    uint32
	Order     keys.Order
}

// Buckets returns the histogram row count.
func (p Params) Buckets() int { return 1 << p.DigitBits }

// Validate reports launches the shader cannot express.
func (p Params) Validate() error {
	if p.DigitBits < 1 || p.DigitBits > radix.MaxDigitBits {
		return fmt.Errorf("gpu: digit bits %d out of range [1, %d]", p.DigitBits, radix.MaxDigitBits)
	}
	if p.BlockSize < 1 || p.BlockSize > MaxBlockSize {
		return fmt.Errorf("gpu: block size %d out of range [1, %d]", p.BlockSize, MaxBlockSize)
	}
	if shared := p.BlockSize * p.Buckets() * 4; shared > MaxSharedBytes {
		return fmt.Errorf("gpu: %d bytes of workgroup counters exceed %d", shared, MaxSharedBytes)
	}
	if p.Segments < 1 || p.Segments > MaxSegments {
		return fmt.Errorf("gpu: segments %d out of range [1, %d]", p.Segments, MaxSegments)
	}
	if p.N < 0 || uint64(p.N) > math.MaxUint32 {
		return fmt.Errorf("gpu: %d values exceed the u32 index range", p.N)
	}
	geo := radix.NewGeometry(p.N, p.BlockSize, p.Segments)
	if span := uint64(p.Segments) * uint64(geo.BlocksPerSegment*p.BlockSize); span > math.MaxUint32 {
		return fmt.Errorf("gpu: %d segments of %d values exceed the u32 index range", p.Segments, geo.BlocksPerSegment*p.BlockSize)
	}
	return nil
}

// digitExpr returns the WGSL expression extracting the digit at off from the
// encoded key k, a vec2<u32> holding the low and high words.
func digitExpr(off, bits uint32) string {
	mask := uint32(1)<<bits - 1
	switch {
	case off >= 64:
		return "0u"
	case off >= 32:
		return fmt.Sprintf("(k.y >> %du) & %du", off-32, mask)
	case off+bits <= 32:
		return fmt.Sprintf("(k.x >> %du) & %du", off, mask)
	default:
		return fmt.Sprintf("((k.x >> %du) | (k.y << %du)) & %du", off, 32-off, mask)
	}
}

// GenerateShader returns the WGSL source for p.
func GenerateShader(p Params) string {
	geo := radix.NewGeometry(p.N, p.BlockSize, p.Segments)
	m := keys.Int64(0, p.Order)
	buckets := p.Buckets()

	return fmt.Sprintf(`
		@group(0) @binding(0) var<storage, read> vals : array<vec2<u32>>;
		@group(0) @binding(1) var<storage, read_write> counts : array<u32>;

		const N: u32 = %du;
		const BLOCK: u32 = %du;
		const BUCKETS: u32 = %du;
		const SEG_SPAN: u32 = %du;
		const STRIDE: u32 = %du;
		const LO_MASK: u32 = %du;
		const HI_MASK: u32 = %du;

		var<workgroup> shared_counts: array<u32, %d>;

		fn digit(v: vec2<u32>) -> u32 {
			let k = vec2<u32>(v.x ^ LO_MASK, v.y ^ HI_MASK);
			return %s;
		}

		@compute @workgroup_size(%d)
		fn main(
			@builtin(workgroup_id) wg_id: vec3<u32>,
			@builtin(local_invocation_id) local_id: vec3<u32>
		) {
			let seg = wg_id.x;
			let lid = local_id.x;
			let seg_start = min(seg * SEG_SPAN, N);
			let seg_end = min(seg_start + SEG_SPAN, N);

			var tally: array<u32, %d>;
			for (var i: u32 = seg_start + lid; i < seg_end; i += BLOCK) {
				let d = digit(vals[i]);
				tally[d] = tally[d] + 1u;
			}
			for (var b: u32 = 0u; b < BUCKETS; b++) {
				shared_counts[lid * BUCKETS + b] = tally[b];
			}
			workgroupBarrier();

			var acc: u32 = shared_counts[lid];
			for (var i: u32 = 1u; i < BUCKETS; i++) {
				acc = acc + shared_counts[BLOCK * i + lid];
			}
			shared_counts[lid] = acc;
			workgroupBarrier();

			for (var active: u32 = BLOCK >> 1u; active >= BUCKETS; active = active >> 1u) {
				if (lid < active) {
					shared_counts[lid] = shared_counts[lid] + shared_counts[active + lid];
				}
				workgroupBarrier();
			}

			if (lid < BUCKETS) {
				counts[STRIDE * lid + seg] = shared_counts[lid];
			}
		}
	`, p.N, p.BlockSize, buckets, geo.BlocksPerSegment*p.BlockSize, p.Segments+1,
		uint32(m), uint32(m>>32),
		p.BlockSize*buckets, digitExpr(p.Offset, p.DigitBits),
		p.BlockSize, buckets)
}
