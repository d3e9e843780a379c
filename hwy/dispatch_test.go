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

package hwy

import "testing"

func TestDispatch(t *testing.T) {
	level := CurrentLevel()
	width := CurrentWidth()
	name := CurrentName()

	t.Logf("Dispatch level: %v (%s), width: %d bytes, unroll: %d", level, name, width, UnrollFactor())

	if width <= 0 {
		t.Error("CurrentWidth should be positive")
	}

	if name == "" {
		t.Error("CurrentName should not be empty")
	}

	if name != level.String() {
		t.Errorf("CurrentName() = %q, want %q", name, level.String())
	}
}

func TestSetLevelUnroll(t *testing.T) {
	level, width := currentLevel, currentWidth
	defer setLevel(level, width)

	tests := []struct {
		level DispatchLevel
		width int
		want  int
	}{
		{DispatchScalar, 16, 1},
		{DispatchSSE2, 16, 2},
		{DispatchNEON, 16, 2},
		{DispatchAVX2, 32, 4},
		{DispatchSVE, 32, 4},
		{DispatchAVX512, 64, 4},
	}
	for _, tt := range tests {
		setLevel(tt.level, tt.width)
		if got := UnrollFactor(); got != tt.want {
			t.Errorf("setLevel(%v, %d): UnrollFactor() = %d, want %d", tt.level, tt.width, got, tt.want)
		}
		if CurrentName() != tt.level.String() {
			t.Errorf("setLevel(%v, %d): CurrentName() = %q", tt.level, tt.width, CurrentName())
		}
	}
}

func TestMaxLanes(t *testing.T) {
	maxF32 := MaxLanes[float32]()
	maxF64 := MaxLanes[float64]()
	maxU8 := MaxLanes[uint8]()

	t.Logf("MaxLanes: float32=%d, float64=%d, uint8=%d", maxF32, maxF64, maxU8)

	if maxF32 <= 0 {
		t.Error("MaxLanes[float32] should be positive")
	}

	// float64 uses twice as much space, so should have half the lanes
	if maxF64*2 != maxF32 {
		t.Errorf("MaxLanes: expected float64 lanes (%d) to be half of float32 lanes (%d)", maxF64, maxF32)
	}

	if maxU8 != CurrentWidth() {
		t.Errorf("MaxLanes[uint8] = %d, want %d", maxU8, CurrentWidth())
	}
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("HWY_NO_SIMD", tt.val)
		if got := NoSimdEnv(); got != tt.want {
			t.Errorf("NoSimdEnv() with HWY_NO_SIMD=%q = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestDispatchLevelString(t *testing.T) {
	if got := DispatchLevel(99).String(); got != "unknown" {
		t.Errorf("DispatchLevel(99).String() = %q, want %q", got, "unknown")
	}
}
