// Copyright 2025 gemmflux Authors
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

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel represents the instruction set the vector width was chosen for.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD: kernels use their scalar variants.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline, 128-bit).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the vector register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// currentName is the human-readable name of the current SIMD level.
var currentName string

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the vector register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return currentName
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, the scalar level is used regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxWidthEnv returns the register width cap in bytes requested with
// HWY_MAX_WIDTH, or 0 if unset or not one of 16, 32 or 64.
func MaxWidthEnv() int {
	val := os.Getenv("HWY_MAX_WIDTH")
	if val == "" {
		return 0
	}
	w, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	switch w {
	case 16, 32, 64:
		return w
	}
	return 0
}

// setLevel installs the level, clamping the width to HWY_MAX_WIDTH.
// Capping below the level's native width falls back to the widest level
// that fits on the same architecture.
func setLevel(level DispatchLevel, width int) {
	if maxWidth := MaxWidthEnv(); maxWidth > 0 && width > maxWidth {
		width = maxWidth
		if level == DispatchAVX512 || level == DispatchAVX2 {
			if width == 32 {
				level = DispatchAVX2
			} else {
				level = DispatchSSE2
			}
		}
	}
	currentLevel = level
	currentWidth = width
	currentName = level.String()
}

func setScalarMode() {
	// Use 16-byte vectors even in scalar mode for consistency.
	setLevel(DispatchScalar, 16)
}

// MaxLanes returns the maximum number of lanes for type T with the current SIMD width.
//
// For example, with AVX2 (256 bits / 32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
func MaxLanes[T Floats]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	return currentWidth / elementSize
}
