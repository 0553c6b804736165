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

package matmul

import (
	"unsafe"

	"github.com/gemmflux/gemmflux/hwy"
	"github.com/pkg/errors"
)

// L2Budget is the per-worker fast-cache budget, in bytes, that the default
// block parameters are sized for.
const L2Budget = 512 << 10

// ErrInvalidBlockParams is returned for non-positive block sizes.
var ErrInvalidBlockParams = errors.New("invalid block parameters")

// BlockParams defines the blocking of the M x K x N iteration space:
//   - MB: rows of A and C per row block
//   - KB: depth per block; the length of each inner dot product
//   - NB: columns of B and C per column block
//
// The working set of one block is the MB x KB slice of A, the staged KB x NB
// tile of B and the MB x NB tile of C.
type BlockParams struct {
	MB int
	KB int
	NB int
}

// BlockParamsAVX512 returns blocking parameters for AVX-512.
// Assumes: 48KB L1d, 1-2MB L2 (Skylake-X and later).
func BlockParamsAVX512() BlockParams {
	return BlockParams{
		MB: 64,  // 64 * 512 * 4 bytes = 128KB A slice
		KB: 512, // 2KB A row, stays in L1 across the column block
		NB: 64,  // 512 * 64 * 4 bytes = 128KB staged B tile
	}
}

// BlockParamsAVX2 returns blocking parameters for AVX2.
// Assumes: 32KB L1d, 256KB+ L2 (Haswell and later).
func BlockParamsAVX2() BlockParams {
	return BlockParams{
		MB: 64,  // 64 * 256 * 4 bytes = 64KB A slice
		KB: 256, // 1KB A row
		NB: 64,  // 256 * 64 * 4 bytes = 64KB staged B tile
	}
}

// BlockParamsNEON returns blocking parameters for ARM NEON.
// Assumes: 64KB L1d, 1MB+ L2 (Cortex-A76, Apple M-series).
func BlockParamsNEON() BlockParams {
	return BlockParams{
		MB: 64,
		KB: 256,
		NB: 96, // 256 * 96 * 4 bytes = 96KB staged B tile
	}
}

// BlockParamsFallback returns conservative blocking parameters for SSE2 and
// the scalar level.
func BlockParamsFallback() BlockParams {
	return BlockParams{
		MB: 64,
		KB: 128,
		NB: 128, // 128 * 128 * 4 bytes = 64KB staged B tile
	}
}

// BlockParamsForLevel returns the parameters tuned for a dispatch level.
func BlockParamsForLevel(level hwy.DispatchLevel) BlockParams {
	switch level {
	case hwy.DispatchAVX512:
		return BlockParamsAVX512()
	case hwy.DispatchAVX2:
		return BlockParamsAVX2()
	case hwy.DispatchNEON:
		return BlockParamsNEON()
	default:
		return BlockParamsFallback()
	}
}

// DefaultBlockParams returns the parameters for the current dispatch level.
func DefaultBlockParams() BlockParams {
	return BlockParamsForLevel(hwy.CurrentLevel())
}

// IsZero reports whether p is the zero value, which callers treat as
// "use DefaultBlockParams".
func (p BlockParams) IsZero() bool {
	return p == BlockParams{}
}

// Validate returns ErrInvalidBlockParams if any block size is not positive.
func (p BlockParams) Validate() error {
	if p.MB <= 0 || p.KB <= 0 || p.NB <= 0 {
		return errors.Wrapf(ErrInvalidBlockParams, "MB=%d KB=%d NB=%d must all be positive", p.MB, p.KB, p.NB)
	}
	return nil
}

// StagingSize returns the number of elements of the staged B tile for a
// K x N right-hand side.
func (p BlockParams) StagingSize(k, n int) int {
	return min(p.KB, k) * min(p.NB, n)
}

// WorkingSetBytes returns the bytes touched by one full-size block for
// element type T.
func WorkingSetBytes[T hwy.Floats](p BlockParams) int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	return (p.MB*p.KB + p.KB*p.NB + p.MB*p.NB) * size
}
