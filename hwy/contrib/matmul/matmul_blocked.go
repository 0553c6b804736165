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
	"math"

	"github.com/gemmflux/gemmflux/hwy"
	"github.com/gemmflux/gemmflux/hwy/contrib/dot"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// ErrShapeMismatch is returned when a slice is too short for the dimensions
// it is declared with.
var ErrShapeMismatch = errors.New("shape mismatch")

// checkShapes verifies that a, b and c can hold an MxK, KxN and MxN
// row-major matrix respectively.
func checkShapes[T hwy.Floats](a, b, c []T, m, n, k int) error {
	if m < 0 || n < 0 || k < 0 {
		return errors.Wrapf(ErrShapeMismatch, "negative dimension in M=%d N=%d K=%d", m, n, k)
	}
	if productOverflows(m, k) || productOverflows(k, n) || productOverflows(m, n) {
		return errors.Wrapf(ErrShapeMismatch, "M=%d N=%d K=%d overflows int", m, n, k)
	}
	if len(a) < m*k {
		return errors.Wrapf(ErrShapeMismatch, "A has %d elements, %dx%d needs %d", len(a), m, k, m*k)
	}
	if len(b) < k*n {
		return errors.Wrapf(ErrShapeMismatch, "B has %d elements, %dx%d needs %d", len(b), k, n, k*n)
	}
	if len(c) < m*n {
		return errors.Wrapf(ErrShapeMismatch, "C has %d elements, %dx%d needs %d", len(c), m, n, m*n)
	}
	return nil
}

// productOverflows reports whether a*b does not fit in an int, for
// non-negative a and b.
func productOverflows(a, b int) bool {
	return a > 0 && b > math.MaxInt/a
}

// dotKernel returns the dispatched dot product for T, falling back to the
// generic vector kernel for types the dispatch table does not cover.
func dotKernel[T hwy.Floats]() func(a, b []T) T {
	var fn any
	var zero T
	switch any(zero).(type) {
	case float32:
		fn = dot.Dot
	case float64:
		fn = dot.DotFloat64
	}
	if f, ok := fn.(func(a, b []T) T); ok {
		return f
	}
	return dot.BaseDot[T]
}

// BlockedMatMul computes C = A * B on the calling goroutine using the cache
// blocking described by params.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major), fully overwritten
//
// It panics with an error wrapping ErrShapeMismatch or ErrInvalidBlockParams
// on bad input.
func BlockedMatMul[T hwy.Floats](a, b, c []T, m, n, k int, params BlockParams) {
	if err := checkShapes(a, b, c, m, n, k); err != nil {
		exceptions.Panicf("matmul: %+v", err)
	}
	if err := params.Validate(); err != nil {
		exceptions.Panicf("matmul: %+v", err)
	}
	stage := make([]T, params.StagingSize(k, n))
	blockedRows(a, b, c, n, k, 0, m, params, stage, dotKernel[T]())
}

// blockedRows computes rows [rowStart, rowEnd) of C = A * B.
//
// For each block the B tile is staged transposed into stage, then each
// output cell of the block is one dot product of an A row segment with a
// staged column. The first depth block stores its partial sums and later
// depth blocks add theirs, so the accumulation order of a cell depends only
// on params.KB and dotFn.
func blockedRows[T hwy.Floats](a, b, c []T, n, k, rowStart, rowEnd int, params BlockParams, stage []T, dotFn func(a, b []T) T) {
	if k == 0 {
		clear(c[rowStart*n : rowEnd*n])
		return
	}
	for blk := range params.Blocks(rowStart, rowEnd, k, n) {
		packBTransposed(b, n, blk, stage)
		depth := blk.Depth()
		cols := blk.Cols()
		first := blk.First()
		for i := blk.RowStart; i < blk.RowEnd; i++ {
			aRow := a[i*k+blk.DepthStart : i*k+blk.DepthEnd]
			cRow := c[i*n+blk.ColStart : i*n+blk.ColEnd]
			for jj := range cols {
				s := dotFn(aRow, stage[jj*depth:(jj+1)*depth])
				if first {
					cRow[jj] = s
				} else {
					cRow[jj] += s
				}
			}
		}
	}
}
