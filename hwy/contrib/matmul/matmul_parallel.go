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
	"github.com/gemmflux/gemmflux/hwy"
	"github.com/gemmflux/gemmflux/hwy/contrib/workerpool"
	"github.com/pkg/errors"
)

// MinParallelOps is the minimum number of multiply-adds (M*N*K) before
// MatMulAuto dispatches to the worker pool. Below it the fork-join overhead
// outweighs the work.
const MinParallelOps = 64 * 64 * 64

// ErrNonFiniteInput is returned by ParallelMatMul with Options.CheckFinite
// when a row of A holds a NaN or an infinity.
var ErrNonFiniteInput = errors.New("non-finite input")

// Options configures ParallelMatMul.
type Options struct {
	// Params is the cache blocking. The zero value selects
	// DefaultBlockParams.
	Params BlockParams

	// CheckFinite makes each worker verify its rows of A before using them.
	// A worker that finds a non-finite value fails its range without
	// writing it; other ranges still complete.
	CheckFinite bool
}

// rowBlockHeight picks the height of the row blocks distributed over the
// workers: MB for large M, shrunk so that small M still yields one block
// per worker. Results do not depend on it.
func rowBlockHeight(m, numWorkers, mb int) int {
	if numWorkers <= 1 {
		return mb
	}
	return max(1, min(mb, (m+numWorkers-1)/numWorkers))
}

// ParallelMatMul computes C = A * B, splitting the row blocks of C across
// the pool's workers. Each worker owns a disjoint, contiguous range of row
// blocks and its own staging buffer; A and B are shared read-only.
//
// It returns the first error reported by a worker, after every worker has
// finished. Row ranges whose worker succeeded are fully written even then.
// A nil pool runs on the calling goroutine, with the same panic recovery as
// a pool worker.
func ParallelMatMul[T hwy.Floats](pool *workerpool.Pool, a, b, c []T, m, n, k int, opts Options) error {
	if err := checkShapes(a, b, c, m, n, k); err != nil {
		return err
	}
	params := opts.Params
	if params.IsZero() {
		params = DefaultBlockParams()
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if m == 0 || n == 0 {
		return nil
	}

	numWorkers := 1
	if pool != nil {
		numWorkers = pool.NumWorkers()
	}
	rowBlock := rowBlockHeight(m, numWorkers, params.MB)
	numRowBlocks := (m + rowBlock - 1) / rowBlock
	dotFn := dotKernel[T]()

	rowsFn := func(r workerpool.Range) error {
		rowStart := r.Start * rowBlock
		rowEnd := min(r.End*rowBlock, m)
		if opts.CheckFinite {
			for i := rowStart; i < rowEnd; i++ {
				if col := firstNonFinite(a[i*k : (i+1)*k]); col >= 0 {
					return errors.Wrapf(ErrNonFiniteInput, "A[%d][%d]=%v, rows [%d, %d) not computed",
						i, col, a[i*k+col], rowStart, rowEnd)
				}
			}
		}
		stage := make([]T, params.StagingSize(k, n))
		blockedRows(a, b, c, n, k, rowStart, rowEnd, params, stage, dotFn)
		return nil
	}

	if pool == nil {
		return workerpool.RunSequential(numRowBlocks, rowsFn)
	}
	return pool.Run(numRowBlocks, rowsFn)
}

// firstNonFinite returns the index of the first NaN or infinite value in
// row, or -1.
func firstNonFinite[T hwy.Floats](row []T) int {
	lanes := hwy.MaxLanes[T]()
	for i := 0; i < len(row); i += lanes {
		mask := hwy.IsFinite(hwy.Load(row[i:]))
		if mask.AllTrue() {
			continue
		}
		for j := range mask.NumLanes() {
			if !mask.GetBit(j) {
				return i + j
			}
		}
	}
	return -1
}
