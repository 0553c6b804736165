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

package activation

import (
	"github.com/gemmflux/gemmflux/hwy"
	"github.com/gemmflux/gemmflux/hwy/contrib/workerpool"
	"github.com/pkg/errors"
)

// MinParallelActivationOps is the minimum total element count before
// splitting an activation over the worker pool.
const MinParallelActivationOps = 16384

// ParallelApplyRows applies fn to a [rows, cols] matrix, handing each worker
// a contiguous block of whole rows.
//
// Falls back to sequential execution when pool is nil or the total element
// count is below MinParallelActivationOps.
func ParallelApplyRows[T hwy.Floats](pool *workerpool.Pool, input, output []T, rows, cols int, fn func(input, output []T)) {
	if pool == nil || rows*cols < MinParallelActivationOps {
		fn(input[:rows*cols], output[:rows*cols])
		return
	}

	pool.ParallelFor(rows, func(start, end int) {
		fn(input[start*cols:end*cols], output[start*cols:end*cols])
	})
}

// ParallelApply runs the transform for kind over a [rows, cols] matrix using
// the pool. Both buffers must hold exactly rows*cols elements; output may be
// the input slice.
func ParallelApply[T hwy.Floats](pool *workerpool.Pool, kind Kind, input, output []T, rows, cols int) error {
	fn, err := Func[T](kind)
	if err != nil {
		return err
	}
	if rows < 0 || cols < 0 || len(input) != rows*cols || len(output) != len(input) {
		return errors.Wrapf(ErrLengthMismatch, "activation %s on [%d, %d]: input has %d elements, output %d",
			kind, rows, cols, len(input), len(output))
	}
	ParallelApplyRows(pool, input, output, rows, cols, fn)
	return nil
}
