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

package gemm

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// allocate returns a buffer of rows*cols elements, or ErrAllocationFailure
// when the size overflows, exceeds limit (if positive), or the runtime
// refuses the allocation.
func allocate(rows, cols, limit int) (buf []float32, err error) {
	if rows < 0 || cols < 0 {
		return nil, errors.Wrapf(ErrAllocationFailure, "negative size [%d, %d]", rows, cols)
	}
	if rows > 0 && cols > math.MaxInt/rows {
		return nil, errors.Wrapf(ErrAllocationFailure, "[%d, %d] overflows int", rows, cols)
	}
	size := rows * cols
	if limit > 0 && size > limit {
		return nil, errors.Wrapf(ErrAllocationFailure, "[%d, %d] needs %d elements, limit is %d", rows, cols, size, limit)
	}
	exception := exceptions.Try(func() {
		buf = make([]float32, size)
	})
	if exception != nil {
		return nil, errors.Wrapf(ErrAllocationFailure, "[%d, %d]: %v", rows, cols, exception)
	}
	return buf, nil
}

// allocMatrix allocates a rows x cols output. Its contents are unspecified
// to callers: every element is overwritten before it is returned.
func allocMatrix(rows, cols, limit int) (Matrix, error) {
	data, err := allocate(rows, cols, limit)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}, nil
}
