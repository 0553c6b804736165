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
)

// MatMulAuto computes C = A * B, using the pool only when the product is
// large enough to benefit (M*N*K >= MinParallelOps). Small products run on
// the calling goroutine with the same blocking, so the result is identical
// either way.
func MatMulAuto[T hwy.Floats](pool *workerpool.Pool, a, b, c []T, m, n, k int, opts Options) error {
	if !WorthParallel(m, n, k, MinParallelOps) {
		pool = nil
	}
	return ParallelMatMul(pool, a, b, c, m, n, k, opts)
}

// WorthParallel reports whether M*N*K reaches threshold. The product is
// taken in float64 so that large shapes cannot wrap around.
func WorthParallel(m, n, k, threshold int) bool {
	return float64(m)*float64(n)*float64(k) >= float64(threshold)
}
