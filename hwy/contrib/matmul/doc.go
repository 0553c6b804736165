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

// Package matmul provides cache-blocked, row-parallel dense matrix
// multiplication built on the dot-product kernel.
//
// Example usage:
//
//	// C = A * B where A is MxK, B is KxN, C is MxN
//	a := make([]float32, M*K)  // row-major
//	b := make([]float32, K*N)  // row-major
//	c := make([]float32, M*N)  // output, row-major, contents ignored
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	err := matmul.ParallelMatMul(pool, a, b, c, M, N, K, matmul.Options{})
//
// # Blocking
//
// The M x K x N problem is decomposed into Block descriptors: row blocks of
// height MB, then depth blocks of size KB, then column blocks of width NB.
// For each block, the KB x NB tile of B is staged transposed in a buffer
// owned by the calling worker, so that every output cell of the block is one
// contiguous dot product of length KB. The first depth block writes C and
// later depth blocks add to it, so C never needs to be zeroed beforehand.
// Edge blocks are clamped to the true extents; nothing is padded.
//
// # Parallelism
//
// ParallelMatMul splits the row blocks into contiguous ranges with
// workerpool.Partition, one per worker. Workers share A and B read-only and
// write disjoint rows of C. Since the accumulation order of a cell depends
// only on KB and the dot kernel, results are bit-identical for any worker
// count or row-block height.
package matmul
