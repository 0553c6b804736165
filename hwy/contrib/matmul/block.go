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

import "iter"

// Block describes one rectangular sub-problem of C = A * B: rows
// [RowStart, RowEnd) of A and C, depth [DepthStart, DepthEnd) and columns
// [ColStart, ColEnd) of B and C. It is a view and owns no memory.
type Block struct {
	RowStart, RowEnd     int
	DepthStart, DepthEnd int
	ColStart, ColEnd     int
}

// Rows returns the block height.
func (b Block) Rows() int { return b.RowEnd - b.RowStart }

// Depth returns the block depth, the length of its dot products.
func (b Block) Depth() int { return b.DepthEnd - b.DepthStart }

// Cols returns the block width.
func (b Block) Cols() int { return b.ColEnd - b.ColStart }

// First reports whether this is the first depth block of its row and column
// range: its partial sums overwrite C instead of adding to it.
func (b Block) First() bool { return b.DepthStart == 0 }

// Blocks yields the blocks covering rows [rowStart, rowEnd) of a
// product with depth k and n columns, in the order row block, depth block,
// column block. Bounds are clamped to the true extents, so trailing blocks
// in each dimension may be narrower. Nothing is yielded when k or n is zero.
func (p BlockParams) Blocks(rowStart, rowEnd, k, n int) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for i0 := rowStart; i0 < rowEnd; i0 += p.MB {
			iEnd := min(i0+p.MB, rowEnd)
			for k0 := 0; k0 < k; k0 += p.KB {
				kEnd := min(k0+p.KB, k)
				for j0 := 0; j0 < n; j0 += p.NB {
					jEnd := min(j0+p.NB, n)
					blk := Block{
						RowStart: i0, RowEnd: iEnd,
						DepthStart: k0, DepthEnd: kEnd,
						ColStart: j0, ColEnd: jEnd,
					}
					if !yield(blk) {
						return
					}
				}
			}
		}
	}
}
