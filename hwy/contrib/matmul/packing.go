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

import "github.com/gemmflux/gemmflux/hwy"

// packBTransposed copies the depth x cols tile of the K x N matrix b
// selected by blk into dst, transposed: column j of the tile becomes the
// contiguous run dst[(j-ColStart)*depth : (j-ColStart+1)*depth].
//
// dst must hold at least blk.Depth()*blk.Cols() elements.
func packBTransposed[T hwy.Floats](b []T, n int, blk Block, dst []T) {
	depth := blk.Depth()
	for p := blk.DepthStart; p < blk.DepthEnd; p++ {
		bRow := b[p*n+blk.ColStart : p*n+blk.ColEnd]
		off := p - blk.DepthStart
		for jj, v := range bRow {
			dst[jj*depth+off] = v
		}
	}
}
