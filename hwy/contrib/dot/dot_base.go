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

package dot

import "github.com/gemmflux/gemmflux/hwy"

// BaseDot computes the dot product (inner product) of two vectors using hwy primitives.
// The result is the sum of element-wise products: sum(a[i] * b[i]).
//
// If the slices have different lengths, the computation uses the minimum length.
// Returns 0 if either slice is empty.
func BaseDot[T hwy.Floats](a, b []T) T {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	lanes := hwy.MaxLanes[T]()
	group := hwy.GroupSize * lanes
	acc := hwy.NewAccumulators[T]()

	var i int
	for i = 0; i+group <= n; i += group {
		acc.MulAddGroup(a[i:], b[i:])
	}
	for ; i+lanes <= n; i += lanes {
		acc.MulAdd(a[i:], b[i:])
	}

	// Reduce vector sum to scalar
	result := acc.Sum()

	// Handle tail elements with scalar code
	for ; i < n; i++ {
		result += a[i] * b[i]
	}
	return result
}
