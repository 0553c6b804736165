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

// ScalarDot computes the dot product with a plain left-to-right loop.
//
// It is the variant used at the scalar dispatch level and the reference
// the vectorized kernel is checked against.
// If the slices have different lengths, the computation uses the minimum length.
func ScalarDot[T hwy.Floats](a, b []T) T {
	n := min(len(a), len(b))
	var sum T
	for i := range n {
		sum += a[i] * b[i]
	}
	return sum
}
