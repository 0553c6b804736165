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

// Package dot provides the vectorized inner-product kernel.
//
// # Dot Product Functions
//
//   - Dot(a, b []float32) float32 - Single dot product for float32
//   - DotFloat64(a, b []float64) float64 - Single dot product for float64
//   - DotBatch(queries, keys [][]float32) []float32 - Batch dot products
//
// Dot and DotFloat64 are bound at init time to the variant matching
// hwy.CurrentLevel(): BaseDot for the vector levels, ScalarDot when the
// scalar level is selected (HWY_NO_SIMD=1).
//
// # Algorithm
//
// BaseDot keeps a group of four vector accumulators:
//  1. Consume 4*W elements per step, one fused multiply-add per accumulator
//  2. Consume the remaining full vectors with a single accumulator
//  3. Fold the group and reduce it horizontally
//  4. Handle the last 0..W-1 elements with scalar code
//
// The summation order therefore differs from a left-to-right loop, and
// results agree with ScalarDot within floating-point tolerance rather than
// bit for bit. For a fixed dispatch level the result is deterministic.
//
// # Example Usage
//
//	import "github.com/gemmflux/gemmflux/hwy/contrib/dot"
//
//	a := []float32{1, 2, 3, 4, 5, 6, 7, 8}
//	b := []float32{8, 7, 6, 5, 4, 3, 2, 1}
//	result := dot.Dot(a, b)  // 120.0
package dot
