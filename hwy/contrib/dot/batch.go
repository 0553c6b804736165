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

// DotBatch computes multiple dot products.
// For each i, computes the dot product of queries[i] and keys[i].
//
// Returns a slice of results with length min(len(queries), len(keys)).
func DotBatch(queries, keys [][]float32) []float32 {
	n := min(len(queries), len(keys))
	results := make([]float32, n)

	for i := range n {
		results[i] = Dot(queries[i], keys[i])
	}
	return results
}

// DotBatchFloat64 computes multiple dot products for float64 slices.
func DotBatchFloat64(queries, keys [][]float64) []float64 {
	n := min(len(queries), len(keys))
	results := make([]float64, n)

	for i := range n {
		results[i] = DotFloat64(queries[i], keys[i])
	}
	return results
}
