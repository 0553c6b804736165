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

// Package gemm is the entry point of the engine: it validates shapes,
// allocates outputs, drives the blocked parallel multiply over a persistent
// worker pool and applies elementwise activations.
//
// Usage:
//
//	eng, err := gemm.New(gemm.ConfigFromEnv())
//	if err != nil { ... }
//	defer eng.Close()
//
//	a, _ := gemm.FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
//	b, _ := gemm.FromRows([][]float32{{7, 8}, {9, 10}, {11, 12}})
//	c, err := eng.MultiplyActivate(a, b, "relu")
//
// Results agree with a float64 reference within DefaultRelTol and
// DefaultAbsTol. For a fixed configuration they are bit-identical across
// runs and across worker counts.
//
// An Engine runs one call at a time; concurrent callers are serialized.
package gemm
