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

// Package vec provides span-level vector arithmetic built on hwy vectors.
//
// Operations come in two variants:
//   - In-place: modify the destination slice directly (e.g., Add)
//   - To: write results to a separate destination slice (e.g., AddTo)
//
// If the slices have different lengths, every operation uses the minimum
// length. Elements past the last full vector go through a scalar tail, so
// any length, including zero, is handled.
package vec

import "github.com/gemmflux/gemmflux/hwy"

// Add performs in-place element-wise addition: dst[i] += s[i].
//
// Example:
//
//	dst := []float32{1, 2, 3, 4}
//	s := []float32{5, 6, 7, 8}
//	Add(dst, s)  // dst is now {6, 8, 10, 12}
func Add[T hwy.Floats](dst, s []T) {
	AddTo(dst, dst, s)
}

// AddTo performs element-wise addition: dst[i] = a[i] + b[i].
func AddTo[T hwy.Floats](dst, a, b []T) {
	n := min(len(dst), len(a), len(b))
	lanes := hwy.MaxLanes[T]()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Add(hwy.Load(a[i:]), hwy.Load(b[i:])), dst[i:])
	}

	// Handle tail elements with scalar code
	for ; i < n; i++ {
		dst[i] = a[i] + b[i]
	}
}

// SubTo performs element-wise subtraction: dst[i] = a[i] - b[i].
func SubTo[T hwy.Floats](dst, a, b []T) {
	n := min(len(dst), len(a), len(b))
	lanes := hwy.MaxLanes[T]()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Sub(hwy.Load(a[i:]), hwy.Load(b[i:])), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = a[i] - b[i]
	}
}

// MulTo performs element-wise multiplication: dst[i] = a[i] * b[i].
func MulTo[T hwy.Floats](dst, a, b []T) {
	n := min(len(dst), len(a), len(b))
	lanes := hwy.MaxLanes[T]()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Mul(hwy.Load(a[i:]), hwy.Load(b[i:])), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

// ScaleTo multiplies each element by a constant: dst[i] = c * s[i].
func ScaleTo[T hwy.Floats](dst []T, c T, s []T) {
	n := min(len(dst), len(s))
	vc := hwy.Set(c)
	lanes := vc.NumLanes()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Mul(vc, hwy.Load(s[i:])), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = c * s[i]
	}
}

// MulConstAddTo performs fused multiply-accumulate: dst[i] += c * x[i].
//
// This is the AXPY operation of BLAS level 1.
func MulConstAddTo[T hwy.Floats](dst []T, c T, x []T) {
	n := min(len(dst), len(x))
	vc := hwy.Set(c)
	lanes := vc.NumLanes()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.MulAdd(vc, hwy.Load(x[i:]), hwy.Load(dst[i:])), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] += c * x[i]
	}
}
