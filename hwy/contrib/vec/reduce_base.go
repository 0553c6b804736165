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

package vec

import (
	stdmath "math"

	"github.com/gemmflux/gemmflux/hwy"
)

// Sum computes the sum of all elements in a slice.
//
// Returns 0 if the slice is empty.
func Sum[T hwy.Floats](v []T) T {
	sum := hwy.Zero[T]()
	lanes := sum.NumLanes()

	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		sum = hwy.Add(sum, hwy.Load(v[i:]))
	}

	// Reduce vector sum to scalar
	result := hwy.ReduceSum(sum)

	// Handle tail elements with scalar code
	for ; i < len(v); i++ {
		result += v[i]
	}
	return result
}

// MapSum applies a unary transform to every element and returns the sum of
// the transformed values. vf transforms full vectors; sf must compute the
// same function on a single element and is used for the tail.
//
// Example:
//
//	// Sum of absolute values.
//	l1 := MapSum(data, hwy.Abs[float32], func(x float32) float32 { return max(x, -x) })
func MapSum[T hwy.Floats](v []T, vf func(hwy.Vec[T]) hwy.Vec[T], sf func(T) T) T {
	sum := hwy.Zero[T]()
	lanes := sum.NumLanes()

	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		sum = hwy.Add(sum, vf(hwy.Load(v[i:])))
	}
	result := hwy.ReduceSum(sum)
	for ; i < len(v); i++ {
		result += sf(v[i])
	}
	return result
}

// SumSquares returns the sum of v[i]*v[i].
func SumSquares[T hwy.Floats](v []T) T {
	acc := hwy.Zero[T]()
	lanes := acc.NumLanes()

	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		x := hwy.Load(v[i:])
		acc = hwy.MulAdd(x, x, acc)
	}
	result := hwy.ReduceSum(acc)
	for ; i < len(v); i++ {
		result += v[i] * v[i]
	}
	return result
}

// Norm returns the Euclidean (L2) norm of v.
func Norm[T hwy.Floats](v []T) T {
	return T(stdmath.Sqrt(float64(SumSquares(v))))
}

// Max returns the maximum value in a slice.
//
// Panics if the slice is empty.
func Max[T hwy.Floats](v []T) T {
	if len(v) == 0 {
		panic("vec: Max called on empty slice")
	}
	lanes := hwy.MaxLanes[T]()
	result := v[0]
	var i int
	if len(v) >= lanes {
		m := hwy.Load(v)
		for i = lanes; i+lanes <= len(v); i += lanes {
			m = hwy.Max(m, hwy.Load(v[i:]))
		}
		result = hwy.ReduceMax(m)
	}
	for ; i < len(v); i++ {
		result = max(result, v[i])
	}
	return result
}
