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

package hwy

import "math"

// Load creates a vector by loading data from a slice.
// It loads min(len(src), MaxLanes[T]()) elements.
func Load[T Floats](src []T) Vec[T] {
	n := min(len(src), MaxLanes[T]())
	v := Vec[T]{n: n}
	copy(v.data[:n], src[:n])
	return v
}

// Store writes a vector's data to a slice, bounded by len(dst).
func Store[T Floats](v Vec[T], dst []T) {
	v.Store(dst)
}

// Set creates a vector with all lanes set to the same value.
func Set[T Floats](value T) Vec[T] {
	n := MaxLanes[T]()
	v := Vec[T]{n: n}
	for i := range n {
		v.data[i] = value
	}
	return v
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Floats]() Vec[T] {
	return Vec[T]{n: MaxLanes[T]()}
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	n := min(a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		r.data[i] = a.data[i] + b.data[i]
	}
	return r
}

// Sub performs element-wise subtraction.
func Sub[T Floats](a, b Vec[T]) Vec[T] {
	n := min(a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		r.data[i] = a.data[i] - b.data[i]
	}
	return r
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec[T]) Vec[T] {
	n := min(a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		r.data[i] = a.data[i] * b.data[i]
	}
	return r
}

// Div performs element-wise division.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	n := min(a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		r.data[i] = a.data[i] / b.data[i]
	}
	return r
}

// Neg negates all lanes.
func Neg[T Floats](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := range v.n {
		r.data[i] = -v.data[i]
	}
	return r
}

// Abs computes the absolute value of all lanes.
func Abs[T Floats](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := range v.n {
		x := v.data[i]
		if x < 0 {
			x = -x
		}
		r.data[i] = x
	}
	return r
}

// Min returns the element-wise minimum.
func Min[T Floats](a, b Vec[T]) Vec[T] {
	n := min(a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		if a.data[i] < b.data[i] {
			r.data[i] = a.data[i]
		} else {
			r.data[i] = b.data[i]
		}
	}
	return r
}

// Max returns the element-wise maximum.
// Like x86 MAXPS, a NaN in a yields b.
func Max[T Floats](a, b Vec[T]) Vec[T] {
	n := min(a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		if a.data[i] > b.data[i] {
			r.data[i] = a.data[i]
		} else {
			r.data[i] = b.data[i]
		}
	}
	return r
}

// Sqrt computes the square root of all lanes.
func Sqrt[T Floats](v Vec[T]) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := range v.n {
		r.data[i] = T(math.Sqrt(float64(v.data[i])))
	}
	return r
}

// FMA computes a*b + c per lane.
func FMA[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(a.n, b.n, c.n)
	r := Vec[T]{n: n}
	for i := range n {
		r.data[i] = a.data[i]*b.data[i] + c.data[i]
	}
	return r
}

// MulAdd is an alias for FMA: a*b + c.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	return FMA(a, b, c)
}

// ReduceSum returns the sum of all lanes, added from lane 0 upwards.
func ReduceSum[T Floats](v Vec[T]) T {
	var sum T
	for i := range v.n {
		sum += v.data[i]
	}
	return sum
}

// ReduceMin returns the minimum lane value, or +Inf for an empty vector.
func ReduceMin[T Floats](v Vec[T]) T {
	m := T(math.Inf(1))
	for i := range v.n {
		if v.data[i] < m {
			m = v.data[i]
		}
	}
	return m
}

// ReduceMax returns the maximum lane value, or -Inf for an empty vector.
func ReduceMax[T Floats](v Vec[T]) T {
	m := T(math.Inf(-1))
	for i := range v.n {
		if v.data[i] > m {
			m = v.data[i]
		}
	}
	return m
}

// Greater returns a mask of lanes where a > b.
func Greater[T Floats](a, b Vec[T]) Mask[T] {
	n := min(a.n, b.n)
	m := Mask[T]{n: n}
	for i := range n {
		m.bits[i] = a.data[i] > b.data[i]
	}
	return m
}

// Less returns a mask of lanes where a < b.
func Less[T Floats](a, b Vec[T]) Mask[T] {
	n := min(a.n, b.n)
	m := Mask[T]{n: n}
	for i := range n {
		m.bits[i] = a.data[i] < b.data[i]
	}
	return m
}

// IsFinite returns a mask of lanes that are neither NaN nor infinite.
func IsFinite[T Floats](v Vec[T]) Mask[T] {
	m := Mask[T]{n: v.n}
	for i := range v.n {
		x := float64(v.data[i])
		m.bits[i] = !math.IsNaN(x) && !math.IsInf(x, 0)
	}
	return m
}

// IfThenElse selects a where mask is set, b elsewhere.
func IfThenElse[T Floats](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(mask.n, a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		if mask.bits[i] {
			r.data[i] = a.data[i]
		} else {
			r.data[i] = b.data[i]
		}
	}
	return r
}

// Map applies a scalar function to every lane.
// Used by transcendental functions that have no polynomial kernel.
func Map[T Floats](v Vec[T], fn func(T) T) Vec[T] {
	r := Vec[T]{n: v.n}
	for i := range v.n {
		r.data[i] = fn(v.data[i])
	}
	return r
}

// MaskLoad loads the active lanes of mask from src; inactive lanes are zero.
// Never reads past len(src).
func MaskLoad[T Floats](mask Mask[T], src []T) Vec[T] {
	r := Vec[T]{n: mask.n}
	for i := range min(mask.n, len(src)) {
		if mask.bits[i] {
			r.data[i] = src[i]
		}
	}
	return r
}

// MaskStore writes the active lanes of mask to dst, bounded by len(dst).
func MaskStore[T Floats](mask Mask[T], v Vec[T], dst []T) {
	for i := range min(mask.n, v.n, len(dst)) {
		if mask.bits[i] {
			dst[i] = v.data[i]
		}
	}
}
