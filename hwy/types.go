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

// Package hwy provides portable fixed-width vector operations with a
// dispatch level chosen once at startup.
//
// A Vec holds up to MaxLanes[T]() elements, where the lane count is the
// detected register width in bytes divided by the element size. Every
// operation is bounded by the caller-supplied slice length, so spans whose
// length is not a multiple of the vector width are handled by the tail
// helpers in tail.go or by a scalar loop in the caller.
//
// Basic usage:
//
//	import "github.com/gemmflux/gemmflux/hwy"
//
//	a := hwy.Load(data1)
//	b := hwy.Load(data2)
//	acc := hwy.MulAdd(a, b, hwy.Zero[float32]())
//	sum := hwy.ReduceSum(acc)
package hwy

// MaxVectorLanes is the largest lane count any dispatch level produces:
// a 64-byte register holding float32 values.
const MaxVectorLanes = 16

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// Vec is a portable vector register value.
//
// The lanes live in a fixed-size array so that vectors are plain values
// and never allocate. Only the first NumLanes() entries are meaningful.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Floats] struct {
	data [MaxVectorLanes]T
	n    int
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Data returns a copy of the active lanes.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	out := make([]T, v.n)
	copy(out, v.data[:v.n])
	return out
}

// Store writes the vector's lanes to dst, bounded by len(dst).
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	n := min(v.n, len(dst))
	copy(dst[:n], v.data[:n])
}

// Mask represents the result of a comparison operation.
// It can be used with IfThenElse, MaskLoad, and MaskStore to perform
// conditional operations.
type Mask[T Floats] struct {
	bits [MaxVectorLanes]bool
	n    int
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return m.n
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits[:m.n] {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits[:m.n] {
		if bit {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.bits[:m.n] {
		if bit {
			count++
		}
	}
	return count
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= m.n {
		return false
	}
	return m.bits[i]
}
