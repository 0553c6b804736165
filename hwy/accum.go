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

// GroupSize is the number of vectors in an Accumulators register group.
const GroupSize = 4

// Accumulators is a register group of independent FMA accumulators.
//
// Splitting a reduction over four accumulators breaks the dependency chain
// between consecutive multiply-adds, the same way a hand-unrolled kernel
// keeps four registers live.
type Accumulators[T Floats] struct {
	v0, v1, v2, v3 Vec[T]
}

// NewAccumulators returns a zeroed accumulator group.
func NewAccumulators[T Floats]() Accumulators[T] {
	z := Zero[T]()
	return Accumulators[T]{v0: z, v1: z, v2: z, v3: z}
}

// GroupLanes is the number of elements consumed by one MulAddGroup call.
func GroupLanes[T Floats]() int {
	return GroupSize * MaxLanes[T]()
}

// MulAddGroup accumulates a[i]*b[i] for the first GroupLanes elements of a
// and b, one vector per accumulator.
// Both spans must hold at least GroupLanes elements.
func (acc *Accumulators[T]) MulAddGroup(a, b []T) {
	lanes := acc.v0.n
	acc.v0 = MulAdd(Load(a), Load(b), acc.v0)
	acc.v1 = MulAdd(Load(a[lanes:]), Load(b[lanes:]), acc.v1)
	acc.v2 = MulAdd(Load(a[2*lanes:]), Load(b[2*lanes:]), acc.v2)
	acc.v3 = MulAdd(Load(a[3*lanes:]), Load(b[3*lanes:]), acc.v3)
}

// MulAdd accumulates one vector's worth of a[i]*b[i] into the first accumulator.
// Both spans must hold at least MaxLanes elements.
func (acc *Accumulators[T]) MulAdd(a, b []T) {
	acc.v0 = MulAdd(Load(a), Load(b), acc.v0)
}

// Sum folds the group into one vector and reduces it horizontally.
func (acc *Accumulators[T]) Sum() T {
	return ReduceSum(Add(Add(acc.v0, acc.v1), Add(acc.v2, acc.v3)))
}
