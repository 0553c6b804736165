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

// AllClose reports whether every element satisfies
//
//	|got[i] - want[i]| <= atol + rtol*|want[i]|
//
// Slices of different lengths are never close. NaN is never close to
// anything; infinities are close only to an identical infinity.
func AllClose[T hwy.Floats](got, want []T, rtol, atol T) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !IsClose(got[i], want[i], rtol, atol) {
			return false
		}
	}
	return true
}

// IsClose is the single-element form of AllClose.
func IsClose[T hwy.Floats](got, want, rtol, atol T) bool {
	g, w := float64(got), float64(want)
	if stdmath.IsNaN(g) || stdmath.IsNaN(w) {
		return false
	}
	if stdmath.IsInf(g, 0) || stdmath.IsInf(w, 0) {
		return g == w
	}
	return stdmath.Abs(g-w) <= float64(atol)+float64(rtol)*stdmath.Abs(w)
}

// MaxAbsDiff returns the largest |a[i] - b[i]| over the common length,
// and the index where it occurs (-1 if the common length is zero).
func MaxAbsDiff[T hwy.Floats](a, b []T) (diff T, index int) {
	index = -1
	for i := range min(len(a), len(b)) {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if index < 0 || d > diff {
			diff, index = d, i
		}
	}
	return diff, index
}
