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

// Dot computes the dot product of two float32 slices.
// If the slices have different lengths, the computation uses the minimum length.
var Dot func(a, b []float32) float32 = BaseDot[float32]

// DotFloat64 computes the dot product of two float64 slices.
var DotFloat64 func(a, b []float64) float64 = BaseDot[float64]

func init() {
	if hwy.CurrentLevel() == hwy.DispatchScalar {
		Dot = ScalarDot[float32]
		DotFloat64 = ScalarDot[float64]
	}
}
