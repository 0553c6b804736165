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

package math

import (
	stdmath "math"

	"github.com/gemmflux/gemmflux/hwy"
)

// Exp computes e^x for each element in the vector.
func Exp[T hwy.Floats](v hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(v, func(x T) T {
		return T(stdmath.Exp(float64(x)))
	})
}

// Sigmoid computes 1 / (1 + e^-x) for each element in the vector.
//
// The negative branch is evaluated as e^x / (1 + e^x) so that large negative
// inputs round to 0 instead of producing Inf/Inf.
func Sigmoid[T hwy.Floats](v hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(v, sigmoid[T])
}

func sigmoid[T hwy.Floats](x T) T {
	if x >= 0 {
		return T(1 / (1 + stdmath.Exp(-float64(x))))
	}
	e := stdmath.Exp(float64(x))
	return T(e / (1 + e))
}
