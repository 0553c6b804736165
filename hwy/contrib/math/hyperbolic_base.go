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

// Tanh computes the hyperbolic tangent of each element in the vector.
func Tanh[T hwy.Floats](v hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(v, func(x T) T {
		return T(stdmath.Tanh(float64(x)))
	})
}
