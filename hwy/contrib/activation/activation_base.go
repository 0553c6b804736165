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

package activation

import (
	stdmath "math"

	"github.com/gemmflux/gemmflux/hwy"
	"github.com/gemmflux/gemmflux/hwy/contrib/math"
)

// Every Base function processes min(len(input), len(output)) elements: full
// vectors first, then the remaining elements with scalar code. output may be
// the input slice itself.

// BaseIdentity copies input to output.
func BaseIdentity[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	copy(output[:size], input[:size])
}

// BaseReLU computes the Rectified Linear Unit activation: max(0, x).
func BaseReLU[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	vZero := hwy.Zero[T]()
	lanes := vZero.NumLanes()
	ii := 0

	// Process full vectors
	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])
		hwy.Store(hwy.Max(x, vZero), output[ii:])
	}

	// Handle tail elements
	for i := ii; i < size; i++ {
		if input[i] > 0 {
			output[i] = input[i]
		} else {
			output[i] = 0
		}
	}
}

// BaseClampRange clamps every element to [lo, hi].
//
// BaseReLU6 and BaseHardTanh are the fixed-range forms.
func BaseClampRange[T hwy.Floats](input, output []T, lo, hi T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	vLo := hwy.Set(lo)
	vHi := hwy.Set(hi)
	lanes := vLo.NumLanes()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])
		hwy.Store(hwy.Min(hwy.Max(x, vLo), vHi), output[ii:])
	}

	for i := ii; i < size; i++ {
		x := input[i]
		if !(x > lo) {
			x = lo
		}
		if x > hi {
			x = hi
		}
		output[i] = x
	}
}

// BaseReLU6 computes min(max(0, x), 6).
func BaseReLU6[T hwy.Floats](input, output []T) {
	BaseClampRange(input, output, 0, 6)
}

// BaseHardTanh clamps to [-1, 1].
func BaseHardTanh[T hwy.Floats](input, output []T) {
	BaseClampRange(input, output, -1, 1)
}

// BaseLeakyReLU computes the Leaky ReLU activation with a configurable slope.
//
// LeakyReLU(x) = x if x > 0, else alpha * x
//
// alpha must be in [0, 1].
func BaseLeakyReLU[T hwy.Floats](input, output []T, alpha T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	vAlpha := hwy.Set(alpha)
	lanes := vAlpha.NumLanes()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])

		// max(x, alpha*x) gives x for positive, alpha*x for negative
		hwy.Store(hwy.Max(x, hwy.Mul(x, vAlpha)), output[ii:])
	}

	for i := ii; i < size; i++ {
		if input[i] > 0 {
			output[i] = input[i]
		} else {
			output[i] = alpha * input[i]
		}
	}
}

// BaseSigmoid computes the logistic function 1 / (1 + e^-x).
func BaseSigmoid[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	lanes := hwy.MaxLanes[T]()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		hwy.Store(math.Sigmoid(hwy.Load(input[ii:])), output[ii:])
	}

	// Handle tail elements with scalar math
	for i := ii; i < size; i++ {
		output[i] = T(sigmoid(float64(input[i])))
	}
}

// BaseTanh computes the hyperbolic tangent activation function.
func BaseTanh[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	lanes := hwy.MaxLanes[T]()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		hwy.Store(math.Tanh(hwy.Load(input[ii:])), output[ii:])
	}

	for i := ii; i < size; i++ {
		output[i] = T(stdmath.Tanh(float64(input[i])))
	}
}

// BaseSiLU computes the Sigmoid Linear Unit (also known as Swish) activation.
//
// SiLU(x) = x * sigmoid(x)
func BaseSiLU[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	lanes := hwy.MaxLanes[T]()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])
		hwy.Store(hwy.Mul(x, math.Sigmoid(x)), output[ii:])
	}

	for i := ii; i < size; i++ {
		x := float64(input[i])
		output[i] = T(x * sigmoid(x))
	}
}

// BaseGELU computes the Gaussian Error Linear Unit activation function.
//
// GELU(x) = x * 0.5 * (1 + erf(x / sqrt(2)))
//
// For a faster approximation, see BaseGELUApprox.
func BaseGELU[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	// Constants: 0.5 and 1/sqrt(2) = 0.7071067811865476
	vHalf := hwy.Set[T](0.5)
	vOne := hwy.Set[T](1.0)
	vInvSqrt2 := hwy.Set[T](0.7071067811865476)

	lanes := vOne.NumLanes()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])

		erfX := math.Erf(hwy.Mul(x, vInvSqrt2))
		halfOnePlusErf := hwy.Mul(vHalf, hwy.Add(vOne, erfX))

		hwy.Store(hwy.Mul(x, halfOnePlusErf), output[ii:])
	}

	for i := ii; i < size; i++ {
		x := float64(input[i])
		output[i] = T(x * 0.5 * (1.0 + stdmath.Erf(x*0.7071067811865476)))
	}
}

// BaseGELUApprox computes a fast approximation of GELU.
//
// Uses the sigmoid approximation: GELU(x) = x * sigmoid(1.702 * x)
func BaseGELUApprox[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	vCoeff := hwy.Set[T](1.702)
	lanes := vCoeff.NumLanes()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])
		sigmoidX := math.Sigmoid(hwy.Mul(x, vCoeff))
		hwy.Store(hwy.Mul(x, sigmoidX), output[ii:])
	}

	for i := ii; i < size; i++ {
		x := float64(input[i])
		output[i] = T(x * sigmoid(1.702*x))
	}
}

// BaseELU computes the Exponential Linear Unit activation.
//
// ELU(x) = x if x > 0, else alpha * (exp(x) - 1)
func BaseELU[T hwy.Floats](input, output []T, alpha T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	vZero := hwy.Zero[T]()
	vOne := hwy.Set[T](1.0)
	vAlpha := hwy.Set(alpha)
	lanes := vOne.NumLanes()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])

		negPart := hwy.Mul(vAlpha, hwy.Sub(math.Exp(x), vOne))
		isPositive := hwy.Greater(x, vZero)
		hwy.Store(hwy.IfThenElse(isPositive, x, negPart), output[ii:])
	}

	for i := ii; i < size; i++ {
		if input[i] > 0 {
			output[i] = input[i]
		} else {
			x := float64(input[i])
			output[i] = T(float64(alpha) * (stdmath.Exp(x) - 1.0))
		}
	}
}

// sigmoid is the scalar logistic function, stable for large |x|.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + stdmath.Exp(-x))
	}
	e := stdmath.Exp(x)
	return e / (1 + e)
}
