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

// Package math provides lane-wise transcendental functions on hwy.Vec
// values, used by the activation layer for its squashing transforms.
//
// These are the portable forms: each lane is evaluated with the standard
// library's float64 routine and rounded back to the element type, which keeps
// every result within one ulp of the float64 answer.
//
//   - Exp(v) - e^x
//   - Tanh(v) - hyperbolic tangent
//   - Erf(v) - error function
//   - Sigmoid(v) - 1 / (1 + e^-x)
package math
