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

// Package activation provides elementwise nonlinear transforms over float
// buffers, selected from a fixed enumerated set.
//
// Each transform is pure and stateless per element, so every kind is
// vectorized with hwy primitives plus a scalar tail. Transforms can write
// into a separate buffer or back into their input.
//
//	kind, err := activation.ParseKind("relu")
//	if err != nil {
//	    return err // wraps activation.ErrUnsupportedOperation
//	}
//	err = activation.Apply(kind, data, data) // in place
package activation

import (
	"strings"

	"github.com/gemmflux/gemmflux/hwy"
	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedOperation is returned for an activation name or kind
	// outside the supported set.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrLengthMismatch is returned when input and output lengths differ.
	ErrLengthMismatch = errors.New("length mismatch")
)

// Slopes used by the parameterized kinds.
const (
	LeakyReLUAlpha = 0.01
	ELUAlpha       = 1.0
)

// Kind enumerates the supported transforms.
type Kind int

const (
	Identity Kind = iota
	ReLU
	ReLU6
	// Clamp is the hard tanh: clamp to [-1, 1].
	Clamp
	LeakyReLU
	Sigmoid
	Tanh
	SiLU
	GELU
	GELUApprox
	ELU

	numKinds
)

var kindNames = [numKinds]string{
	Identity:   "identity",
	ReLU:       "relu",
	ReLU6:      "relu6",
	Clamp:      "clamp",
	LeakyReLU:  "leaky_relu",
	Sigmoid:    "sigmoid",
	Tanh:       "tanh",
	SiLU:       "silu",
	GELU:       "gelu",
	GELUApprox: "gelu_approx",
	ELU:        "elu",
}

// aliases maps alternative names to kinds.
var aliases = map[string]Kind{
	"linear":   Identity,
	"none":     Identity,
	"rectify":  ReLU,
	"hardtanh": Clamp,
	"squash":   Sigmoid,
	"logistic": Sigmoid,
	"swish":    SiLU,
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Kinds returns all supported kinds in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind resolves a canonical name or alias, ignoring case and
// surrounding spaces.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == key {
			return Kind(k), nil
		}
	}
	if k, ok := aliases[key]; ok {
		return k, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedOperation, "activation %q", name)
}

// Func returns the transform for kind, for element type T.
func Func[T hwy.Floats](kind Kind) (func(input, output []T), error) {
	switch kind {
	case Identity:
		return BaseIdentity[T], nil
	case ReLU:
		return BaseReLU[T], nil
	case ReLU6:
		return BaseReLU6[T], nil
	case Clamp:
		return BaseHardTanh[T], nil
	case LeakyReLU:
		return func(input, output []T) { BaseLeakyReLU(input, output, T(LeakyReLUAlpha)) }, nil
	case Sigmoid:
		return BaseSigmoid[T], nil
	case Tanh:
		return BaseTanh[T], nil
	case SiLU:
		return BaseSiLU[T], nil
	case GELU:
		return BaseGELU[T], nil
	case GELUApprox:
		return BaseGELUApprox[T], nil
	case ELU:
		return func(input, output []T) { BaseELU(input, output, T(ELUAlpha)) }, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedOperation, "activation kind %d", int(kind))
}

// Apply runs the transform over input, writing len(input) elements to
// output. output must have the same length as input and may be the same
// slice. Nothing is written when an error is returned.
func Apply[T hwy.Floats](kind Kind, input, output []T) error {
	fn, err := Func[T](kind)
	if err != nil {
		return err
	}
	if len(output) != len(input) {
		return errors.Wrapf(ErrLengthMismatch, "activation %s: input has %d elements, output %d",
			kind, len(input), len(output))
	}
	fn(input, output)
	return nil
}

// ApplyByName resolves name with ParseKind and calls Apply. An unknown name
// fails before either buffer is touched.
func ApplyByName[T hwy.Floats](name string, input, output []T) error {
	kind, err := ParseKind(name)
	if err != nil {
		return err
	}
	return Apply(kind, input, output)
}
