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

package gemm

import (
	"github.com/gemmflux/gemmflux/hwy/contrib/dot"
	"github.com/gemmflux/gemmflux/hwy/contrib/vec"
	"github.com/pkg/errors"
)

func checkSameLength(op string, u, v []float32) error {
	if len(u) != len(v) {
		return errors.Wrapf(ErrShapeMismatch, "%s of vectors with %d and %d elements", op, len(u), len(v))
	}
	return nil
}

// Dot returns the inner product of u and v. The dot of two empty vectors
// is 0.
func (e *Engine) Dot(u, v []float32) (float32, error) {
	if err := checkSameLength("dot", u, v); err != nil {
		return 0, err
	}
	return dot.Dot(u, v), nil
}

// Add returns u + v elementwise in a new slice.
func (e *Engine) Add(u, v []float32) ([]float32, error) {
	return e.binary("add", u, v, vec.AddTo[float32])
}

// Sub returns u - v elementwise in a new slice.
func (e *Engine) Sub(u, v []float32) ([]float32, error) {
	return e.binary("sub", u, v, vec.SubTo[float32])
}

// Mul returns u * v elementwise in a new slice.
func (e *Engine) Mul(u, v []float32) ([]float32, error) {
	return e.binary("mul", u, v, vec.MulTo[float32])
}

// Scale returns c * v in a new slice.
func (e *Engine) Scale(c float32, v []float32) ([]float32, error) {
	out, err := allocate(1, len(v), e.cfg.MaxOutputElements)
	if err != nil {
		return nil, err
	}
	vec.ScaleTo(out, c, v)
	return out, nil
}

func (e *Engine) binary(op string, u, v []float32, fn func(dst, a, b []float32)) ([]float32, error) {
	if err := checkSameLength(op, u, v); err != nil {
		return nil, err
	}
	out, err := allocate(1, len(u), e.cfg.MaxOutputElements)
	if err != nil {
		return nil, err
	}
	fn(out, u, v)
	return out, nil
}
