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
	"github.com/gemmflux/gemmflux/hwy/contrib/activation"
	"github.com/gemmflux/gemmflux/hwy/contrib/matmul"
	"github.com/pkg/errors"
)

var (
	// ErrShapeMismatch is returned when operand dimensions are incompatible
	// or a Matrix does not hold Rows*Cols elements. It is reported before
	// any computation.
	ErrShapeMismatch = matmul.ErrShapeMismatch

	// ErrUnsupportedOperation is returned for an unknown activation name,
	// before any buffer is touched.
	ErrUnsupportedOperation = activation.ErrUnsupportedOperation

	// ErrAllocationFailure is returned when an output buffer cannot be
	// obtained.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrComputeFault wraps a failure reported by a worker during a
	// multiply. The worker's own error stays reachable with errors.Is.
	ErrComputeFault = errors.New("compute fault")

	// ErrClosed is returned by calls on a closed Engine.
	ErrClosed = errors.New("engine closed")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// computeFault matches both ErrComputeFault and the worker error it wraps.
type computeFault struct {
	err error
}

func (f *computeFault) Error() string {
	return ErrComputeFault.Error() + ": " + f.err.Error()
}

func (f *computeFault) Unwrap() error { return f.err }

func (f *computeFault) Is(target error) bool { return target == ErrComputeFault }
