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
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gemmflux/gemmflux/hwy"
	"github.com/gemmflux/gemmflux/hwy/contrib/activation"
	"github.com/gemmflux/gemmflux/hwy/contrib/matmul"
	"github.com/gemmflux/gemmflux/hwy/contrib/workerpool"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Tolerances results are guaranteed to meet against a float64 reference:
// |got - want| <= DefaultAbsTol + DefaultRelTol*|want|.
const (
	DefaultRelTol = 1e-3
	DefaultAbsTol = 1e-3
)

// Engine runs multiplies and activations on a persistent worker pool.
// Methods are safe for concurrent use. Multiplies and activations are
// serialized. The vector helpers (Dot, Add, Sub, Mul, Scale) do not use
// the pool and run without the lock.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	params matmul.BlockParams
	pool   *workerpool.Pool
	closed bool
}

// New validates cfg and starts the engine's worker pool.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:    cfg,
		params: cfg.blockParams(),
		pool:   workerpool.New(cfg.Workers),
	}
	klog.V(1).Infof("gemm: engine started with %d workers, dispatch %s (%d bytes), blocks MB=%d KB=%d NB=%d",
		e.pool.NumWorkers(), hwy.CurrentName(), hwy.CurrentWidth(), e.params.MB, e.params.KB, e.params.NB)
	return e, nil
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// BlockParams returns the resolved cache blocking.
func (e *Engine) BlockParams() matmul.BlockParams {
	return e.params
}

// NumWorkers returns the size of the engine's pool.
func (e *Engine) NumWorkers() int {
	return e.pool.NumWorkers()
}

// Close stops the worker pool. Later calls fail with ErrClosed. Calling Close
// more than once is safe.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.pool.Close()
	klog.V(1).Infof("gemm: engine closed")
}

// lock acquires the engine, failing if it is closed.
func (e *Engine) lock() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	return nil
}

// Multiply returns C = A * B for A [M, K] and B [K, N]. C is newly allocated
// and every element is written; with K = 0 it is all zeros.
//
// Errors: ErrShapeMismatch if A.Cols != B.Rows or an operand is malformed,
// ErrAllocationFailure if C cannot be allocated and ErrComputeFault if a
// worker failed.
func (e *Engine) Multiply(a, b Matrix) (Matrix, error) {
	if err := e.lock(); err != nil {
		return Matrix{}, err
	}
	defer e.mu.Unlock()
	return e.multiply(a, b)
}

func (e *Engine) multiply(a, b Matrix) (Matrix, error) {
	if err := a.Validate(); err != nil {
		return Matrix{}, errors.WithMessage(err, "A")
	}
	if err := b.Validate(); err != nil {
		return Matrix{}, errors.WithMessage(err, "B")
	}
	if a.Cols != b.Rows {
		return Matrix{}, errors.Wrapf(ErrShapeMismatch, "cannot multiply [%d, %d] by [%d, %d]", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	m, k, n := a.Rows, a.Cols, b.Cols
	c, err := allocMatrix(m, n, e.cfg.MaxOutputElements)
	if err != nil {
		return Matrix{}, err
	}

	pool := e.pool
	if !matmul.WorthParallel(m, n, k, e.cfg.ParallelThreshold) {
		pool = nil
	}
	start := time.Now()
	err = matmul.ParallelMatMul(pool, a.Data, b.Data, c.Data, m, n, k, matmul.Options{
		Params:      e.params,
		CheckFinite: e.cfg.CheckFinite,
	})
	if err != nil {
		return Matrix{}, &computeFault{err: errors.WithMessagef(err, "multiply [%d, %d] by [%d, %d]", m, k, k, n)}
	}
	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("gemm: multiply [%d, %d] x [%d, %d] in %s, %s output, %s FLOP/s (parallel=%v)",
			m, k, k, n, elapsed, humanize.IBytes(uint64(len(c.Data))*4),
			humanize.SIWithDigits(2*float64(m)*float64(n)*float64(k)/max(elapsed.Seconds(), 1e-9), 2, ""),
			pool != nil)
	}
	return c, nil
}

// MultiplyActivate returns activation(A * B). An unknown activation name is
// reported before anything is computed.
func (e *Engine) MultiplyActivate(a, b Matrix, name string) (Matrix, error) {
	kind, err := activation.ParseKind(name)
	if err != nil {
		return Matrix{}, err
	}
	if err := e.lock(); err != nil {
		return Matrix{}, err
	}
	defer e.mu.Unlock()
	c, err := e.multiply(a, b)
	if err != nil {
		return Matrix{}, err
	}
	if err := activation.ParallelApply(e.pool, kind, c.Data, c.Data, c.Rows, c.Cols); err != nil {
		return Matrix{}, err
	}
	return c, nil
}

// ApplyActivation returns a new matrix holding the named activation applied
// to every element of x.
func (e *Engine) ApplyActivation(x Matrix, name string) (Matrix, error) {
	kind, err := activation.ParseKind(name)
	if err != nil {
		return Matrix{}, err
	}
	if err := x.Validate(); err != nil {
		return Matrix{}, err
	}
	if err := e.lock(); err != nil {
		return Matrix{}, err
	}
	defer e.mu.Unlock()
	out, err := allocMatrix(x.Rows, x.Cols, e.cfg.MaxOutputElements)
	if err != nil {
		return Matrix{}, err
	}
	if err := activation.ParallelApply(e.pool, kind, x.Data, out.Data, x.Rows, x.Cols); err != nil {
		return Matrix{}, err
	}
	return out, nil
}

// ApplyActivationInPlace overwrites x with the named activation of its
// elements. x is left untouched on error.
func (e *Engine) ApplyActivationInPlace(x Matrix, name string) error {
	kind, err := activation.ParseKind(name)
	if err != nil {
		return err
	}
	if err := x.Validate(); err != nil {
		return err
	}
	if err := e.lock(); err != nil {
		return err
	}
	defer e.mu.Unlock()
	return activation.ParallelApply(e.pool, kind, x.Data, x.Data, x.Rows, x.Cols)
}
