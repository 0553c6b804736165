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
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/gemmflux/gemmflux/hwy"
	"github.com/gemmflux/gemmflux/hwy/contrib/matmul"
	"github.com/gemmflux/gemmflux/hwy/contrib/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	eng, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng
}

func randomMatrix(rng *rand.Rand, rows, cols int) Matrix {
	m := NewMatrix(rows, cols)
	for i := range m.Data {
		m.Data[i] = rng.Float32()*2 - 1
	}
	return m
}

func reference(a, b Matrix) Matrix {
	c := NewMatrix(a.Rows, b.Cols)
	matmul.MatMulReference(a.Data, b.Data, c.Data, a.Rows, b.Cols, a.Cols)
	return c
}

func TestMultiplyExample(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())
	a, err := FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	b, err := FromRows([][]float32{{7, 8}, {9, 10}, {11, 12}})
	require.NoError(t, err)

	c, err := eng.Multiply(a, b)
	require.NoError(t, err)
	assert.Equal(t, Matrix{Rows: 2, Cols: 2, Data: []float32{58, 64, 139, 154}}, c)
}

func TestMultiplyAgreesWithReference(t *testing.T) {
	t.Logf("Dispatch level: %s", hwy.CurrentName())
	eng := newTestEngine(t, Config{Workers: 4})
	rng := rand.New(rand.NewPCG(11, 12))
	for _, sz := range []struct{ m, k, n int }{
		{4, 4, 4}, {16, 16, 16}, {64, 64, 64}, {128, 128, 128},
		{7, 7, 7}, {1, 100, 1}, {65, 129, 33},
	} {
		t.Run(fmt.Sprintf("%dx%dx%d", sz.m, sz.k, sz.n), func(t *testing.T) {
			a := randomMatrix(rng, sz.m, sz.k)
			b := randomMatrix(rng, sz.k, sz.n)
			got, err := eng.Multiply(a, b)
			require.NoError(t, err)
			want := reference(a, b)
			diff, idx := vec.MaxAbsDiff(got.Data, want.Data)
			assert.True(t, vec.AllClose(got.Data, want.Data, DefaultRelTol, DefaultAbsTol), "max diff %g at %d", diff, idx)
		})
	}
}

func TestMultiplyZeroDepth(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())
	c, err := eng.Multiply(Matrix{Rows: 3}, Matrix{Cols: 4})
	require.NoError(t, err)
	assert.Equal(t, NewMatrix(3, 4), c)
}

func TestMultiplyShapeMismatch(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())
	_, err := eng.Multiply(NewMatrix(2, 3), NewMatrix(2, 2))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = eng.Multiply(Matrix{Rows: 2, Cols: 3, Data: make([]float32, 5)}, NewMatrix(3, 2))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestMultiplyOverflowingShapes(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())
	huge := 1 << 62
	a := Matrix{Rows: 4, Cols: huge}
	b := Matrix{Rows: huge, Cols: 4}
	var err error
	require.NotPanics(t, func() { _, err = eng.Multiply(a, b) })
	assert.ErrorIs(t, err, ErrShapeMismatch)

	require.NotPanics(t, func() { _, err = eng.MultiplyActivate(a, b, "relu") })
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestMultiplyWorkerCountInvariance(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	a := randomMatrix(rng, 90, 200)
	b := randomMatrix(rng, 200, 70)

	var results []Matrix
	for _, workers := range []int{1, 2, 5} {
		eng := newTestEngine(t, Config{Workers: workers})
		c, err := eng.Multiply(a, b)
		require.NoError(t, err)
		again, err := eng.Multiply(a, b)
		require.NoError(t, err)
		assert.Equal(t, c, again, "repeat with %d workers", workers)
		results = append(results, c)
	}
	for _, c := range results[1:] {
		assert.True(t, vec.AllClose(c.Data, results[0].Data, DefaultRelTol, DefaultAbsTol))
	}
}

func TestMultiplyAllocationFailure(t *testing.T) {
	eng := newTestEngine(t, Config{MaxOutputElements: 10})
	_, err := eng.Multiply(NewMatrix(4, 1), NewMatrix(1, 4))
	assert.ErrorIs(t, err, ErrAllocationFailure)

	_, err = eng.Multiply(NewMatrix(2, 1), NewMatrix(1, 5))
	assert.NoError(t, err)

	_, err = allocate(math.MaxInt, 2, 0)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	_, err = allocate(-1, 2, 0)
	assert.ErrorIs(t, err, ErrAllocationFailure)
}

func TestMultiplyComputeFault(t *testing.T) {
	eng := newTestEngine(t, Config{Workers: 2, CheckFinite: true})
	a := NewMatrix(4, 3)
	a.Set(3, 1, float32(math.NaN()))
	_, err := eng.Multiply(a, NewMatrix(3, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrComputeFault)
	assert.ErrorIs(t, err, matmul.ErrNonFiniteInput)
	assert.Contains(t, err.Error(), "compute fault")

	// Without the check non-finite values propagate.
	plain := newTestEngine(t, Config{Workers: 2})
	c, err := plain.Multiply(a, NewMatrix(3, 2))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(c.At(3, 0))))
}

func TestMultiplyActivate(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())
	a, _ := FromRows([][]float32{{1, -2}, {-3, 4}})
	b, _ := FromRows([][]float32{{1, 0}, {0, 1}})

	c, err := eng.MultiplyActivate(a, b, "ReLU")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0, 4}, c.Data)

	_, err = eng.MultiplyActivate(a, b, "softmax")
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestApplyActivation(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())
	x, _ := FromRows([][]float32{{-1, 0, 2}})

	y, err := eng.ApplyActivation(x, "relu")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 2}, y.Data)
	assert.Equal(t, []float32{-1, 0, 2}, x.Data, "input must not change")

	y, err = eng.ApplyActivation(x, "sigmoid")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, y.At(0, 1), 1e-6)

	empty, err := eng.ApplyActivation(Matrix{}, "tanh")
	require.NoError(t, err)
	assert.Empty(t, empty.Data)

	_, err = eng.ApplyActivation(x, "nope")
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
	assert.ErrorIs(t, eng.ApplyActivationInPlace(x, "nope"), ErrUnsupportedOperation)
	assert.Equal(t, []float32{-1, 0, 2}, x.Data)

	require.NoError(t, eng.ApplyActivationInPlace(x, "relu6"))
	assert.Equal(t, []float32{0, 0, 2}, x.Data)

	_, err = eng.ApplyActivation(Matrix{Rows: 2, Cols: 2}, "relu")
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestVectorOps(t *testing.T) {
	eng := newTestEngine(t, DefaultConfig())
	u := []float32{1, 2, 3, 4, 5, 6, 7}
	v := []float32{7, 6, 5, 4, 3, 2, 1}

	d, err := eng.Dot(u, v)
	require.NoError(t, err)
	assert.Equal(t, float32(84), d)

	d, err = eng.Dot(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = eng.Dot(u, v[1:])
	assert.ErrorIs(t, err, ErrShapeMismatch)

	sum, err := eng.Add(u, v)
	require.NoError(t, err)
	assert.Equal(t, []float32{8, 8, 8, 8, 8, 8, 8}, sum)

	diff, err := eng.Sub(u, v)
	require.NoError(t, err)
	assert.Equal(t, []float32{-6, -4, -2, 0, 2, 4, 6}, diff)

	prod, err := eng.Mul(u, v)
	require.NoError(t, err)
	assert.Equal(t, []float32{7, 12, 15, 16, 15, 12, 7}, prod)

	scaled, err := eng.Scale(0.5, u)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 1, 1.5, 2, 2.5, 3, 3.5}, scaled)

	_, err = eng.Add(u, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestEngineClose(t *testing.T) {
	eng, err := New(DefaultConfig())
	require.NoError(t, err)
	eng.Close()
	eng.Close()

	_, err = eng.Multiply(NewMatrix(1, 1), NewMatrix(1, 1))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = eng.ApplyActivation(NewMatrix(1, 1), "relu")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEngineConcurrentCalls(t *testing.T) {
	eng := newTestEngine(t, Config{Workers: 3})
	rng := rand.New(rand.NewPCG(15, 16))
	a := randomMatrix(rng, 40, 50)
	b := randomMatrix(rng, 50, 30)
	want, err := eng.Multiply(a, b)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for g := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := eng.Multiply(a, b)
			if err == nil && !assert.ObjectsAreEqual(want, got) {
				err = fmt.Errorf("goroutine %d: result differs", g)
			}
			errs[g] = err
		}()
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestDefaultEngine(t *testing.T) {
	a, _ := FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
	b, _ := FromRows([][]float32{{7, 8}, {9, 10}, {11, 12}})
	c, err := Multiply(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data)

	y, err := ApplyActivation(c, "identity")
	require.NoError(t, err)
	assert.Equal(t, c.Data, y.Data)

	d, err := Dot([]float32{1, 2}, []float32{3, 4})
	require.NoError(t, err)
	assert.Equal(t, float32(11), d)
	assert.Same(t, Default(), Default())
}

func BenchmarkMultiply(b *testing.B) {
	eng, err := New(DefaultConfig())
	require.NoError(b, err)
	defer eng.Close()

	rng := rand.New(rand.NewPCG(17, 18))
	for _, size := range []int{64, 256, 512} {
		x := randomMatrix(rng, size, size)
		y := randomMatrix(rng, size, size)
		flops := 2 * float64(size) * float64(size) * float64(size)
		b.Run(fmt.Sprintf("%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = eng.Multiply(x, y)
			}
			b.ReportMetric(flops*float64(b.N)/b.Elapsed().Seconds()/1e9, "GFLOPS")
		})
	}
}
