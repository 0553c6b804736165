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
	"fmt"
	stdmath "math"
	"runtime"
	"testing"

	"github.com/gemmflux/gemmflux/hwy/contrib/workerpool"
	"github.com/stretchr/testify/require"
)

// newTestPool returns a worker pool sized to the machine.
func newTestPool(tb testing.TB) *workerpool.Pool {
	tb.Helper()
	pool := workerpool.New(runtime.NumCPU())
	tb.Cleanup(pool.Close)
	return pool
}

// randData fills a float32 slice with deterministic pseudo-random values.
func randData(n int) []float32 {
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i)*0.01 - float32(n)*0.005
	}
	return data
}

// randData64 fills a float64 slice with deterministic pseudo-random values.
func randData64(n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)*0.01 - float64(n)*0.005
	}
	return data
}

// assertClose checks that two float32 slices match within tolerance, relative
// to the magnitude of want once it exceeds 1.
func assertClose(t *testing.T, name string, got, want []float32, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length mismatch: got %d, want %d", name, len(got), len(want))
	}
	for i := range got {
		if stdmath.Abs(float64(got[i]-want[i])) > tol*stdmath.Max(1, stdmath.Abs(float64(want[i]))) {
			t.Errorf("%s[%d]: got %v, want %v (diff %v)", name, i, got[i], want[i], got[i]-want[i])
			if i > 5 {
				t.Fatalf("%s: too many mismatches, stopping", name)
			}
		}
	}
}

var testSizes = []struct {
	rows, cols int
}{
	{1, 8},
	{4, 4},
	{16, 256},
	{64, 1024},
	{128, 4096},
	{129, 129},
}

// Chunk boundaries may move an element between the vector body and the
// scalar tail, which round differently by at most an ulp or so.
func TestParallelApply(t *testing.T) {
	pool := newTestPool(t)
	for _, kind := range Kinds() {
		for _, sz := range testSizes {
			t.Run(fmt.Sprintf("%s/%dx%d", kind, sz.rows, sz.cols), func(t *testing.T) {
				n := sz.rows * sz.cols
				input := randData(n)
				want := make([]float32, n)
				got := make([]float32, n)

				require.NoError(t, Apply(kind, input, want))
				require.NoError(t, ParallelApply(pool, kind, input, got, sz.rows, sz.cols))
				assertClose(t, "ParallelApply", got, want, 1e-6)
			})
		}
	}
}

func TestParallelApplyNilPool(t *testing.T) {
	input := randData(64)
	want := make([]float32, 64)
	got := make([]float32, 64)

	require.NoError(t, Apply(GELU, input, want))
	require.NoError(t, ParallelApply[float32](nil, GELU, input, got, 8, 8))
	assertClose(t, "ParallelApply/nil", got, want, 0)
}

func TestParallelApplyInPlace(t *testing.T) {
	pool := newTestPool(t)
	rows, cols := 64, 1024
	data := randData(rows * cols)
	want := make([]float32, len(data))
	require.NoError(t, Apply(SiLU, data, want))

	require.NoError(t, ParallelApply(pool, SiLU, data, data, rows, cols))
	assertClose(t, "ParallelApply/in-place", data, want, 0)
}

func TestParallelApplyErrors(t *testing.T) {
	pool := newTestPool(t)
	data := randData(12)

	require.ErrorIs(t, ParallelApply(pool, ReLU, data, data, 3, 5), ErrLengthMismatch)
	require.ErrorIs(t, ParallelApply(pool, ReLU, data, make([]float32, 11), 3, 4), ErrLengthMismatch)
	require.ErrorIs(t, ParallelApply(pool, Kind(-3), data, data, 3, 4), ErrUnsupportedOperation)
}

func TestParallelApplyFloat64(t *testing.T) {
	pool := newTestPool(t)
	rows, cols := 64, 512
	input := randData64(rows * cols)
	want := make([]float64, len(input))
	got := make([]float64, len(input))

	require.NoError(t, Apply(Tanh, input, want))
	require.NoError(t, ParallelApply(pool, Tanh, input, got, rows, cols))
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("ParallelApply[float64][%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

// ---------------------------------------------------------------------------
// Benchmarks: sequential vs parallel
// ---------------------------------------------------------------------------

var benchSizes = []struct {
	rows, cols int
}{
	{16, 256},
	{64, 1024},
	{256, 4096},
}

func BenchmarkParallelApply(b *testing.B) {
	pool := workerpool.New(runtime.NumCPU())
	defer pool.Close()

	for _, kind := range []Kind{ReLU, GELU, SiLU} {
		for _, sz := range benchSizes {
			n := sz.rows * sz.cols
			input := randData(n)
			output := make([]float32, n)

			b.Run(fmt.Sprintf("%s/Sequential/%dx%d", kind, sz.rows, sz.cols), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_ = Apply(kind, input, output)
				}
			})
			b.Run(fmt.Sprintf("%s/Parallel/%dx%d", kind, sz.rows, sz.cols), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_ = ParallelApply(pool, kind, input, output, sz.rows, sz.cols)
				}
			})
		}
	}
}
