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

// Package main prints the dispatch level, CPU features and engine
// configuration, and optionally runs a multiply self-check against the
// float64 reference.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gemmflux/gemmflux/gemm"
	"github.com/gemmflux/gemmflux/hwy"
	"github.com/gemmflux/gemmflux/hwy/contrib/matmul"
	"github.com/gemmflux/gemmflux/hwy/contrib/vec"
	"github.com/janpfeifer/must"
	"golang.org/x/sys/cpu"
	"k8s.io/klog/v2"
)

var (
	flagCheck = flag.Bool("check", false, "Run a multiply of size -n and compare it with the float64 reference.")
	flagSize  = flag.Int("n", 512, "Matrix size (M = N = K) for -check.")
	flagReps  = flag.Int("reps", 3, "Number of timed multiplies for -check.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("Dispatch level: %s\n", hwy.CurrentLevel())
	fmt.Printf("Dispatch width: %d bytes (%d float32 lanes)\n", hwy.CurrentWidth(), hwy.MaxLanes[float32]())
	fmt.Printf("HWY_NO_SIMD: %v, HWY_MAX_WIDTH: %d\n", hwy.NoSimdEnv(), hwy.MaxWidthEnv())
	fmt.Printf("FMA: %v\n", hwy.HasFMA())
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}
	fmt.Println()

	eng := must.M1(gemm.New(gemm.ConfigFromEnv()))
	defer eng.Close()
	printConfig(eng)

	if *flagCheck {
		fmt.Println()
		runCheck(eng, *flagSize, *flagReps)
	}
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD:   %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasFP:      %v\n", cpu.ARM64.HasFP)
	fmt.Printf("  HasASIMDHP: %v\n", cpu.ARM64.HasASIMDHP)
	fmt.Printf("  HasSVE:     %v\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasSVE2:    %v\n", cpu.ARM64.HasSVE2)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasSSE2:     %v\n", cpu.X86.HasSSE2)
	fmt.Printf("  HasAVX:      %v\n", cpu.X86.HasAVX)
	fmt.Printf("  HasAVX2:     %v\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasFMA:      %v\n", cpu.X86.HasFMA)
	fmt.Printf("  HasAVX512F:  %v\n", cpu.X86.HasAVX512F)
	fmt.Printf("  HasAVX512DQ: %v\n", cpu.X86.HasAVX512DQ)
}

func printConfig(eng *gemm.Engine) {
	cfg := eng.Config()
	p := eng.BlockParams()
	fmt.Println("=== engine ===")
	fmt.Printf("  Workers:           %d\n", eng.NumWorkers())
	fmt.Printf("  Blocks:            MB=%d KB=%d NB=%d\n", p.MB, p.KB, p.NB)
	fmt.Printf("  Block working set: %s\n", humanize.IBytes(uint64(matmul.WorkingSetBytes[float32](p))))
	fmt.Printf("  ParallelThreshold: %s multiply-adds\n", humanize.Comma(int64(cfg.ParallelThreshold)))
	if cfg.MaxOutputElements > 0 {
		fmt.Printf("  MaxOutput:         %s elements\n", humanize.Comma(int64(cfg.MaxOutputElements)))
	}
	fmt.Printf("  CheckFinite:       %v\n", cfg.CheckFinite)
}

// runCheck multiplies two random n x n matrices, compares the result with
// matmul.MatMulReference and reports the best of reps timings.
func runCheck(eng *gemm.Engine, n, reps int) {
	rng := rand.New(rand.NewPCG(uint64(n), 42))
	a := gemm.NewMatrix(n, n)
	b := gemm.NewMatrix(n, n)
	for i := range a.Data {
		a.Data[i] = rng.Float32()*2 - 1
		b.Data[i] = rng.Float32()*2 - 1
	}

	var c gemm.Matrix
	best := time.Duration(1<<63 - 1)
	for range max(reps, 1) {
		start := time.Now()
		c = must.M1(eng.Multiply(a, b))
		best = min(best, time.Since(start))
	}

	want := gemm.NewMatrix(n, n)
	matmul.MatMulReference(a.Data, b.Data, want.Data, n, n, n)
	diff, idx := vec.MaxAbsDiff(c.Data, want.Data)
	ok := vec.AllClose(c.Data, want.Data, gemm.DefaultRelTol, gemm.DefaultAbsTol)

	flops := 2 * float64(n) * float64(n) * float64(n)
	fmt.Printf("=== check %dx%dx%d ===\n", n, n, n)
	fmt.Printf("  Best time: %s\n", best)
	fmt.Printf("  Rate:      %sFLOP/s\n", humanize.SIWithDigits(flops/best.Seconds(), 2, ""))
	fmt.Printf("  Max diff:  %g at (%d, %d)\n", diff, idx/n, idx%n)
	if !ok {
		fmt.Printf("  FAILED: result outside rtol=%g atol=%g\n", gemm.DefaultRelTol, gemm.DefaultAbsTol)
		os.Exit(1)
	}
	fmt.Println("  OK")
}
