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
	"os"
	"strconv"
	"strings"

	"github.com/gemmflux/gemmflux/hwy/contrib/matmul"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvWorkers     = "GEMMFLUX_WORKERS"
	EnvBlock       = "GEMMFLUX_BLOCK"
	EnvMaxOutput   = "GEMMFLUX_MAX_OUTPUT"
	EnvCheckFinite = "GEMMFLUX_CHECK_FINITE"
)

// Config holds the startup configuration of an Engine.
type Config struct {
	// Workers is the pool size. 0 means GOMAXPROCS.
	Workers int

	// Block is the cache blocking. The zero value selects the parameters
	// tuned for the detected dispatch level.
	Block matmul.BlockParams

	// MaxOutputElements caps the size of any output the engine allocates.
	// 0 means no cap beyond what fits in an int.
	MaxOutputElements int

	// CheckFinite rejects inputs holding NaN or infinities. Faults are
	// reported per worker, after the join, as ErrComputeFault.
	CheckFinite bool

	// ParallelThreshold is the minimum M*N*K before a multiply uses the
	// worker pool.
	ParallelThreshold int
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ParallelThreshold: matmul.MinParallelOps,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the GEMMFLUX_*
// environment variables. Values that fail to parse are logged and ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if val := os.Getenv(EnvWorkers); val != "" {
		if w, err := strconv.Atoi(val); err == nil && w >= 0 {
			cfg.Workers = w
		} else {
			klog.Warningf("gemm: ignoring %s=%q: want a non-negative integer", EnvWorkers, val)
		}
	}
	if val := os.Getenv(EnvBlock); val != "" {
		if p, err := ParseBlockParams(val); err == nil {
			cfg.Block = p
		} else {
			klog.Warningf("gemm: ignoring %s=%q: %v", EnvBlock, val, err)
		}
	}
	if val := os.Getenv(EnvMaxOutput); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			cfg.MaxOutputElements = n
		} else {
			klog.Warningf("gemm: ignoring %s=%q: want a non-negative integer", EnvMaxOutput, val)
		}
	}
	if val := os.Getenv(EnvCheckFinite); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.CheckFinite = b
		} else {
			klog.Warningf("gemm: ignoring %s=%q: %v", EnvCheckFinite, val, err)
		}
	}
	return cfg
}

// ParseBlockParams parses "MB,KB,NB", e.g. "64,256,64".
func ParseBlockParams(s string) (matmul.BlockParams, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return matmul.BlockParams{}, errors.Wrapf(ErrInvalidConfig, "block params %q: want MB,KB,NB", s)
	}
	var vals [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return matmul.BlockParams{}, errors.Wrapf(ErrInvalidConfig, "block params %q: %v", s, err)
		}
		vals[i] = v
	}
	p := matmul.BlockParams{MB: vals[0], KB: vals[1], NB: vals[2]}
	if err := p.Validate(); err != nil {
		return matmul.BlockParams{}, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return p, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "Workers=%d", c.Workers)
	}
	if !c.Block.IsZero() {
		if err := c.Block.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%v", err)
		}
	}
	if c.MaxOutputElements < 0 {
		return errors.Wrapf(ErrInvalidConfig, "MaxOutputElements=%d", c.MaxOutputElements)
	}
	if c.ParallelThreshold < 0 {
		return errors.Wrapf(ErrInvalidConfig, "ParallelThreshold=%d", c.ParallelThreshold)
	}
	return nil
}

// blockParams resolves the zero value to the per-level defaults.
func (c Config) blockParams() matmul.BlockParams {
	if c.Block.IsZero() {
		return matmul.DefaultBlockParams()
	}
	return c.Block
}
