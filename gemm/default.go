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

	"k8s.io/klog/v2"
)

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide engine, created on first use from
// ConfigFromEnv. An invalid environment configuration is logged and
// replaced by DefaultConfig.
func Default() *Engine {
	defaultOnce.Do(func() {
		eng, err := New(ConfigFromEnv())
		if err != nil {
			klog.Warningf("gemm: %v; using default configuration", err)
			eng, err = New(DefaultConfig())
			if err != nil {
				klog.Fatalf("gemm: default configuration rejected: %+v", err)
			}
		}
		defaultEngine = eng
	})
	return defaultEngine
}

// Multiply calls Default().Multiply.
func Multiply(a, b Matrix) (Matrix, error) {
	return Default().Multiply(a, b)
}

// ApplyActivation calls Default().ApplyActivation.
func ApplyActivation(x Matrix, name string) (Matrix, error) {
	return Default().ApplyActivation(x, name)
}

// Dot calls Default().Dot.
func Dot(u, v []float32) (float32, error) {
	return Default().Dot(u, v)
}
