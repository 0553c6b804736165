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

//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	// Check for HWY_NO_SIMD environment variable first
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// cpu.ARM64.HasASIMD is always true for ARMv8+.
	if cpu.ARM64.HasASIMD {
		setLevel(DispatchNEON, 16) // NEON is 128-bit (16 bytes)
	} else {
		setScalarMode()
	}
}

// HasFMA returns true if the CPU supports fused multiply-add, which is part
// of the ARMv8 base architecture.
func HasFMA() bool {
	return cpu.ARM64.HasASIMD
}
