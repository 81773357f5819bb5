// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package gemm

import (
	"os"

	"golang.org/x/sys/cpu"
)

var kernelName = "scalar"

func init() {
	if os.Getenv("GEMM_NO_SIMD") != "" {
		return
	}

	// NEON (ASIMD) is part of the ARMv8-A base architecture, so this check
	// selects the vector kernel on every arm64 CPU. The kernel itself is
	// plain Go lane arithmetic.
	if cpu.ARM64.HasASIMD {
		kernel = vectorKernel
		kernelName = "vector"
	}
}
