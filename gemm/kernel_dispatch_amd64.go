// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

//go:build amd64

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

	// The vector kernel is selected only where AVX2 + FMA3 are reported,
	// the instruction sets the original C program's lockfree_rr_SIMD.c
	// intrinsics require. The kernel itself is plain Go lane arithmetic.
	if cpu.X86.HasAVX2 && cpu.X86.HasFMA {
		kernel = vectorKernel
		kernelName = "vector"
	}
}
