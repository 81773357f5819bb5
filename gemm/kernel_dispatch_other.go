// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package gemm

// Architectures without a known-good vector lowering keep the scalar Tile
// Kernel. kernel already defaults to scalarKernel; nothing to do at init.
var kernelName = "scalar"
