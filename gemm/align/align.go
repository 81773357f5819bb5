// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

// Package align provides the padding, transposition, and aligned-allocation
// helpers that sit between user-shaped matrices and the tile-aligned buffers
// gemm.MM requires, translated from original_source/lockfree_rr.c's pad_mat,
// pad_t_mat, unpad_mat, and aligned_alloc(MEM_ALIGNMENT, ...) calls.
package align

import "unsafe"

// Up rounds n up to the next multiple of tile (the ALIGN_UP macro in
// lockfree_rr.c).
func Up(n, tile int) int {
	return (n + tile - 1) / tile * tile
}

// AlignedFloat32 allocates a slice of n float32s whose backing array starts
// at an address that is a multiple of align bytes. Go's allocator gives no
// alignment guarantee beyond pointer-size for ordinary slices, so this
// over-allocates and slices into the first aligned offset — the standard
// idiom for SIMD-aligned buffers in Go, replacing the C program's
// aligned_alloc(MEM_ALIGNMENT, ...).
func AlignedFloat32(n, align int) []float32 {
	const elemSize = int(unsafe.Sizeof(float32(0)))
	extra := align / elemSize
	buf := make([]float32, n+extra)

	addr := uintptr(unsafe.Pointer(&buf[0]))
	offset := (align - int(addr%uintptr(align))) % align
	start := offset / elemSize

	return buf[start : start+n]
}

// Pad copies an r×c row-major matrix into a freshly allocated, zero-filled
// padr×padc row-major matrix (pad_mat in lockfree_rr.c).
func Pad(src []float32, r, c, padr, padc int) []float32 {
	dst := AlignedFloat32(padr*padc, 64)
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < r; i++ {
		copy(dst[i*padc:i*padc+c], src[i*c:(i+1)*c])
	}
	return dst
}

// PadTransposed copies an r×c row-major matrix into a freshly allocated,
// zero-filled padc×padr row-major matrix (row pitch padr) holding the
// TRANSPOSE of src — row j of the result is column j of src (pad_t_mat in
// lockfree_rr.c). This
// is the layout gemm.TileTask.B requires.
func PadTransposed(src []float32, r, c, padr, padc int) []float32 {
	dst := AlignedFloat32(padr*padc, 64)
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst[j*padr+i] = src[i*c+j]
		}
	}
	return dst
}

// Unpad copies the top-left r×c region out of a padr×padc padded matrix
// (unpad_mat in lockfree_rr.c).
func Unpad(src []float32, dst []float32, r, c, padr, padc int) {
	for i := 0; i < r; i++ {
		copy(dst[i*c:(i+1)*c], src[i*padc:i*padc+c])
	}
}
