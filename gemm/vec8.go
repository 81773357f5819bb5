// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package gemm

// vec8 is a portable 8-lane float32 vector handle. It plays the role the
// go-highway library's generic Vec[T] plays for its BlockMulAdd kernels
// (Load/Store/Set/FMA as the seam between portable driving code and the hot
// inner loop), but is specialized to a fixed-size array instead of a
// slice-backed generic so that Load/Broadcast never allocate — this
// package's steady-state execution path must be allocation-free, which the
// slice-backed Vec[T] is not.
//
// The lane arithmetic below is plain per-lane Go code; it contains no SIMD
// intrinsics or assembly, and whether it is lowered to vector instructions
// is left to the compiler. This type exists so the kernel's loop structure
// follows the 8-wide broadcast/FMA schedule of the original C SIMD variant
// (lockfree_rr_SIMD.c), which hand-wrote it with _mm256 intrinsics.
type vec8 [MicroTile]float32

// loadVec8 loads MicroTile consecutive elements starting at src[0].
func loadVec8(src []float32) vec8 {
	return vec8{src[0], src[1], src[2], src[3], src[4], src[5], src[6], src[7]}
}

// loadVec8Strided gathers MicroTile elements at positions 0, stride,
// 2*stride, ... from src. This is how the vector kernel pulls one
// transposed-B column group for a fixed k: B's rows are tj..tj+7, so the
// values for a single k are stride sb apart.
func loadVec8Strided(src []float32, stride int) vec8 {
	var v vec8
	for i := range v {
		v[i] = src[i*stride]
	}
	return v
}

// broadcastVec8 returns a vector with every lane set to x.
func broadcastVec8(x float32) vec8 {
	return vec8{x, x, x, x, x, x, x, x}
}

// storeVec8 writes v's lanes to dst[0:8].
func storeVec8(v vec8, dst []float32) {
	dst[0], dst[1], dst[2], dst[3] = v[0], v[1], v[2], v[3]
	dst[4], dst[5], dst[6], dst[7] = v[4], v[5], v[6], v[7]
}

// fma returns a*b + c, lane-wise — the fused multiply-add the vector kernel
// issues once per row per k.
func fma(a, b, c vec8) vec8 {
	var r vec8
	for i := range r {
		r[i] = a[i]*b[i] + c[i]
	}
	return r
}
