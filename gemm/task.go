// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package gemm

// Compile-time tuning constants. These mirror the constants the original C
// benchmark (lockfree_rr.c / lockfree_rr_SIMD.c) hard-codes as #defines.
const (
	// TileSize is the side length of one output tile, and the unit of work
	// the scheduler dispatches.
	TileSize = 64

	// MicroTile is the register-blocked sub-tile processed by one pass of
	// the Tile Kernel's inner loops.
	MicroTile = 8

	// StealChunk is the number of tasks a thief claims from a victim's ring
	// buffer in a single CAS.
	StealChunk = 4

	// SpinLimit is the number of spin-and-steal iterations a worker attempts
	// before falling back to blocking on its own queue.
	SpinLimit = 1024

	// MemAlignment is the byte alignment operand and result buffers should
	// be allocated to (see gemm/align). The kernel does not itself check
	// alignment; misaligned buffers are a caller error.
	MemAlignment = 64

	// NCores is the default worker count of the gemmbench command. Workers
	// are not pinned to specific cores, so it is not used as a pinning
	// modulus.
	NCores = 12
)

func init() {
	if TileSize%MicroTile != 0 {
		panic("gemm: TileSize must be a multiple of MicroTile")
	}
}

// TileTask describes one TILE_SIZE×TILE_SIZE output tile to compute. It is a
// small value type, copied by the ring buffer on push and pop — it never
// owns the memory it points into.
//
// A holds TileSize contiguous rows of length >= NK starting at the tile's
// origin. B is laid out TRANSPOSED: its logical "row j" of length NK is the
// j-th output column, so the kernel can stream both operands with the same
// stride-1 access pattern. C is overwritten (not accumulated into) at the
// tile's origin.
type TileTask struct {
	A, B, C []float32

	// StrideA, StrideB, StrideC are the logical row pitch, in elements, of
	// the three operand matrices.
	StrideA, StrideB, StrideC int

	// NK is the reduction length (the padded K dimension).
	NK int
}
