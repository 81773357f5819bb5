// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package gemm

// KernelFunc computes one TILE_SIZE×TILE_SIZE output tile for task, writing
// (not accumulating) into task.C. It is total over well-formed tasks;
// misaligned pointers or out-of-range strides are undefined behaviour per
// the caller's contract.
type KernelFunc func(task *TileTask)

// kernel is the Tile Kernel variant selected once, at package init, by CPU
// feature detection (see kernel_dispatch_*.go). It is never re-selected per
// task: kernel choice is a compile-time/init-time decision, not per-task
// dispatch.
var kernel KernelFunc = scalarKernel

// ActiveKernel reports which Tile Kernel variant is currently selected.
func ActiveKernel() string {
	return kernelName
}

// scalarKernel is the portable reference implementation: two nested loops
// over the tile's MicroTile×MicroTile sub-tiles, each with a local
// accumulator reduced over the full K axis.
//
// Accumulation order is column-major within the micro-tile over k from 0 to
// NK-1; this need not match a naive ijk triple loop bit-for-bit, but is
// within the reordering IEEE-754 float arithmetic permits.
func scalarKernel(task *TileTask) {
	a, b, c := task.A, task.B, task.C
	sa, sb, sc := task.StrideA, task.StrideB, task.StrideC
	nk := task.NK

	var sum [MicroTile][MicroTile]float32

	for ti := 0; ti < TileSize; ti += MicroTile {
		for tj := 0; tj < TileSize; tj += MicroTile {
			sum = [MicroTile][MicroTile]float32{}

			for k := 0; k < nk; k++ {
				for i := 0; i < MicroTile; i++ {
					av := a[(ti+i)*sa+k]
					for j := 0; j < MicroTile; j++ {
						sum[i][j] += av * b[(tj+j)*sb+k]
					}
				}
			}

			for i := 0; i < MicroTile; i++ {
				row := (ti+i)*sc + tj
				for j := 0; j < MicroTile; j++ {
					c[row+j] = sum[i][j]
				}
			}
		}
	}
}
