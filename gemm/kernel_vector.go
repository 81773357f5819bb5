// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package gemm

// vectorKernel is the 8-wide FMA micro-tiled Tile Kernel variant. For each k
// it broadcasts the eight
// A-values of the current micro-tile's rows into eight vec8 lanes, loads one
// vec8 of B values for columns tj..tj+7 at that k (recall B is transposed,
// so this is the same stride-1-per-row access pattern as A), and issues
// eight fused multiply-adds, one per row accumulator.
func vectorKernel(task *TileTask) {
	a, b, c := task.A, task.B, task.C
	sa, sb, sc := task.StrideA, task.StrideB, task.StrideC
	nk := task.NK

	var acc [MicroTile]vec8

	for ti := 0; ti < TileSize; ti += MicroTile {
		for tj := 0; tj < TileSize; tj += MicroTile {
			for v := range acc {
				acc[v] = vec8{}
			}

			for k := 0; k < nk; k++ {
				bVec := loadVec8Strided(b[tj*sb+k:], sb)

				for row := 0; row < MicroTile; row++ {
					aVal := a[(ti+row)*sa+k]
					acc[row] = fma(broadcastVec8(aVal), bVec, acc[row])
				}
			}

			for row := 0; row < MicroTile; row++ {
				storeVec8(acc[row], c[(ti+row)*sc+tj:])
			}
		}
	}
}
