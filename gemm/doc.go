// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

// Package gemm implements a parallel, cache-blocked single-precision dense
// matrix multiplication engine.
//
// A fixed-size tile GEMM is scheduled onto a pinned worker pool: the driver
// decomposes an M×N×P multiplication into TILE_SIZE×TILE_SIZE tile tasks,
// round-robins them onto per-worker ring buffers, and workers execute tasks
// from their own queue or steal batches from a neighbor when idle.
//
// The package assumes it receives already-padded, tile-aligned operand
// buffers: M, N, and P must all be multiples of [TileSize], B must already be
// transposed (row j of B is logical column j of the mathematical matrix),
// and C must be pre-zeroed. Padding, random fill, and aligned allocation are
// the caller's responsibility — see the sibling gemm/align package.
//
// Basic usage:
//
//	numWorkers := 12
//	pool, err := gemm.NewPool(gemm.Options{
//		NumWorkers:    numWorkers,
//		QueueCapacity: gemm.Capacity(m, p, numWorkers),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Destroy()
//
//	gemm.MM(a, b, c, m, n, p, pool)
package gemm
