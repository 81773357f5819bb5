// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package align

import (
	"testing"
	"unsafe"
)

func addrOf(buf []float32) uintptr {
	return uintptr(unsafe.Pointer(&buf[0]))
}

func TestUp(t *testing.T) {
	cases := []struct{ n, tile, want int }{
		{0, 64, 0}, {1, 64, 64}, {64, 64, 64}, {65, 64, 128}, {127, 64, 128},
	}
	for _, c := range cases {
		if got := Up(c.n, c.tile); got != c.want {
			t.Errorf("Up(%d, %d) = %d, want %d", c.n, c.tile, got, c.want)
		}
	}
}

func TestAlignedFloat32Alignment(t *testing.T) {
	for _, n := range []int{1, 7, 64, 1000} {
		buf := AlignedFloat32(n, 64)
		if len(buf) != n {
			t.Fatalf("AlignedFloat32(%d, 64) has len %d", n, len(buf))
		}
		addr := addrOf(buf)
		if addr%64 != 0 {
			t.Errorf("AlignedFloat32(%d, 64) address %#x is not 64-byte aligned", n, addr)
		}
	}
}

func TestPadAndUnpad(t *testing.T) {
	const r, c = 3, 5
	const padr, padc = 8, 8
	src := make([]float32, r*c)
	for i := range src {
		src[i] = float32(i + 1)
	}

	padded := Pad(src, r, c, padr, padc)
	if len(padded) != padr*padc {
		t.Fatalf("len(padded) = %d, want %d", len(padded), padr*padc)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if got, want := padded[i*padc+j], src[i*c+j]; got != want {
				t.Errorf("padded[%d,%d] = %v, want %v", i, j, got, want)
			}
		}
	}
	for i := 0; i < r; i++ {
		for j := c; j < padc; j++ {
			if padded[i*padc+j] != 0 {
				t.Errorf("padded[%d,%d] = %v, want 0", i, j, padded[i*padc+j])
			}
		}
	}
	for i := r; i < padr; i++ {
		for j := 0; j < padc; j++ {
			if padded[i*padc+j] != 0 {
				t.Errorf("padded[%d,%d] = %v, want 0", i, j, padded[i*padc+j])
			}
		}
	}

	unpacked := make([]float32, r*c)
	Unpad(padded, unpacked, r, c, padr, padc)
	for i := range src {
		if unpacked[i] != src[i] {
			t.Errorf("unpacked[%d] = %v, want %v", i, unpacked[i], src[i])
		}
	}
}

func TestPadTransposed(t *testing.T) {
	const r, c = 2, 3
	const padr, padc = 8, 8
	// src is r×c: [[1,2,3],[4,5,6]]
	src := []float32{1, 2, 3, 4, 5, 6}

	padded := PadTransposed(src, r, c, padr, padc)
	// row j of result (length r, embedded in padr) should be column j of src.
	want := [][]float32{{1, 4}, {2, 5}, {3, 6}}
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			if got := padded[j*padr+i]; got != want[j][i] {
				t.Errorf("padded[%d,%d] = %v, want %v", j, i, got, want[j][i])
			}
		}
	}
}
