// Copyright 2026 TonyLinX. SPDX-License-Identifier: Apache-2.0

package gemm

import (
	"math"
	"math/rand"
	"testing"
)

func referenceMM(a, b []float32, m, n, p int) []float32 {
	c := make([]float32, m*p)
	for i := 0; i < m; i++ {
		for j := 0; j < p; j++ {
			var sum float32
			for k := 0; k < n; k++ {
				sum += a[i*n+k] * b[k*p+j]
			}
			c[i*p+j] = sum
		}
	}
	return c
}

// bTransposed returns b (logically n×p, row-major) laid out p×n so row j is
// output column j, the layout MM's B operand requires.
func bTransposed(b []float32, n, p int) []float32 {
	t := make([]float32, p*n)
	for k := 0; k < n; k++ {
		for j := 0; j < p; j++ {
			t[j*n+k] = b[k*p+j]
		}
	}
	return t
}

func runMM(t *testing.T, a, b []float32, m, n, p, numWorkers int) []float32 {
	t.Helper()
	pool, err := NewPool(Options{
		NumWorkers:    numWorkers,
		QueueCapacity: Capacity(m, p, numWorkers),
	})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Destroy()

	c := make([]float32, m*p)
	MM(a, bTransposed(b, n, p), c, m, n, p, pool)
	return c
}

func TestMMIdentity64(t *testing.T) {
	const m, n, p = 64, 64, 64
	a := make([]float32, m*n)
	for i := 0; i < m; i++ {
		a[i*n+i] = 1
	}
	b := make([]float32, n*p)
	for i := range b {
		b[i] = float32(i)
	}

	c := runMM(t, a, b, m, n, p, 4)
	for i := range c {
		if c[i] != b[i] {
			t.Fatalf("C[%d] = %v, want %v", i, c[i], b[i])
		}
	}
}

func TestMMAllOnes128(t *testing.T) {
	const m, n, p = 128, 128, 128
	a := make([]float32, m*n)
	b := make([]float32, n*p)
	for i := range a {
		a[i] = 1
	}
	for i := range b {
		b[i] = 1
	}

	c := runMM(t, a, b, m, n, p, 4)
	want := float32(n)
	for i := range c {
		if c[i] != want {
			t.Fatalf("C[%d] = %v, want %v", i, c[i], want)
		}
	}
}

func TestMMArithmeticProgression(t *testing.T) {
	const m, n, p = 64, 128, 64
	a := make([]float32, m*n)
	for i := 0; i < m; i++ {
		for k := 0; k < n; k++ {
			a[i*n+k] = float32(k)
		}
	}
	b := make([]float32, n*p)
	for i := range b {
		b[i] = 1
	}

	c := runMM(t, a, b, m, n, p, 4)
	want := float32(n*(n-1)/2) // sum_{k=0}^{n-1} k = 8128 for n=128
	for i := range c {
		if c[i] != want {
			t.Fatalf("C[%d] = %v, want %v", i, c[i], want)
		}
	}
}

func TestMMRandom512(t *testing.T) {
	const m, n, p = 512, 64, 512
	rng := rand.New(rand.NewSource(1))
	a := make([]float32, m*n)
	b := make([]float32, n*p)
	for i := range a {
		a[i] = rng.Float32()
	}
	for i := range b {
		b[i] = rng.Float32()
	}

	c := runMM(t, a, b, m, n, p, 8)
	want := referenceMM(a, b, m, n, p)

	var maxErr float32
	for i := range c {
		diff := c[i] - want[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > maxErr {
			maxErr = diff
		}
	}
	if float64(maxErr) >= 1e-3 {
		t.Fatalf("max abs error = %v, want < 1e-3", maxErr)
	}
	if math.IsNaN(float64(maxErr)) {
		t.Fatal("max abs error is NaN")
	}
}

func TestMMSingleTileSixteenWorkers(t *testing.T) {
	const m, n, p = 64, 64, 64
	a := make([]float32, m*n)
	b := make([]float32, n*p)
	for i := range a {
		a[i] = 1
	}
	for i := range b {
		b[i] = 1
	}

	c := runMM(t, a, b, m, n, p, 16)
	want := float32(n)
	for i := range c {
		if c[i] != want {
			t.Fatalf("C[%d] = %v, want %v", i, c[i], want)
		}
	}
}

func TestCapacityIsPowerOfTwoAndSafe(t *testing.T) {
	for _, nw := range []int{1, 3, 7, 16} {
		cap := Capacity(512, 512, nw)
		if cap&(cap-1) != 0 {
			t.Errorf("Capacity(512,512,%d) = %d is not a power of two", nw, cap)
		}
		if cap < StealChunk+1 {
			t.Errorf("Capacity(512,512,%d) = %d is below the StealChunk+1 floor", nw, cap)
		}
	}
}
