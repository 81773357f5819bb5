// Command gemmbench multiplies two random M×N and N×P matrices with
// gemm.MM and reports either the elapsed time or the operands and result,
// translated from original_source/main.c's main().
//
// Usage:
//
//	gemmbench -m 1024 -n 1024 -p 1024
//	gemmbench -m 128 -n 128 -p 128 -validate
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/TonyLinX/gemm/gemm"
	"github.com/TonyLinX/gemm/gemm/align"
)

var (
	m         = flag.Int("m", 1024, "rows of A and C")
	n         = flag.Int("n", 1024, "cols of A, rows of B")
	p         = flag.Int("p", 1024, "cols of B and C")
	numWorker = flag.Int("workers", gemm.NCores, "number of pool workers")
	validate  = flag.Bool("validate", false, "print A, B, and C instead of timing")
)

func fillRand(dst []float32) {
	for i := range dst {
		dst[i] = rand.Float32()
	}
}

func printMat(mat []float32, rows, cols int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%.6f", mat[i*cols+j])
		}
		fmt.Println()
	}
	fmt.Println("---")
}

func main() {
	flag.Parse()

	if *m <= 0 || *n <= 0 || *p <= 0 {
		fmt.Fprintln(os.Stderr, "Usage: gemmbench -m <m> -n <n> -p <p>")
		os.Exit(1)
	}

	a := make([]float32, *m**n)
	b := make([]float32, *n**p)
	fillRand(a)
	fillRand(b)

	padM := align.Up(*m, gemm.TileSize)
	padN := align.Up(*n, gemm.TileSize)
	padP := align.Up(*p, gemm.TileSize)

	padA := align.Pad(a, *m, *n, padM, padN)
	padB := align.PadTransposed(b, *n, *p, padN, padP)
	padC := align.AlignedFloat32(padM*padP, gemm.MemAlignment)

	pool, err := gemm.NewPool(gemm.Options{
		NumWorkers:    *numWorker,
		QueueCapacity: gemm.Capacity(padM, padP, *numWorker),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gemmbench: %v\n", err)
		os.Exit(1)
	}
	defer pool.Destroy()

	start := time.Now()
	gemm.MM(padA, padB, padC, padM, padN, padP, pool)
	elapsed := time.Since(start)

	c := make([]float32, *m**p)
	align.Unpad(padC, c, *m, *p, padM, padP)

	if *validate {
		printMat(a, *m, *n)
		printMat(b, *n, *p)
		printMat(c, *m, *p)
		return
	}

	fmt.Printf("kernel: %s\n", gemm.ActiveKernel())
	fmt.Printf("time: %.6f sec\n", elapsed.Seconds())
}
