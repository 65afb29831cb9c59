package breedsnp

import (
	"context"
	"fmt"
	"runtime"
	"testing"
)

// BenchmarkProcessor measures parallel brood synthesis over a large cohort.
// Run with: go test -run=^$ -bench=BenchmarkProcessor -benchtime=10x -v
func BenchmarkProcessor(b *testing.B) {
	parents := makeFounders(5000, 5000, 1000)
	selector, _ := NewSelector(1)
	breeders := selector.Select(parents, NewRand(42))
	reproducer, _ := NewReproducer(3)

	for _, workers := range []int{1, runtime.NumCPU()} {
		processor := NewProcessor(reproducer, workers)
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.Logf("Couples: %d, SNPs: %d, workers: %d", breeders.Couples(), parents.SNPCount(), workers)
			for i := 0; i < b.N; i++ {
				if _, err := processor.Run(context.Background(), parents, breeders, 1, "G1", int64(i)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAlleleFrequencies(b *testing.B) {
	table := makeFounders(5000, 5000, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AlleleFrequencies(table)
	}
}
