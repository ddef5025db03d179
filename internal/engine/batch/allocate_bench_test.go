package batch

import (
	"context"
	"fmt"
	"testing"
)

// benchTaxa spreads n samples over 40 families of 5 genera each, with block
// sizes that leave remainders at every tier.
func benchTaxa(n int) []taxon {
	var taxa []taxon
	for placed, i := 0, 0; placed < n; i++ {
		count := min(7+(i*13)%61, n-placed)
		taxa = append(taxa, taxon{
			family: fmt.Sprintf("Family%02d", i%40),
			genus:  fmt.Sprintf("Genus%d", i%5),
			count:  count,
		})
		placed += count
	}
	return taxa
}

// BenchmarkAllocate_Registry benchmarks a registry of typical size.
func BenchmarkAllocate_Registry(b *testing.B) {
	benchmarkAllocate(b, 2000)
}

// BenchmarkAllocate_LargeRegistry benchmarks a 50k-sample registry.
func BenchmarkAllocate_LargeRegistry(b *testing.B) {
	benchmarkAllocate(b, 50000)
}

func benchmarkAllocate(b *testing.B, n int) {
	b.ReportAllocs()
	ds := fixtureDataset(benchTaxa(n)...)
	alloc, err := NewAllocator(DefaultLayout(), "Família", "Gênero")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := alloc.Allocate(context.Background(), ds); err != nil {
			b.Fatal(err)
		}
	}
}
