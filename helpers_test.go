package breedsnp

import (
	"fmt"
	"math/rand"
)

var testAlleles = []string{"A", "C", "G", "T"}

// makeFounders builds a cohort of males followed by females carrying snps
// SNPs each.
func makeFounders(males, females, snps int) *GenotypeTable {
	t := NewGenotypeTable()
	for i := 0; i < males+females; i++ {
		sex := Male
		if i >= males {
			sex = Female
		}
		alleles := make([]string, 2*snps)
		for j := range alleles {
			alleles[j] = testAlleles[(i*7+j*3)%len(testAlleles)]
		}
		t.Individuals = append(t.Individuals, NewFounder("FAM1", fmt.Sprintf("per%d", i), sex, alleles))
	}
	return t
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
