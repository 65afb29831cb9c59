package breedsnp

import (
	"fmt"
	"sort"

	"github.com/xrash/smetrics"
)

// SNPFrequency summarizes the alleles observed at one SNP. Missing calls
// ("0") are not counted. With more than two alleles present the minor allele
// is the second most frequent one.
type SNPFrequency struct {
	Index    int
	Minor    string
	Major    string
	MAF      float64
	Observed int
}

// AlleleFrequencies counts alleles per SNP across the whole table.
func AlleleFrequencies(t *GenotypeTable) []SNPFrequency {
	snps := t.SNPCount()
	freqs := make([]SNPFrequency, snps)
	for i := 0; i < snps; i++ {
		counts := make(map[string]int, 2)
		observed := 0
		for _, in := range t.Individuals {
			a, b := in.Pair(i)
			for _, allele := range [2]string{a, b} {
				if allele == MissingAllele {
					continue
				}
				counts[allele]++
				observed++
			}
		}
		freqs[i] = summarizeSNP(i, counts, observed)
	}
	return freqs
}

func summarizeSNP(index int, counts map[string]int, observed int) SNPFrequency {
	f := SNPFrequency{
		Index:    index,
		Minor:    MissingAllele,
		Major:    MissingAllele,
		Observed: observed,
	}

	alleles := make([]string, 0, len(counts))
	for allele := range counts {
		alleles = append(alleles, allele)
	}
	sort.Slice(alleles, func(i, j int) bool {
		if counts[alleles[i]] != counts[alleles[j]] {
			return counts[alleles[i]] > counts[alleles[j]]
		}
		return alleles[i] < alleles[j]
	})

	if len(alleles) > 0 {
		f.Major = alleles[0]
	}
	if len(alleles) > 1 {
		f.Minor = alleles[1]
		f.MAF = float64(counts[f.Minor]) / float64(observed)
	}
	return f
}

// MeanMAF averages the minor-allele frequency over all SNPs.
func MeanMAF(freqs []SNPFrequency) float64 {
	if len(freqs) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range freqs {
		sum += f.MAF
	}
	return sum / float64(len(freqs))
}

// MateDistance is the number of SNPs at which two individuals carry
// different unordered genotypes.
func MateDistance(a, b *Individual) (int, error) {
	if len(a.Alleles) != len(b.Alleles) {
		return 0, fmt.Errorf("%s and %s differ in SNP count: %w", a.ID, b.ID, ErrMalformedTable)
	}
	codes := make(map[string]byte)
	ca, err := genotypeCode(a, codes)
	if err != nil {
		return 0, err
	}
	cb, err := genotypeCode(b, codes)
	if err != nil {
		return 0, err
	}
	return smetrics.Hamming(ca, cb)
}

// genotypeCode renders one byte per SNP. Equal unordered genotypes share a
// byte through codes, so string distance equals genotype distance.
func genotypeCode(in *Individual, codes map[string]byte) (string, error) {
	buf := make([]byte, in.SNPCount())
	for i := range buf {
		a, b := in.Pair(i)
		if b < a {
			a, b = b, a
		}
		key := a + "/" + b
		code, ok := codes[key]
		if !ok {
			if len(codes) > 255 {
				return "", fmt.Errorf("more than 256 distinct genotypes between a couple")
			}
			code = byte(len(codes))
			codes[key] = code
		}
		buf[i] = code
	}
	return string(buf), nil
}

// MeanMateDistance averages MateDistance over the couples of a round.
func MeanMateDistance(parents *GenotypeTable, b *Breeders) (float64, error) {
	if b.Couples() == 0 {
		return 0, nil
	}
	index := parents.Index()
	total := 0
	for i := range b.Males {
		father, ok := index[b.Males[i]]
		if !ok {
			return 0, fmt.Errorf("father %q: %w", b.Males[i], ErrUnknownParent)
		}
		mother, ok := index[b.Females[i]]
		if !ok {
			return 0, fmt.Errorf("mother %q: %w", b.Females[i], ErrUnknownParent)
		}
		d, err := MateDistance(father, mother)
		if err != nil {
			return 0, err
		}
		total += d
	}
	return float64(total) / float64(b.Couples()), nil
}
