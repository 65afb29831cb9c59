package plink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/tamimmurad/breedsnp"
)

// WriteFRQ writes a plink style allele frequency report for t. A1 is the
// minor allele and A2 the major one. Without a map, SNPs are named snp1,
// snp2, ... on chromosome 0.
func WriteFRQ(w io.Writer, t *breedsnp.GenotypeTable, snps []SNP) error {
	if snps != nil {
		if err := CheckMAP(snps, t); err != nil {
			return err
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, " %3s %12s %4s %4s %12s %8s\n", "CHR", "SNP", "A1", "A2", "MAF", "NCHROBS")
	for _, f := range breedsnp.AlleleFrequencies(t) {
		chr, id := "0", "snp"+strconv.Itoa(f.Index+1)
		if snps != nil {
			chr, id = snps[f.Index].Chromosome, snps[f.Index].ID
		}
		fmt.Fprintf(bw, " %3s %12s %4s %4s %12.4g %8d\n", chr, id, f.Minor, f.Major, f.MAF, f.Observed)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing FRQ: %w", err)
	}
	return nil
}

func WriteFRQFile(path string, t *breedsnp.GenotypeTable, snps []SNP) error {
	return writeFile(path, func(w io.Writer) error { return WriteFRQ(w, t, snps) })
}
