package breedsnp

import (
	"fmt"

	cp "github.com/jinzhu/copier"
)

// Individual is one row of a genotype table. Alleles for SNP i occupy
// positions 2i and 2i+1; the pair is unordered.
type Individual struct {
	Family     string
	ID         string
	PaternalID string
	MaternalID string
	Sex        Sex
	Status     string
	Alleles    []string
}

// NewFounder builds an individual with no recorded parentage.
func NewFounder(family, id string, sex Sex, alleles []string) *Individual {
	return &Individual{
		Family:     family,
		ID:         id,
		PaternalID: FounderParentID,
		MaternalID: FounderParentID,
		Sex:        sex,
		Status:     StatusPlaceholder,
		Alleles:    alleles,
	}
}

func (in *Individual) SNPCount() int {
	return len(in.Alleles) / 2
}

// Width is the number of PED columns the individual occupies.
func (in *Individual) Width() int {
	return MetaColumns + len(in.Alleles)
}

// Pair returns both alleles of SNP i.
func (in *Individual) Pair(i int) (string, string) {
	return in.Alleles[2*i], in.Alleles[2*i+1]
}

func (in *Individual) String() string {
	return fmt.Sprintf("%s/%s (%s, %d SNPs)", in.Family, in.ID, in.Sex, in.SNPCount())
}

func (in *Individual) Clone() *Individual {
	clone := &Individual{}
	if err := cp.CopyWithOption(clone, in, cp.Option{DeepCopy: true}); err != nil {
		panic(fmt.Errorf("cloning individual %s failed: %w", in.ID, err))
	}
	return clone
}
