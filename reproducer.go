package breedsnp

import (
	"fmt"
	"math/rand"
)

// Reproducer synthesizes offspring from couples of a parent generation.
// Every couple draws its own offspring count between 1 and MaxOffspring.
type Reproducer struct {
	MaxOffspring int
}

func NewReproducer(maxOffspring int) (*Reproducer, error) {
	if maxOffspring < 1 {
		return nil, fmt.Errorf("max offspring %d must be at least 1: %w", maxOffspring, ErrInvalidConfig)
	}
	return &Reproducer{MaxOffspring: maxOffspring}, nil
}

// OffspringCount draws uniformly from {1, ..., MaxOffspring}.
func (r *Reproducer) OffspringCount(rng *rand.Rand) int {
	return 1 + rng.Intn(r.MaxOffspring)
}

// Offspring produces one child of maleID and femaleID. For every SNP the
// child takes one randomly chosen allele from the father followed by one
// from the mother. Both parents must exist in the table; a missing parent is
// reported as ErrUnknownParent rather than tolerated.
//
// Processor does not call Offspring: it resolves each couple once through
// GenotypeTable.Index and goes through Brood. Both paths share breed.
func (r *Reproducer) Offspring(parents *GenotypeTable, genTag, id, maleID, femaleID string, rng *rand.Rand) (*Individual, error) {
	father, ok := parents.Find(maleID)
	if !ok {
		return nil, fmt.Errorf("father %q: %w", maleID, ErrUnknownParent)
	}
	mother, ok := parents.Find(femaleID)
	if !ok {
		return nil, fmt.Errorf("mother %q: %w", femaleID, ErrUnknownParent)
	}

	return r.breed(father, mother, parents.SNPCount(), genTag, id, rng)
}

// Brood draws the couple's offspring count and synthesizes that many
// children, named with OffspringID(gen, couple, n).
func (r *Reproducer) Brood(father, mother *Individual, snps, gen, couple int, genTag string, rng *rand.Rand) ([]*Individual, error) {
	count := r.OffspringCount(rng)
	brood := make([]*Individual, 0, count)
	for n := 0; n < count; n++ {
		child, err := r.breed(father, mother, snps, genTag, OffspringID(gen, couple, n), rng)
		if err != nil {
			return nil, err
		}
		brood = append(brood, child)
	}
	return brood, nil
}

func (r *Reproducer) breed(father, mother *Individual, snps int, genTag, id string, rng *rand.Rand) (*Individual, error) {
	if len(father.Alleles) != 2*snps || len(mother.Alleles) != 2*snps {
		return nil, fmt.Errorf("couple %s x %s does not carry %d SNPs: %w", father.ID, mother.ID, snps, ErrMalformedTable)
	}

	child := &Individual{
		Family:     OffspringPrefix + genTag,
		ID:         id,
		PaternalID: FounderParentID,
		MaternalID: FounderParentID,
		Sex:        randomSex(rng),
		Status:     StatusPlaceholder,
		Alleles:    make([]string, 0, 2*snps),
	}

	for i := 0; i < snps; i++ {
		bm := rng.Intn(2)
		bf := rng.Intn(2)
		child.Alleles = append(child.Alleles, father.Alleles[2*i+bm], mother.Alleles[2*i+bf])
	}

	return child, nil
}

// OffspringID names child n of couple c in generation gen. The triple keeps
// identifiers unique within a generation for any couple or brood size.
func OffspringID(gen, couple, child int) string {
	return fmt.Sprintf("os%d_%d_%d", gen, couple, child)
}
