package breedsnp

import (
	"fmt"
	"math"
	"math/rand"
)

type Selector struct {
	BreedPer float64
}

// Breeders holds the couples of one round. Males[i] mates with Females[i].
type Breeders struct {
	Males   []string
	Females []string
}

func (b *Breeders) Couples() int {
	return len(b.Males)
}

// Empty reports whether the round has no one to breed.
func (b *Breeders) Empty() bool {
	return len(b.Males) == 0 || len(b.Females) == 0
}

func NewSelector(breedPer float64) (*Selector, error) {
	if math.IsNaN(breedPer) || breedPer < 0 || breedPer > 1 {
		return nil, fmt.Errorf("breed fraction %v must be between 0 and 1: %w", breedPer, ErrInvalidConfig)
	}
	return &Selector{BreedPer: breedPer}, nil
}

// CoupleCount is floor(min(males, females) * BreedPer).
func (s *Selector) CoupleCount(males, females int) int {
	return int(float64(min(males, females)) * s.BreedPer)
}

// Select samples the breeders of one round. Males and females are drawn
// independently and without replacement from their own sex class.
func (s *Selector) Select(t *GenotypeTable, rng *rand.Rand) *Breeders {
	males := t.IDsBySex(Male)
	females := t.IDsBySex(Female)
	count := s.CoupleCount(len(males), len(females))

	return &Breeders{
		Males:   sample(males, count, rng),
		Females: sample(females, count, rng),
	}
}

// sample draws k distinct elements with a partial Fisher-Yates shuffle. The
// input slice is reordered in place.
func sample(ids []string, k int, rng *rand.Rand) []string {
	if k <= 0 {
		return []string{}
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	out := make([]string, k)
	copy(out, ids[:k])
	return out
}
