package breedsnp

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Processor synthesizes the broods of one round. Each couple runs on its own
// random stream seeded from the round seed and the couple index, and writes
// into its own slot, so the assembled generation does not depend on the
// number of workers.
type Processor struct {
	Reproducer *Reproducer
	Workers    int
}

func NewProcessor(reproducer *Reproducer, workers int) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{
		Reproducer: reproducer,
		Workers:    workers,
	}
}

// Run breeds every couple of b from parents and returns the offspring in
// couple order.
func (p *Processor) Run(ctx context.Context, parents *GenotypeTable, b *Breeders, gen int, genTag string, roundSeed int64) ([]*Individual, error) {
	if len(b.Males) != len(b.Females) {
		return nil, fmt.Errorf("%d fathers for %d mothers: %w", len(b.Males), len(b.Females), ErrMalformedTable)
	}

	index := parents.Index()
	snps := parents.SNPCount()
	broods := make([][]*Individual, b.Couples())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)

	for i := range broods {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			father, ok := index[b.Males[i]]
			if !ok {
				return fmt.Errorf("couple %d father %q: %w", i, b.Males[i], ErrUnknownParent)
			}
			mother, ok := index[b.Females[i]]
			if !ok {
				return fmt.Errorf("couple %d mother %q: %w", i, b.Females[i], ErrUnknownParent)
			}
			brood, err := p.Reproducer.Brood(father, mother, snps, gen, i, genTag, coupleRand(roundSeed, i))
			if err != nil {
				return err
			}
			broods[i] = brood
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, brood := range broods {
		total += len(brood)
	}
	offspring := make([]*Individual, 0, total)
	for _, brood := range broods {
		offspring = append(offspring, brood...)
	}
	return offspring, nil
}
