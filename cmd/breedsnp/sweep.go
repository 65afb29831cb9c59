package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tamimmurad/breedsnp"
	"github.com/tamimmurad/breedsnp/plink"
)

type sweepOptions struct {
	founders   string
	fractions  []float64
	trials     int
	persist    bool
	simulation simulationFlags
}

// TrialResult is the outcome of one simulation of a sweep.
type TrialResult struct {
	BreedPer  float64
	Seed      int64
	Outcome   string
	Produced  int
	FinalSize int
	MeanMAF   float64
	RunID     string
}

func (a *app) sweepCommand() *cobra.Command {
	opts := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Simulate one founder cohort over a range of breeding fractions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.sweep(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.founders, "founders", "", "founder cohort in PED format")
	flags.Float64SliceVar(&opts.fractions, "fractions", []float64{0.1, 0.25, 0.5, 0.75, 1}, "breeding fractions to try")
	flags.IntVar(&opts.trials, "trials", 1, "simulations per breeding fraction")
	flags.BoolVar(&opts.persist, "persist", false, "store every trial in the run database")
	opts.simulation.register(flags)
	cmd.MarkFlagRequired("founders")
	return cmd
}

func (a *app) sweep(cmd *cobra.Command, opts *sweepOptions) error {
	opts.simulation.apply(cmd.Flags(), a.config)
	if opts.trials < 1 {
		return fmt.Errorf("trials %d must be at least 1", opts.trials)
	}

	founders, err := plink.ReadPEDFile(opts.founders)
	if err != nil {
		return fmt.Errorf("unable to load founders: %w", err)
	}

	var persist *breedsnp.Persistence
	if opts.persist {
		if persist, err = a.openPersistence(); err != nil {
			return err
		}
		defer persist.Shutdown()
	}

	base := a.config.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	var history []TrialResult
	for i, fraction := range opts.fractions {
		for trial := 0; trial < opts.trials; trial++ {
			config := *a.config.Simulation
			config.BreedPer = fraction
			seed := base + int64(i*opts.trials+trial)

			a.log.WithField("breed_per", fraction).Infof("trial %d/%d", trial+1, opts.trials)
			// Every trial stamps its own sexes onto a fresh copy of the founders.
			pop := breedsnp.NewPopulation(founders.Clone(), &config, seed)
			pop.Log = a.log
			if persist != nil {
				pop.WithPersistence(persist)
			}
			result, err := pop.Simulate(cmd.Context())
			if err != nil {
				return fmt.Errorf("trial with breed fraction %v: %w", fraction, err)
			}
			history = append(history, newTrialResult(pop, result))
		}
	}

	printSweep(history)
	return nil
}

func newTrialResult(pop *breedsnp.Population, result *breedsnp.Result) TrialResult {
	meanMAF := result.Founders.MeanMAF
	if n := len(result.Reports); n > 0 {
		meanMAF = result.Reports[n-1].MeanMAF
	}
	return TrialResult{
		BreedPer:  pop.Config.BreedPer,
		Seed:      pop.Seed,
		Outcome:   result.State.String(),
		Produced:  result.Produced,
		FinalSize: result.Final.Len(),
		MeanMAF:   meanMAF,
		RunID:     pop.RunID,
	}
}

func printSweep(history []TrialResult) {
	fmt.Printf("%-10s %-20s %-10s %-9s %-10s %-9s %s\n", "breed_per", "seed", "outcome", "produced", "final", "mean_maf", "run")
	for _, r := range history {
		fmt.Printf("%-10.3g %-20d %-10s %-9d %-10s %-9.4f %s\n",
			r.BreedPer, r.Seed, r.Outcome, r.Produced, humanize.Comma(int64(r.FinalSize)), r.MeanMAF, r.RunID)
	}
}
