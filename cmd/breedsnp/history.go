package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tamimmurad/breedsnp"
)

func (a *app) historyCommand() *cobra.Command {
	var frequencies bool
	cmd := &cobra.Command{
		Use:   "history [RUN]",
		Short: "List stored runs, or the generations of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listRuns(cmd)
			}
			return a.showRun(cmd, args[0], frequencies)
		},
	}
	cmd.Flags().BoolVar(&frequencies, "frequencies", false, "print per-SNP frequencies of every generation")
	return cmd
}

func (a *app) listRuns(cmd *cobra.Command) error {
	persist, err := a.openPersistence()
	if err != nil {
		return err
	}
	defer persist.Shutdown()

	runs, err := persist.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs stored.")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %-14s %-9s %d/%d generations  breed_per=%.3g max_offspring=%d founders=%s snps=%s seed=%d\n",
			run.ID, humanize.Time(run.CreatedAt), run.State, run.Produced, run.Requested,
			run.BreedPer, run.MaxOffspring, humanize.Comma(int64(run.FounderCount)),
			humanize.Comma(int64(run.SNPCount)), run.Seed)
	}
	return nil
}

func (a *app) showRun(cmd *cobra.Command, runID string, frequencies bool) error {
	persist, err := a.openPersistence()
	if err != nil {
		return err
	}
	defer persist.Shutdown()

	run, err := persist.LoadRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	gens, err := persist.LoadGenerations(cmd.Context(), run.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s, %s):\n", run.ID, run.State, humanize.Time(run.CreatedAt))
	fmt.Printf("  Seed %d, breed_per %.3g, max_offspring %d, %d of %d generations\n",
		run.Seed, run.BreedPer, run.MaxOffspring, run.Produced, run.Requested)
	if state, err := breedsnp.ParseState(run.State); err == nil && state == breedsnp.Exhausted {
		fmt.Printf("  Stopped early: no breeders left for generation %d\n", run.Produced+1)
	}
	for _, g := range gens {
		fmt.Printf("  %3d %-16s size=%-8s couples=%-6d M=%-6d F=%-6d mean_maf=%.4f mate_distance=%.2f\n",
			g.Generation, g.Label, humanize.Comma(int64(g.Size)), g.Couples, g.Males, g.Females, g.MeanMAF, g.MeanMateDistance)
		if !frequencies {
			continue
		}
		for _, f := range g.Frequencies {
			fmt.Printf("        snp%-6d %s/%s maf=%.4f n=%d\n", f.SNP+1, f.Minor, f.Major, f.MAF, f.Observed)
		}
	}
	return nil
}
