package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tamimmurad/breedsnp"
	"github.com/tamimmurad/breedsnp/plink"
)

type simulateOptions struct {
	founders    string
	mapPath     string
	out         string
	persist     bool
	profileMode string
	simulation  simulationFlags
}

func (a *app) simulateCommand() *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Breed a founder cohort for a number of generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.simulate(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.founders, "founders", "", "founder cohort in PED format")
	flags.StringVar(&opts.mapPath, "map", "", "SNP map of the founders (default: founders path with .map)")
	flags.StringVarP(&opts.out, "out", "o", "", "prefix of the .ped, .map, .frq and .founders.frq outputs")
	flags.BoolVar(&opts.persist, "persist", false, "store the run in the run database")
	flags.StringVar(&opts.profileMode, "profile", "", "write a cpu or mem profile")
	opts.simulation.register(flags)
	cmd.MarkFlagRequired("founders")
	cmd.MarkFlagRequired("out")
	return cmd
}

// simulationFlags holds the flags that override the simulation section of
// the tool config. Only flags the user set are applied.
type simulationFlags struct {
	breedPer     float64
	maxOffspring int
	generations  int
	genTag       string
	seed         int64
	workers      int
}

func (f *simulationFlags) register(flags *pflag.FlagSet) {
	flags.Float64Var(&f.breedPer, "breed-per", 0, "fraction of the smaller sex that breeds each generation")
	flags.IntVar(&f.maxOffspring, "max-offspring", 0, "maximum offspring per couple")
	flags.IntVar(&f.generations, "generations", 0, "number of generations to produce")
	flags.StringVar(&f.genTag, "gen-tag", "", "tag prefix of generation labels")
	flags.Int64Var(&f.seed, "seed", 0, "random seed (0 picks one from the clock)")
	flags.IntVar(&f.workers, "workers", 0, "couples bred in parallel (0 = one per CPU)")
}

func (f *simulationFlags) apply(flags *pflag.FlagSet, config *breedsnp.ToolConfig) {
	sim := config.Simulation
	if flags.Changed("breed-per") {
		sim.BreedPer = f.breedPer
	}
	if flags.Changed("max-offspring") {
		sim.MaxOffspring = f.maxOffspring
	}
	if flags.Changed("generations") {
		sim.Generations = f.generations
	}
	if flags.Changed("gen-tag") {
		sim.GenTag = f.genTag
	}
	if flags.Changed("seed") {
		config.Seed = f.seed
	}
	if flags.Changed("workers") {
		sim.Workers = f.workers
	}
}

func (a *app) simulate(cmd *cobra.Command, opts *simulateOptions) error {
	switch opts.profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q, want cpu or mem", opts.profileMode)
	}

	opts.simulation.apply(cmd.Flags(), a.config)

	founders, err := plink.ReadPEDFile(opts.founders)
	if err != nil {
		return fmt.Errorf("unable to load founders: %w", err)
	}
	snps, err := a.loadMap(opts)
	if err != nil {
		return err
	}
	if snps != nil {
		if err := plink.CheckMAP(snps, founders); err != nil {
			return err
		}
	}

	pop := breedsnp.NewPopulation(founders, a.config.Simulation, a.config.Seed)
	pop.Log = a.log
	if opts.persist {
		persist, err := a.openPersistence()
		if err != nil {
			return err
		}
		defer persist.Shutdown()
		pop.WithPersistence(persist)
	}

	result, err := pop.Simulate(cmd.Context())
	if err != nil {
		return err
	}

	foundersFRQ := opts.out + ".founders.frq"
	if err := plink.WriteFRQFile(foundersFRQ, founders, snps); err != nil {
		return err
	}
	written := []string{foundersFRQ}
	outputs, err := writeGeneration(opts.out, result.Final, snps)
	if err != nil {
		return err
	}
	written = append(written, outputs...)

	printSummary(pop, result)
	for _, path := range written {
		size := "?"
		if info, err := os.Stat(path); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Printf("  wrote %s (%s)\n", path, size)
	}
	return nil
}

// loadMap reads the founders' SNP map. Without --map a map next to the
// founders is used when it exists.
func (a *app) loadMap(opts *simulateOptions) ([]plink.SNP, error) {
	path := opts.mapPath
	if path == "" {
		path = strings.TrimSuffix(opts.founders, filepath.Ext(opts.founders)) + ".map"
		if _, err := os.Stat(path); err != nil {
			a.log.WithField("map", path).Debug("no SNP map next to founders")
			return nil, nil
		}
	}
	snps, err := plink.ReadMAPFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load SNP map: %w", err)
	}
	return snps, nil
}

// writeGeneration writes prefix.ped, prefix.frq and, with a map,
// prefix.map.
func writeGeneration(prefix string, t *breedsnp.GenotypeTable, snps []plink.SNP) ([]string, error) {
	written := []string{prefix + ".ped"}
	if err := plink.WritePEDFile(prefix+".ped", t); err != nil {
		return nil, err
	}
	if snps != nil {
		if err := plink.WriteMAPFile(prefix+".map", snps); err != nil {
			return nil, err
		}
		written = append(written, prefix+".map")
	}
	if err := plink.WriteFRQFile(prefix+".frq", t, snps); err != nil {
		return nil, err
	}
	return append(written, prefix+".frq"), nil
}

func printSummary(pop *breedsnp.Population, result *breedsnp.Result) {
	fmt.Printf("Simulation %s (seed %d):\n", result.State, pop.Seed)
	if pop.RunID != "" {
		fmt.Printf("  Run:                   %s\n", pop.RunID)
	}
	fmt.Printf("  Generations produced:  %d of %d\n", result.Produced, result.Requested)
	fmt.Printf("  Founders:              %s (mean MAF %.4f)\n", humanize.Comma(int64(result.Founders.Size)), result.Founders.MeanMAF)
	for _, r := range result.Reports {
		fmt.Printf("  %-22s %s from %d couples, %d M / %d F, mean MAF %.4f\n",
			r.Label+":", humanize.Comma(int64(r.Size)), r.Couples, r.Males, r.Females, r.MeanMAF)
	}
}
