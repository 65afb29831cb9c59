package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamimmurad/breedsnp"
	"github.com/tamimmurad/breedsnp/plink"
)

func (a *app) exportCommand() *cobra.Command {
	var out, mapPath string
	cmd := &cobra.Command{
		Use:   "export RUN",
		Short: "Write the final generation of a stored run as PED and FRQ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			persist, err := a.openPersistence()
			if err != nil {
				return err
			}
			defer persist.Shutdown()

			run, err := persist.LoadRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run.State == breedsnp.Failed.String() {
				return fmt.Errorf("run %s failed and has no final generation", run.ID)
			}
			table, err := persist.LoadIndividuals(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			var snps []plink.SNP
			if mapPath != "" {
				if snps, err = plink.ReadMAPFile(mapPath); err != nil {
					return err
				}
				if err := plink.CheckMAP(snps, table); err != nil {
					return err
				}
			}

			written, err := writeGeneration(out, table, snps)
			if err != nil {
				return err
			}
			fmt.Printf("Run %s: exported %d individuals of generation %d\n", run.ID, table.Len(), run.Produced)
			for _, path := range written {
				fmt.Printf("  wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "prefix of the .ped and .frq outputs")
	cmd.Flags().StringVar(&mapPath, "map", "", "SNP map to name SNPs in the frequency report")
	cmd.MarkFlagRequired("out")
	return cmd
}
