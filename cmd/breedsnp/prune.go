package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) pruneCommand() *cobra.Command {
	var keep int
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest runs from the run database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			persist, err := a.openPersistence()
			if err != nil {
				return err
			}
			defer persist.Shutdown()

			if dryRun {
				a.log.Infof("DRY RUN: previewing prune keeping %d runs", keep)
			} else {
				a.log.Infof("Pruning runs, keeping the newest %d", keep)
			}

			result, err := persist.Prune(cmd.Context(), keep, dryRun)
			if err != nil {
				return fmt.Errorf("prune failed: %w", err)
			}

			fmt.Printf("Prune %s:\n", map[bool]string{true: "(dry run)", false: "complete"}[dryRun])
			fmt.Printf("  Runs deleted:          %d\n", result.Runs)
			fmt.Printf("  Generations deleted:   %d\n", result.Generations)
			fmt.Printf("  Frequencies deleted:   %d\n", result.Frequencies)
			fmt.Printf("  Individuals deleted:   %d\n", result.Individuals)
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 10, "number of newest runs to keep")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview what would be deleted without actually deleting")
	return cmd
}
