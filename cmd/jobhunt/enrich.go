package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/pipeline"
)

var (
	enrichConfigPath   string
	enrichIDs          []string
	enrichAll          bool
	enrichForceRescore bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Re-run scoring and document generation over stored records",
	RunE:  runEnrich,
}

func init() {
	enrichCmd.Flags().StringVar(&enrichConfigPath, "config", "", "Path to config.json file")
	enrichCmd.Flags().StringSliceVar(&enrichIDs, "ids", nil, "Job IDs to enrich")
	enrichCmd.Flags().BoolVar(&enrichAll, "all", false, "Enrich every stored record")
	enrichCmd.Flags().BoolVar(&enrichForceRescore, "force-rescore", false, "Re-score records that already carry a score (documents are never regenerated)")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(_ *cobra.Command, _ []string) error {
	if len(enrichIDs) == 0 && !enrichAll {
		return fmt.Errorf("either --ids or --all is required")
	}

	cfg, err := loadConfig(enrichConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	id := a.runner.StartEnrich(enrichIDs, enrichAll, pipeline.EnrichOptions{
		ForceRescore: enrichForceRescore,
	})

	run, err := waitForRun(ctx, a.runner, id)
	if err != nil {
		return err
	}
	printRun(run)
	return nil
}
