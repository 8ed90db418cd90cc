package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/discovery"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/pipeline"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

var (
	discoverConfigPath string
	discoverKeywords   string
	discoverLocation   string
	discoverMaxAge     int
	discoverPlatforms  []string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run one discovery+enrichment pass and print the summary",
	Long:  `Scrapes the selected job boards, dedups and persists new records, scores them against the active profile, and generates documents for strong matches.`,
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverConfigPath, "config", "", "Path to config.json file")
	discoverCmd.Flags().StringVarP(&discoverKeywords, "keywords", "k", "", "Search keywords (overrides config)")
	discoverCmd.Flags().StringVarP(&discoverLocation, "location", "l", "", "Search location (overrides config)")
	discoverCmd.Flags().IntVar(&discoverMaxAge, "max-age", 0, "Advisory posting age cutoff in days (overrides config)")
	discoverCmd.Flags().StringSliceVarP(&discoverPlatforms, "platforms", "p", nil, "Job boards to query (default: all)")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(discoverConfigPath)
	if err != nil {
		return err
	}
	if discoverKeywords != "" {
		cfg.Keywords = discoverKeywords
	}
	if discoverLocation != "" {
		cfg.Location = discoverLocation
	}
	if discoverMaxAge != 0 {
		cfg.MaxAgeDays = discoverMaxAge
	}

	platforms := types.AllPlatforms()
	if len(discoverPlatforms) > 0 {
		platforms = platforms[:0]
		for _, raw := range discoverPlatforms {
			p, ok := types.ParsePlatform(raw)
			if !ok {
				return fmt.Errorf("unknown platform %q", raw)
			}
			platforms = append(platforms, p)
		}
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	id := a.runner.StartDiscovery(discovery.Request{
		Keywords:   cfg.Keywords,
		Location:   cfg.Location,
		MaxAgeDays: cfg.MaxAgeDays,
		Platforms:  platforms,
	}, pipeline.EnrichOptions{})

	run, err := waitForRun(ctx, a.runner, id)
	if err != nil {
		return err
	}
	printRun(run)
	return nil
}

// waitForRun polls the background run until it finishes.
func waitForRun(ctx context.Context, runner *pipeline.Runner, id string) (*pipeline.Run, error) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			run, err := runner.GetRun(ctx, id)
			if err != nil {
				return nil, err
			}
			if run.Status != pipeline.RunRunning {
				return run, nil
			}
		}
	}
}

func printRun(run *pipeline.Run) {
	fmt.Printf("Run %s: %s\n", run.ID, run.Status)
	if run.Error != "" {
		fmt.Printf("  error: %s\n", run.Error)
	}
	if run.Summary == nil {
		return
	}
	s := run.Summary
	fmt.Printf("  discovered: %d, new: %d, processed: %d, scored: %d, docs: %d\n",
		s.Discovered, s.NewRecords, s.Processed, s.Scored, s.DocsGenerated)
	for _, m := range s.TopMatches {
		fmt.Printf("  [%d/10] %s — %s (%s)\n", m.Score, m.Role, m.Company, m.ID)
	}
	for _, e := range s.Errors {
		fmt.Printf("  error: %s\n", e)
	}
}
