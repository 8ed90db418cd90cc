package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/discovery"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/scheduler"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/server"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

var (
	serveConfigPath string
	servePort       int
	serveCron       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes job discovery triggers, stored records, document drafting, and the interview coach.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveCron, "cron", "", "Cron spec for scheduled discovery runs (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveCron != "" {
		cfg.CronSpec = serveCron
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.CronSpec != "" {
		sched := scheduler.New(a.runner)
		err := sched.Add(cfg.CronSpec, discovery.Request{
			Keywords:   cfg.Keywords,
			Location:   cfg.Location,
			MaxAgeDays: cfg.MaxAgeDays,
			Platforms:  types.AllPlatforms(),
		})
		if err != nil {
			return fmt.Errorf("schedule discovery: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		Keywords:       cfg.Keywords,
		Location:       cfg.Location,
		MaxAgeDays:     cfg.MaxAgeDays,
	}, server.Deps{
		Jobs:     a.jobs,
		Runner:   a.runner,
		Drafter:  a.drafter,
		Coach:    a.coach,
		Profiles: a.profiles,
	})

	return srv.Start()
}
