package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/cache"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/coach"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/config"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/discovery"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/drafts"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/llm"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/notify"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/pipeline"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/profile"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/render"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/scoring"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/scrape"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/store"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// app bundles the wired collaborators shared by the serve, discover, and
// enrich commands.
type app struct {
	cfg      config.Config
	jobs     store.JobStore
	runner   *pipeline.Runner
	drafter  *drafts.Drafter
	coach    *coach.Coach
	profiles *profile.Manager

	pg *store.Postgres // nil when running on the in-memory store
}

// unconfiguredScorer stands in when no LLM API key is present. Every scoring
// attempt becomes a soft per-record error instead of a crash.
type unconfiguredScorer struct{}

func (unconfiguredScorer) Score(context.Context, types.Job, types.Profile) (types.ScoreResult, error) {
	return types.ScoreResult{}, llm.ErrNotConfigured
}

// loadConfig resolves the effective configuration: file (when --config is
// given) over environment over defaults.
func loadConfig(path string) (config.Config, error) {
	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	} else {
		cfg = config.FromEnv()
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// newApp wires all collaborators from the configuration. Missing optional
// backends degrade: no DATABASE_URL means an in-memory store, no REDIS_ADDR
// an in-memory cache, no GEMINI_API_KEY disables LLM-backed features.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{cfg: cfg}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Println("[app] GEMINI_API_KEY not set; scoring, drafting, and coaching are disabled")
		client = nil
	case err != nil:
		return nil, fmt.Errorf("create LLM client: %w", err)
	}

	if cfg.DatabaseURL != "" {
		pg, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.pg = pg
		a.jobs = pg
	} else {
		log.Println("[app] DATABASE_URL not set; using in-memory store")
		a.jobs = store.NewMemory()
	}

	var runCache cache.Cache
	if cfg.RedisAddr != "" {
		redis, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 0)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		runCache = redis
	} else {
		runCache = cache.NewMemory()
	}

	a.profiles = profile.NewManager()

	var scorer pipeline.Scorer = unconfiguredScorer{}
	var renderer render.Renderer
	if client != nil {
		scorer = scoring.NewScorer(client)
		renderer = render.NewDocumentRenderer(client, render.NewChromedpEngine())
		a.drafter = drafts.NewDrafter(client)
		a.coach = coach.New(runCache, client, a.profiles)
	}

	var chat, email notify.Channel
	if cfg.ChatWebhookURL != "" {
		chat = notify.NewChatWebhook(cfg.ChatWebhookURL)
	}
	if cfg.EmailWebhookURL != "" {
		email = notify.NewEmailWebhook(cfg.EmailWebhookURL, cfg.EmailTo)
	}

	registry := scrape.NewRegistry(&scrape.Options{
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	enricher := pipeline.NewEnricher(scorer, renderer, a.jobs, a.profiles, scoring.Scorable)
	a.runner = pipeline.NewRunner(
		discovery.NewAggregator(registry, cfg.Verbose),
		enricher,
		a.jobs,
		store.NewIDGenerator(),
		notify.New(chat, email),
		runCache,
	)

	return a, nil
}

// Close releases backend connections.
func (a *app) Close() {
	if a.pg != nil {
		a.pg.Close()
	}
}
