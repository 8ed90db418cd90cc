package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/cache"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/discovery"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/store"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// runStateTTL keeps finished run records queryable for a day.
const runStateTTL = 24 * time.Hour

// ErrRunNotFound is returned for unknown or expired run IDs.
var ErrRunNotFound = errors.New("pipeline: run not found")

// Run is the queryable state of one background run.
type Run struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"` // "discover" or "enrich"
	Status     string            `json:"status"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
	Summary    *types.RunSummary `json:"summary,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Notifier reports a finished run. Implementations never panic and never
// fail the run.
type Notifier interface {
	Notify(ctx context.Context, summary types.RunSummary) bool
}

// Runner triggers background discovery and enrichment runs and tracks their
// state in the cache.
type Runner struct {
	aggregator *discovery.Aggregator
	enricher   *Enricher
	store      store.JobStore
	ids        *store.IDGenerator
	notifier   Notifier
	runs       cache.Cache
}

// NewRunner wires the full pipeline.
func NewRunner(agg *discovery.Aggregator, enricher *Enricher, jobs store.JobStore, ids *store.IDGenerator, notifier Notifier, runs cache.Cache) *Runner {
	return &Runner{
		aggregator: agg,
		enricher:   enricher,
		store:      jobs,
		ids:        ids,
		notifier:   notifier,
		runs:       runs,
	}
}

func runKey(id string) string { return "run:" + id }

// GetRun loads a run's state.
func (r *Runner) GetRun(ctx context.Context, id string) (*Run, error) {
	raw, err := r.runs.Get(ctx, runKey(id))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}
	var run Run
	if err := json.Unmarshal([]byte(raw), &run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &run, nil
}

func (r *Runner) saveRun(ctx context.Context, run *Run) {
	raw, err := json.Marshal(run)
	if err != nil {
		log.Printf("[pipeline] encode run %s: %v", run.ID, err)
		return
	}
	if err := r.runs.Set(ctx, runKey(run.ID), string(raw), runStateTTL); err != nil {
		log.Printf("[pipeline] store run %s: %v", run.ID, err)
	}
}

// StartDiscovery launches a background discovery+enrichment run and returns
// its ID immediately.
func (r *Runner) StartDiscovery(req discovery.Request, opts EnrichOptions) string {
	run := &Run{ID: uuid.NewString(), Kind: "discover", Status: RunRunning, StartedAt: time.Now()}
	r.saveRun(context.Background(), run)

	go func() {
		// Detached from the request context: the trigger returned 202 and
		// the run must outlive it.
		ctx := context.Background()
		summary, err := r.runDiscovery(ctx, req, opts)
		r.finishRun(ctx, run, summary, err)
	}()
	return run.ID
}

func (r *Runner) runDiscovery(ctx context.Context, req discovery.Request, opts EnrichOptions) (*types.RunSummary, error) {
	discovered, diags := r.aggregator.Discover(ctx, req)
	for platform, d := range diags {
		if d.Err != nil {
			log.Printf("[pipeline] %s contributed %d records: %v", platform, d.Count, d.Err)
		}
	}

	stored, err := r.store.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored jobs: %w", err)
	}

	fresh := MergeNew(stored, discovered, r.ids, time.Now())
	log.Printf("[pipeline] discovered %d records, %d new after merge", len(discovered), len(fresh))

	summary := r.enricher.Enrich(ctx, fresh, opts)
	summary.Discovered = len(discovered)
	summary.NewRecords = len(fresh)
	return summary, nil
}

// StartEnrich launches a background enrichment-only run over an explicit
// record set, or over every stored record when forceAll is set.
func (r *Runner) StartEnrich(jobIDs []string, forceAll bool, opts EnrichOptions) string {
	run := &Run{ID: uuid.NewString(), Kind: "enrich", Status: RunRunning, StartedAt: time.Now()}
	r.saveRun(context.Background(), run)

	go func() {
		ctx := context.Background()
		summary, err := r.runEnrich(ctx, jobIDs, forceAll, opts)
		r.finishRun(ctx, run, summary, err)
	}()
	return run.ID
}

func (r *Runner) runEnrich(ctx context.Context, jobIDs []string, forceAll bool, opts EnrichOptions) (*types.RunSummary, error) {
	stored, err := r.store.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored jobs: %w", err)
	}

	var targets []types.Job
	if forceAll {
		targets = stored
	} else {
		wanted := make(map[string]bool, len(jobIDs))
		for _, id := range jobIDs {
			wanted[id] = true
		}
		for _, j := range stored {
			if wanted[j.ID] {
				targets = append(targets, j)
			}
		}
	}

	summary := r.enricher.Enrich(ctx, targets, opts)
	return summary, nil
}

func (r *Runner) finishRun(ctx context.Context, run *Run, summary *types.RunSummary, err error) {
	now := time.Now()
	run.FinishedAt = &now
	if err != nil {
		run.Status = RunFailed
		run.Error = err.Error()
		log.Printf("[pipeline] run %s failed: %v", run.ID, err)
		r.saveRun(ctx, run)
		return
	}

	summary.RunID = run.ID
	run.Status = RunCompleted
	run.Summary = summary
	r.saveRun(ctx, run)

	if r.notifier != nil {
		if ok := r.notifier.Notify(ctx, *summary); !ok {
			log.Printf("[pipeline] run %s: notification delivery failed", run.ID)
		}
	}
}
