// Package pipeline runs the discovery and enrichment flows: scrape, dedup
// against stored records, score, generate documents, persist, notify.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/render"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/store"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

const (
	// ScoreThreshold is the minimum AI score that earns document generation.
	ScoreThreshold = 5
	// TopMatchCount is how many high scorers the run summary surfaces.
	TopMatchCount = 5
)

// Scorer rates one job against the active profile. Satisfied by
// scoring.Scorer; stubbed in tests.
type Scorer interface {
	Score(ctx context.Context, job types.Job, profile types.Profile) (types.ScoreResult, error)
}

// ProfileProvider yields the active candidate profile.
type ProfileProvider interface {
	Active() types.Profile
}

// EnrichOptions tune one enrichment pass.
type EnrichOptions struct {
	// ForceRescore re-runs scoring even for records that already carry a
	// score. Document generation still happens at most once.
	ForceRescore bool
}

// Enricher drives the per-record stage machine: score, generate, persist.
type Enricher struct {
	scorer   Scorer
	renderer render.Renderer
	store    store.JobStore
	profiles ProfileProvider
	scorable func(types.Job) bool
}

// NewEnricher wires the enrichment collaborators.
func NewEnricher(scorer Scorer, renderer render.Renderer, jobs store.JobStore, profiles ProfileProvider, scorable func(types.Job) bool) *Enricher {
	return &Enricher{
		scorer:   scorer,
		renderer: renderer,
		store:    jobs,
		profiles: profiles,
		scorable: scorable,
	}
}

// Enrich processes records sequentially. Every failure is soft and isolated:
// one record's scoring or rendering error never stops the others, and
// persistence is always attempted so partial progress survives.
func (e *Enricher) Enrich(ctx context.Context, jobs []types.Job, opts EnrichOptions) *types.RunSummary {
	summary := &types.RunSummary{StartedAt: time.Now(), Processed: len(jobs)}
	profile := e.profiles.Active()

	for i := range jobs {
		job := &jobs[i]

		e.scoreStage(ctx, job, profile, opts, summary)
		e.generateStage(ctx, job, profile, summary)

		if err := e.store.Upsert(ctx, []types.Job{*job}); err != nil {
			msg := fmt.Sprintf("persist %s: %v", job.ID, err)
			log.Printf("[pipeline] %s", msg)
			summary.Errors = append(summary.Errors, msg)
		}
	}

	summary.TopMatches = topMatches(jobs, TopMatchCount)
	summary.FinishedAt = time.Now()
	return summary
}

func (e *Enricher) scoreStage(ctx context.Context, job *types.Job, profile types.Profile, opts EnrichOptions, summary *types.RunSummary) {
	if job.Scored() && !opts.ForceRescore {
		return
	}
	if !e.scorable(*job) {
		return
	}

	result, err := e.scorer.Score(ctx, *job, profile)
	if err != nil {
		msg := fmt.Sprintf("score %s: %v", job.ID, err)
		log.Printf("[pipeline] %s", msg)
		summary.Errors = append(summary.Errors, msg)
		return
	}

	score := result.Score
	job.AIScore = &score
	job.AILabel = result.Label
	job.AIReason = result.Reason
	job.AIPriority = result.Priority
	job.UpdatedAt = time.Now()
	summary.Scored++
}

func (e *Enricher) generateStage(ctx context.Context, job *types.Job, profile types.Profile, summary *types.RunSummary) {
	if !job.Scored() || *job.AIScore < ScoreThreshold || job.HasArtifacts() {
		return
	}
	if e.renderer == nil {
		// Deployments without an LLM key score nothing new, but records scored
		// on a previous run could still land here.
		return
	}

	result, err := e.renderer.Render(ctx, render.Request{
		Role:        job.Role,
		Company:     job.Company,
		Description: job.Description,
		RoleType:    job.Role,
	}, profile)
	if err != nil {
		msg := fmt.Sprintf("render %s: %v", job.ID, err)
		log.Printf("[pipeline] %s", msg)
		summary.Errors = append(summary.Errors, msg)
		return
	}

	now := time.Now()
	job.ResumePDF = result.ResumePDF
	job.ResumeFilename = result.ResumeFilename
	job.CoverPDF = result.CoverPDF
	job.CoverFilename = result.CoverFilename
	job.ResumeVariant = result.VariantTag
	job.ResumeGeneratedAt = &now
	job.UpdatedAt = now
	summary.DocsGenerated++
}

func topMatches(jobs []types.Job, n int) []types.TopMatch {
	var scored []types.Job
	for _, j := range jobs {
		if j.Scored() {
			scored = append(scored, j)
		}
	}
	sort.SliceStable(scored, func(i, k int) bool {
		return *scored[i].AIScore > *scored[k].AIScore
	})
	if len(scored) > n {
		scored = scored[:n]
	}

	var out []types.TopMatch
	for _, j := range scored {
		out = append(out, types.TopMatch{
			ID:      j.ID,
			Role:    j.Role,
			Company: j.Company,
			URL:     j.URL,
			Score:   *j.AIScore,
			Label:   j.AILabel,
		})
	}
	return out
}
