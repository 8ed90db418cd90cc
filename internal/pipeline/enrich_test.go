package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/profile"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/render"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/store"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

type scriptedScorer struct {
	results map[string]types.ScoreResult
	errs    map[string]error
	calls   []string
}

func (s *scriptedScorer) Score(_ context.Context, job types.Job, _ types.Profile) (types.ScoreResult, error) {
	s.calls = append(s.calls, job.ID)
	if err, ok := s.errs[job.ID]; ok {
		return types.ScoreResult{}, err
	}
	return s.results[job.ID], nil
}

type stubRenderer struct {
	calls int
	err   error
}

func (s *stubRenderer) Render(_ context.Context, req render.Request, _ types.Profile) (*render.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &render.Result{
		ResumePDF: []byte("%PDF-resume"), ResumeFilename: "resume.pdf",
		CoverPDF: []byte("%PDF-cover"), CoverFilename: "cover.pdf",
		VariantTag: "product-transition",
	}, nil
}

func alwaysScorable(types.Job) bool { return true }

func newEnricher(scorer Scorer, renderer render.Renderer, s store.JobStore) *Enricher {
	return NewEnricher(scorer, renderer, s, profile.NewManager(), alwaysScorable)
}

func longDesc() string {
	return "Own the product backlog for a core lending platform, partnering with engineering and design."
}

func TestEnrich_VisaRestrictionPersistsScoreZero(t *testing.T) {
	mem := store.NewMemory()
	scorer := &scriptedScorer{results: map[string]types.ScoreResult{
		"job-1": {Score: 0, Label: "No sponsorship", Reason: "Citizens only.", Priority: "Skip"},
	}}
	renderer := &stubRenderer{}

	e := newEnricher(scorer, renderer, mem)
	summary := e.Enrich(context.Background(), []types.Job{
		{ID: "job-1", Role: "PM", Platform: types.PlatformIndeed, Description: longDesc()},
	}, EnrichOptions{})

	assert.Equal(t, 1, summary.Scored)
	assert.Equal(t, 0, summary.DocsGenerated)
	assert.Zero(t, renderer.calls, "score 0 must never reach the renderer")

	got, err := mem.Get(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, got.AIScore)
	assert.Equal(t, 0, *got.AIScore)
	assert.Equal(t, "Skip", got.AIPriority)
}

func TestEnrich_PartialFailureIsolation(t *testing.T) {
	mem := store.NewMemory()
	scorer := &scriptedScorer{
		results: map[string]types.ScoreResult{
			"job-1": {Score: 8, Label: "Strong", Priority: "High"},
			"job-3": {Score: 6, Label: "Good", Priority: "Medium"},
		},
		errs: map[string]error{"job-2": errors.New("model overloaded")},
	}

	e := newEnricher(scorer, &stubRenderer{}, mem)
	jobs := []types.Job{
		{ID: "job-1", Role: "PM", Platform: types.PlatformIndeed, Description: longDesc()},
		{ID: "job-2", Role: "BA", Platform: types.PlatformLinkedIn, Description: longDesc()},
		{ID: "job-3", Role: "PO", Platform: types.PlatformWorkable, Description: longDesc()},
	}
	summary := e.Enrich(context.Background(), jobs, EnrichOptions{})

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 2, summary.Scored)
	assert.Equal(t, 2, summary.DocsGenerated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "job-2")

	// All three records were persisted, the failed one without score fields.
	for _, id := range []string{"job-1", "job-2", "job-3"} {
		got, err := mem.Get(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, got, id)
	}
	failed, _ := mem.Get(context.Background(), "job-2")
	assert.Nil(t, failed.AIScore)

	// Top matches sorted by score.
	require.Len(t, summary.TopMatches, 2)
	assert.Equal(t, "job-1", summary.TopMatches[0].ID)
	assert.Equal(t, 8, summary.TopMatches[0].Score)
}

func TestEnrich_MonotoneSkips(t *testing.T) {
	mem := store.NewMemory()
	seven := 7
	now := time.Now()

	scorer := &scriptedScorer{results: map[string]types.ScoreResult{
		"job-1": {Score: 9, Label: "Rescored", Priority: "High"},
	}}
	renderer := &stubRenderer{}
	e := newEnricher(scorer, renderer, mem)

	alreadyDone := types.Job{
		ID: "job-1", Role: "PM", Platform: types.PlatformIndeed, Description: longDesc(),
		AIScore: &seven, AILabel: "Strong",
		ResumePDF: []byte("%PDF"), ResumeFilename: "resume.pdf", ResumeGeneratedAt: &now,
	}

	summary := e.Enrich(context.Background(), []types.Job{alreadyDone}, EnrichOptions{})
	assert.Empty(t, scorer.calls, "scored records are not rescored")
	assert.Zero(t, renderer.calls, "artifacts are generated at most once")
	assert.Equal(t, 0, summary.Scored)
	assert.Equal(t, 0, summary.DocsGenerated)

	// Force-rescore runs scoring again but still never regenerates documents.
	summary = e.Enrich(context.Background(), []types.Job{alreadyDone}, EnrichOptions{ForceRescore: true})
	assert.Equal(t, []string{"job-1"}, scorer.calls)
	assert.Equal(t, 1, summary.Scored)
	assert.Zero(t, renderer.calls)

	got, _ := mem.Get(context.Background(), "job-1")
	assert.Equal(t, 9, *got.AIScore)
}

func TestEnrich_ScoreBelowThresholdSkipsDocs(t *testing.T) {
	renderer := &stubRenderer{}
	scorer := &scriptedScorer{results: map[string]types.ScoreResult{
		"job-1": {Score: 4, Label: "Weak", Priority: "Low"},
	}}

	e := newEnricher(scorer, renderer, store.NewMemory())
	summary := e.Enrich(context.Background(), []types.Job{
		{ID: "job-1", Role: "PM", Platform: types.PlatformIndeed, Description: longDesc()},
	}, EnrichOptions{})

	assert.Equal(t, 1, summary.Scored)
	assert.Zero(t, renderer.calls)
}

func TestEnrich_RendererFailureIsSoft(t *testing.T) {
	mem := store.NewMemory()
	scorer := &scriptedScorer{results: map[string]types.ScoreResult{
		"job-1": {Score: 8, Label: "Strong", Priority: "High"},
	}}

	e := newEnricher(scorer, &stubRenderer{err: errors.New("chrome timeout")}, mem)
	summary := e.Enrich(context.Background(), []types.Job{
		{ID: "job-1", Role: "PM", Platform: types.PlatformIndeed, Description: longDesc()},
	}, EnrichOptions{})

	assert.Equal(t, 1, summary.Scored)
	assert.Equal(t, 0, summary.DocsGenerated)
	require.Len(t, summary.Errors, 1)

	// Score survived even though rendering failed.
	got, _ := mem.Get(context.Background(), "job-1")
	require.NotNil(t, got.AIScore)
	assert.Equal(t, 8, *got.AIScore)
	assert.Empty(t, got.ResumePDF)
}
