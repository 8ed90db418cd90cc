package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/cache"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/coach"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/discovery"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/drafts"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/llm"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/pipeline"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/profile"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/render"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/scrape"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/store"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

type fixedAdapter struct {
	platform types.Platform
	jobs     []types.RawJob
}

func (f *fixedAdapter) Platform() types.Platform { return f.platform }
func (f *fixedAdapter) Scrape(context.Context, scrape.Query) ([]types.RawJob, error) {
	return f.jobs, nil
}

type stubLLM struct {
	reply func(prompt string) (string, error)
}

func (s *stubLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return s.reply(prompt)
}

func (s *stubLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return s.reply(prompt)
}

func (s *stubLLM) Close() error { return nil }

type stubScorer struct{}

func (stubScorer) Score(context.Context, types.Job, types.Profile) (types.ScoreResult, error) {
	return types.ScoreResult{Score: 7, Label: "Fit", Priority: "High"}, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(context.Context, render.Request, types.Profile) (*render.Result, error) {
	return &render.Result{ResumePDF: []byte("%PDF"), ResumeFilename: "resume.pdf"}, nil
}

type silentNotifier struct{}

func (silentNotifier) Notify(context.Context, types.RunSummary) bool { return true }

// newTestServer wires a server over in-memory collaborators and a stub LLM.
func newTestServer(t *testing.T, adapters ...*fixedAdapter) (*Server, *store.Memory) {
	t.Helper()

	registry := scrape.NewRegistry(nil)
	for _, a := range adapters {
		registry.Register(a)
	}

	mem := store.NewMemory()
	profiles := profile.NewManager()
	client := &stubLLM{reply: func(string) (string, error) { return "drafted text", nil }}

	enricher := pipeline.NewEnricher(stubScorer{}, stubRenderer{}, mem, profiles, func(types.Job) bool { return false })
	runner := pipeline.NewRunner(
		discovery.NewAggregator(registry, false),
		enricher, mem, store.NewIDGenerator(), silentNotifier{}, cache.NewMemory(),
	)

	srv := New(Config{Port: 0, Keywords: "product owner", Location: "Singapore", MaxAgeDays: 30}, Deps{
		Jobs:     mem,
		Runner:   runner,
		Drafter:  drafts.NewDrafter(client),
		Coach:    coach.New(cache.NewMemory(), client, profiles),
		Profiles: profiles,
	})
	t.Cleanup(func() { srv.rateLimiter.Stop() })
	return srv, mem
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestDiscover_AcceptedAndRuns(t *testing.T) {
	srv, mem := newTestServer(t, &fixedAdapter{
		platform: types.PlatformIndeed,
		jobs: []types.RawJob{
			{Role: "Product Owner", Company: "Acme", URL: "https://indeed.com/job/1", Platform: types.PlatformIndeed},
		},
	})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/discover", map[string]any{
		"platforms": []string{"indeed"},
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "accepted", body["status"])
	runID, _ := body["run_id"].(string)
	require.NotEmpty(t, runID)

	// The run completes in the background and the record lands in the store.
	require.Eventually(t, func() bool {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/runs/"+runID, nil)
		if rec.Code != http.StatusOK {
			return false
		}
		return decodeBody(t, rec)["status"] == pipeline.RunCompleted
	}, 5*time.Second, 10*time.Millisecond)

	jobs, err := mem.SelectAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestDiscover_MissingPlatforms(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/discover", map[string]any{
		"keywords": "product owner",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/discover", map[string]any{
		"platforms": []string{"monster"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "monster")
}

func TestEnrich_RequiresTarget(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/enrich", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/enrich", map[string]any{"force_all": true})
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestGetRun_Unknown(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/runs/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobs_CRUD(t *testing.T) {
	srv, mem := newTestServer(t)
	ctx := context.Background()

	job := types.Job{ID: "job-1", Role: "Product Owner", Company: "Acme", Status: types.StatusSaved}
	require.NoError(t, mem.Upsert(ctx, []types.Job{job}))

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/jobs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody(t, rec)["count"])

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/jobs/job-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme", decodeBody(t, rec)["company"])

	rec = doJSON(t, srv.Handler(), http.MethodPatch, "/api/jobs/job-1/status", map[string]string{"status": "applied"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPatch, "/api/jobs/job-1/status", map[string]string{"status": "ghosted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodDelete, "/api/jobs/job-1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/jobs/job-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobPDF(t *testing.T) {
	srv, mem := newTestServer(t)
	ctx := context.Background()

	withDoc := types.Job{
		ID: "job-1", Role: "PO", Status: types.StatusSaved,
		ResumePDF: []byte("%PDF-1.4 fake"), ResumeFilename: "resume-acme.pdf",
	}
	bare := types.Job{ID: "job-2", Role: "BA", Status: types.StatusSaved}
	require.NoError(t, mem.Upsert(ctx, []types.Job{withDoc, bare}))

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/jobs/job-1/resume.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "resume-acme.pdf")
	assert.Equal(t, "%PDF-1.4 fake", rec.Body.String())

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/jobs/job-2/resume.pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/jobs/job-1/cover.pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "cover letter was never generated")
}

func TestDrafts_Endpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/drafts/resume", map[string]string{
		"role": "AI Product Manager", "company": "Acme", "jd": "Build LLM-powered features",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "drafted text", body["text"])
	assert.Equal(t, true, body["is_ai_role"])

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/drafts/cover-letter", map[string]string{"role": "PO"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Role is required for drafts.
	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/drafts/cover-letter", map[string]string{"company": "Acme"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/drafts/full-kit", map[string]string{"role": "PO"})
	require.Equal(t, http.StatusOK, rec.Code)
	kit := decodeBody(t, rec)
	assert.Equal(t, "drafted text", kit["resume"])
	assert.Equal(t, "drafted text", kit["cover"])
	assert.Equal(t, "drafted text", kit["prep"])

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/drafts/generic", map[string]string{"prompt": "say hi"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDrafts_NotConfigured(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.drafter = nil

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/drafts/resume", map[string]string{"role": "PO"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "not configured", body["error"])
	assert.Equal(t, "llm", body["what"])
}

func TestCoach_SessionLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/coach/sessions", map[string]string{
		"company": "Acme", "role_type": "Product Owner",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID, _ := decodeBody(t, rec)["id"].(string)
	require.NotEmpty(t, sessionID)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/coach/sessions/"+sessionID+"/messages", map[string]string{
		"question": "How do I answer the weakness question?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/coach/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	messages, _ := decodeBody(t, rec)["messages"].([]any)
	assert.Len(t, messages, 2, "question and answer")

	rec = doJSON(t, srv.Handler(), http.MethodDelete, "/api/coach/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/coach/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfile_Endpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["custom"])

	rec = doJSON(t, srv.Handler(), http.MethodPut, "/api/profile", map[string]any{
		"name": "Custom Candidate", "headline": "Engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["custom"])

	// A nameless profile is rejected and the previous one stays active.
	rec = doJSON(t, srv.Handler(), http.MethodPut, "/api/profile", map[string]any{"headline": "Ghost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodDelete, "/api/profile", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/profile", nil)
	assert.Equal(t, false, decodeBody(t, rec)["custom"])
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit_TriggerEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fixedAdapter{platform: types.PlatformIndeed})

	body := map[string]any{"platforms": []string{"indeed"}}
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = doJSON(t, srv.Handler(), http.MethodPost, "/api/discover", body)
	}
	// Burst capacity for run triggers is 2.
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}
