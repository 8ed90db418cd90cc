package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/scrape"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

type stubAdapter struct {
	platform types.Platform
	jobs     []types.RawJob
	err      error
	delay    time.Duration
}

func (s *stubAdapter) Platform() types.Platform { return s.platform }

func (s *stubAdapter) Scrape(ctx context.Context, _ scrape.Query) ([]types.RawJob, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.jobs, s.err
}

func registryOf(adapters ...*stubAdapter) *scrape.Registry {
	r := scrape.NewRegistry(nil)
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

func TestDiscover_MergesAcrossPlatforms(t *testing.T) {
	indeed := &stubAdapter{platform: types.PlatformIndeed, jobs: []types.RawJob{
		{Role: "Product Owner", Company: "Acme", URL: "https://indeed.com/job/1", Platform: types.PlatformIndeed},
	}}
	linkedin := &stubAdapter{platform: types.PlatformLinkedIn, jobs: []types.RawJob{
		{Role: "Product Manager", Company: "Globex", URL: "https://linkedin.com/jobs/view/pm-2", LinkedInID: "2", Platform: types.PlatformLinkedIn},
	}}

	a := NewAggregator(registryOf(indeed, linkedin), false)
	jobs, diags := a.Discover(context.Background(), Request{
		Keywords:  "product",
		Location:  "Singapore",
		Platforms: []types.Platform{types.PlatformIndeed, types.PlatformLinkedIn},
	})

	require.Len(t, jobs, 2)
	// Canonical platform ordering is stable across runs.
	assert.Equal(t, types.PlatformIndeed, jobs[0].Platform)
	assert.Equal(t, types.PlatformLinkedIn, jobs[1].Platform)

	assert.Equal(t, 1, diags[types.PlatformIndeed].Count)
	assert.NoError(t, diags[types.PlatformIndeed].Err)
}

func TestDiscover_FailingPlatformContributesDiagnosticOnly(t *testing.T) {
	ok := &stubAdapter{platform: types.PlatformIndeed, jobs: []types.RawJob{
		{Role: "PM", Company: "Acme", Platform: types.PlatformIndeed},
	}}
	broken := &stubAdapter{platform: types.PlatformGlassdoor, err: errors.New("blocked: 403")}

	a := NewAggregator(registryOf(ok, broken), false)
	jobs, diags := a.Discover(context.Background(), Request{
		Platforms: []types.Platform{types.PlatformIndeed, types.PlatformGlassdoor},
	})

	require.Len(t, jobs, 1)
	assert.Equal(t, 0, diags[types.PlatformGlassdoor].Count)
	assert.Error(t, diags[types.PlatformGlassdoor].Err)
	assert.NoError(t, diags[types.PlatformIndeed].Err)
}

func TestDiscover_PanickingAdapterIsContained(t *testing.T) {
	r := registryOf(&stubAdapter{platform: types.PlatformIndeed, jobs: []types.RawJob{
		{Role: "PM", Company: "Acme", Platform: types.PlatformIndeed},
	}})
	r.Register(panicAdapter{})

	a := NewAggregator(r, false)
	jobs, diags := a.Discover(context.Background(), Request{
		Platforms: []types.Platform{types.PlatformIndeed, types.PlatformWorkable},
	})

	require.Len(t, jobs, 1)
	assert.ErrorContains(t, diags[types.PlatformWorkable].Err, "panicked")
}

type panicAdapter struct{}

func (panicAdapter) Platform() types.Platform { return types.PlatformWorkable }
func (panicAdapter) Scrape(context.Context, scrape.Query) ([]types.RawJob, error) {
	panic("nil selection")
}

func TestDedup_FirstSeenWins(t *testing.T) {
	in := []types.RawJob{
		{Role: "Product Owner", Company: "Acme", URL: "https://indeed.com/job/1?from=serp", Platform: types.PlatformIndeed},
		// Same posting, different tracking params.
		{Role: "Product Owner", Company: "Acme", URL: "https://indeed.com/job/1?from=email", Platform: types.PlatformIndeed},
		// Same job cross-posted on LinkedIn with a different URL.
		{Role: "product owner", Company: " ACME ", URL: "https://linkedin.com/jobs/view/po-77", LinkedInID: "77", Platform: types.PlatformLinkedIn},
		{Role: "Data Analyst", Company: "Globex", URL: "https://linkedin.com/jobs/view/da-88", LinkedInID: "88", Platform: types.PlatformLinkedIn},
		// Same LinkedIn posting seen through a mirror URL.
		{Role: "Data Analyst II", Company: "Globex", URL: "https://sg.linkedin.com/jobs/view/da-88", LinkedInID: "88", Platform: types.PlatformLinkedIn},
	}

	out := Dedup(in)
	require.Len(t, out, 2)
	assert.Equal(t, "https://indeed.com/job/1?from=serp", out[0].URL)
	assert.Equal(t, "Data Analyst", out[1].Role)

	// Idempotent.
	assert.Equal(t, out, Dedup(out))
}

func TestDedup_EmptyURLNeverCollides(t *testing.T) {
	in := []types.RawJob{
		{Role: "PM", Company: "Acme"},
		{Role: "Engineer", Company: "Globex"},
		{Role: "PM", Company: "Initech"},
	}
	out := Dedup(in)
	assert.Len(t, out, 3)
}

func TestFilterByAge_Advisory(t *testing.T) {
	three, forty := 3, 40
	in := []types.RawJob{
		{Role: "Fresh", PostedDaysAgo: &three},
		{Role: "Stale", PostedDaysAgo: &forty},
		{Role: "Unknown"},
	}

	out := FilterByAge(in, 30)
	require.Len(t, out, 2)
	assert.Equal(t, "Fresh", out[0].Role)
	assert.Equal(t, "Unknown", out[1].Role)

	// Zero disables the filter entirely.
	assert.Len(t, FilterByAge(in, 0), 3)
}

func TestDiscover_SlowAdapterTimesOut(t *testing.T) {
	t.Parallel()

	fast := &stubAdapter{platform: types.PlatformIndeed, jobs: []types.RawJob{
		{Role: "PM", Company: "Acme", Platform: types.PlatformIndeed},
	}}
	slow := &stubAdapter{platform: types.PlatformJobStreet, delay: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	a := NewAggregator(registryOf(fast, slow), false)
	jobs, diags := a.Discover(ctx, Request{
		Platforms: []types.Platform{types.PlatformIndeed, types.PlatformJobStreet},
	})

	require.Len(t, jobs, 1)
	assert.ErrorIs(t, diags[types.PlatformJobStreet].Err, context.DeadlineExceeded)
}
