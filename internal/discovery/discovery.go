// Package discovery fans a search request out across every registered job
// board, merges the results, and removes duplicate postings before they reach
// persistence.
package discovery

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/scrape"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

const (
	// MaxConcurrentAdapters bounds the discovery fan-out.
	MaxConcurrentAdapters = 5
	// AdapterTimeout is the budget each board gets before its slice of the
	// run is abandoned.
	AdapterTimeout = 30 * time.Second
)

// Request describes one discovery run.
type Request struct {
	Keywords   string
	Location   string
	MaxAgeDays int
	// Platforms restricts the run to a subset of boards. Empty means all.
	Platforms []types.Platform
}

// Diagnostic records how one platform fared during a run.
type Diagnostic struct {
	Count int
	Err   error
}

// Aggregator runs source adapters concurrently and post-processes the merged
// result set.
type Aggregator struct {
	registry *scrape.Registry
	sem      *semaphore.Weighted
	verbose  bool
}

// NewAggregator wraps a registry of source adapters.
func NewAggregator(registry *scrape.Registry, verbose bool) *Aggregator {
	return &Aggregator{
		registry: registry,
		sem:      semaphore.NewWeighted(MaxConcurrentAdapters),
		verbose:  verbose,
	}
}

// Discover queries the selected platforms in parallel, then dedups and
// age-filters the merged list. A failing or slow board contributes zero
// records and a diagnostic; it never fails the run. Results are ordered by
// platform in the canonical order, preserving each adapter's own ordering.
func (a *Aggregator) Discover(ctx context.Context, req Request) ([]types.RawJob, map[types.Platform]Diagnostic) {
	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = a.registry.Platforms()
	}

	query := scrape.Query{
		Keywords:   req.Keywords,
		Location:   req.Location,
		MaxAgeDays: req.MaxAgeDays,
	}

	perPlatform := make([][]types.RawJob, len(platforms))
	diags := make(map[types.Platform]Diagnostic, len(platforms))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, platform := range platforms {
		adapter, ok := a.registry.Get(platform)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(i int, platform types.Platform, adapter scrape.Adapter) {
			defer wg.Done()

			if err := a.sem.Acquire(ctx, 1); err != nil {
				mu.Lock()
				diags[platform] = Diagnostic{Err: err}
				mu.Unlock()
				return
			}
			defer a.sem.Release(1)

			callCtx, cancel := context.WithTimeout(ctx, AdapterTimeout)
			defer cancel()

			jobs, err := scrape.Run(callCtx, adapter, query)
			if err != nil && a.verbose {
				log.Printf("[discovery] %s: %v", platform, err)
			}

			mu.Lock()
			perPlatform[i] = jobs
			diags[platform] = Diagnostic{Count: len(jobs), Err: err}
			mu.Unlock()
		}(i, platform, adapter)
	}
	wg.Wait()

	var merged []types.RawJob
	for _, jobs := range perPlatform {
		merged = append(merged, jobs...)
	}

	merged = FilterByAge(Dedup(merged), req.MaxAgeDays)
	if a.verbose {
		log.Printf("[discovery] %d records after dedup and age filter", len(merged))
	}
	return merged, diags
}

// FilterByAge drops records known to be older than maxAgeDays. The filter is
// advisory: records whose age could not be extracted always pass.
func FilterByAge(jobs []types.RawJob, maxAgeDays int) []types.RawJob {
	if maxAgeDays <= 0 {
		return jobs
	}
	out := jobs[:0:0]
	for _, j := range jobs {
		if j.PostedDaysAgo != nil && *j.PostedDaysAgo > maxAgeDays {
			continue
		}
		out = append(out, j)
	}
	return out
}
