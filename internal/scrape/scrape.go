// Package scrape implements one source adapter per supported job board.
// Adapters are best-effort: board markup is unstable and unversioned, so each
// adapter tries an ordered chain of extraction strategies and degrades
// silently to partial results rather than failing hard.
package scrape

import (
	"context"
	"fmt"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Query is one discovery request as seen by a single adapter.
type Query struct {
	Keywords   string
	Location   string
	MaxAgeDays int
}

// Adapter queries one external job board and normalizes results into RawJob
// records. Implementations must not panic past their boundary and must not
// retry; timeouts are the caller's responsibility.
type Adapter interface {
	Platform() types.Platform
	Scrape(ctx context.Context, q Query) ([]types.RawJob, error)
}

// Registry holds the available adapters keyed by platform.
type Registry struct {
	adapters map[types.Platform]Adapter
}

// NewRegistry builds a registry with the default adapter set.
func NewRegistry(opts *Options) *Registry {
	r := &Registry{adapters: make(map[types.Platform]Adapter)}
	r.Register(NewIndeedAdapter(opts))
	r.Register(NewLinkedInAdapter(opts))
	r.Register(NewJobStreetAdapter(opts))
	r.Register(NewWorkableAdapter(opts))
	r.Register(NewGlassdoorAdapter(opts))
	return r
}

// Register adds or replaces an adapter.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Platform()] = a
}

// Get returns the adapter for a platform.
func (r *Registry) Get(p types.Platform) (Adapter, bool) {
	a, ok := r.adapters[p]
	return a, ok
}

// Platforms returns the registered platforms in the canonical order.
func (r *Registry) Platforms() []types.Platform {
	var out []types.Platform
	for _, p := range types.AllPlatforms() {
		if _, ok := r.adapters[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Run invokes an adapter with a panic guard so a parser bug in one board can
// never take down a discovery run.
func Run(ctx context.Context, a Adapter, q Query) (jobs []types.RawJob, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			jobs = nil
			err = fmt.Errorf("%s adapter panicked: %v", a.Platform(), rec)
		}
	}()
	return a.Scrape(ctx, q)
}
