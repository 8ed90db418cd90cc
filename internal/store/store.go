// Package store persists job records. The Postgres implementation is the
// production backend; an in-memory implementation serves tests and runs
// without a configured database.
package store

import (
	"context"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// JobStore is the persistence contract for job records. Upsert is keyed by
// ID only; no transactional guarantees beyond row-level upsert are required.
type JobStore interface {
	Upsert(ctx context.Context, jobs []types.Job) error
	SelectAll(ctx context.Context) ([]types.Job, error)
	Get(ctx context.Context, id string) (*types.Job, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
