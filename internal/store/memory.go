package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Memory implements JobStore in-process, for tests and database-less runs.
type Memory struct {
	mu   sync.RWMutex
	jobs map[string]types.Job
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{jobs: make(map[string]types.Job)}
}

// Upsert implements JobStore with the same field-preservation semantics as
// the Postgres backend: empty score/artifact fields never erase stored ones.
func (m *Memory) Upsert(_ context.Context, jobs []types.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range jobs {
		if existing, ok := m.jobs[j.ID]; ok {
			j = mergePreserving(existing, j)
		}
		m.jobs[j.ID] = j
	}
	return nil
}

func mergePreserving(old, next types.Job) types.Job {
	if next.PostedDaysAgo == nil {
		next.PostedDaysAgo = old.PostedDaysAgo
	}
	if next.AIScore == nil {
		next.AIScore = old.AIScore
	}
	if next.AILabel == "" {
		next.AILabel = old.AILabel
	}
	if next.AIReason == "" {
		next.AIReason = old.AIReason
	}
	if next.AIPriority == "" {
		next.AIPriority = old.AIPriority
	}
	if len(next.ResumePDF) == 0 {
		next.ResumePDF = old.ResumePDF
	}
	if next.ResumeFilename == "" {
		next.ResumeFilename = old.ResumeFilename
	}
	if len(next.CoverPDF) == 0 {
		next.CoverPDF = old.CoverPDF
	}
	if next.CoverFilename == "" {
		next.CoverFilename = old.CoverFilename
	}
	if next.ResumeVariant == "" {
		next.ResumeVariant = old.ResumeVariant
	}
	if next.ResumeGeneratedAt == nil {
		next.ResumeGeneratedAt = old.ResumeGeneratedAt
	}
	next.CreatedAt = old.CreatedAt
	return next
}

// SelectAll implements JobStore, newest first.
func (m *Memory) SelectAll(_ context.Context) ([]types.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].ID > out[k].ID
		}
		return out[i].CreatedAt.After(out[k].CreatedAt)
	})
	return out, nil
}

// Get implements JobStore.
func (m *Memory) Get(_ context.Context, id string) (*types.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.jobs[id]; ok {
		return &j, nil
	}
	return nil, nil
}

// UpdateStatus implements JobStore.
func (m *Memory) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %s not found", id)
	}
	j.Status = status
	m.jobs[id] = j
	return nil
}

// Delete implements JobStore.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.jobs, id)
	m.mu.Unlock()
	return nil
}
