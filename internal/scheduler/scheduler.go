// Package scheduler triggers periodic discovery runs on a cron spec.
package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/discovery"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/pipeline"
)

// Scheduler owns the cron loop for recurring discovery runs.
type Scheduler struct {
	cron   *cron.Cron
	runner *pipeline.Runner
}

// New creates an idle scheduler.
func New(runner *pipeline.Runner) *Scheduler {
	return &Scheduler{cron: cron.New(), runner: runner}
}

// Add registers a discovery run on a cron spec (standard 5-field format).
func (s *Scheduler) Add(spec string, req discovery.Request) error {
	_, err := s.cron.AddFunc(spec, func() {
		id := s.runner.StartDiscovery(req, pipeline.EnrichOptions{})
		log.Printf("[scheduler] started discovery run %s (keywords=%q location=%q)", id, req.Keywords, req.Location)
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// Start begins executing scheduled runs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling. Runs already started keep going.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
