package server

import (
	"net/http"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/discovery"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/pipeline"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// DiscoverRequest represents the request body for /api/discover.
type DiscoverRequest struct {
	Keywords   string   `json:"keywords,omitempty"`
	Location   string   `json:"location,omitempty"`
	MaxAgeDays int      `json:"max_age_days,omitempty"`
	Platforms  []string `json:"platforms" validate:"required,min=1"`
}

// EnrichRequest represents the request body for /api/enrich.
type EnrichRequest struct {
	JobIDs       []string `json:"job_ids,omitempty"`
	ForceAll     bool     `json:"force_all,omitempty"`
	ForceRescore bool     `json:"force_rescore,omitempty"`
}

// RunResponse represents the 202 response for run triggers.
type RunResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// handleDiscover starts a discovery+enrichment run in the background and
// returns immediately.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	var req DiscoverRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	platforms := make([]types.Platform, 0, len(req.Platforms))
	for _, raw := range req.Platforms {
		p, ok := types.ParsePlatform(raw)
		if !ok {
			s.errorResponse(w, http.StatusBadRequest, "Unknown platform: "+raw)
			return
		}
		platforms = append(platforms, p)
	}

	// Fall back to configured search defaults.
	if req.Keywords == "" {
		req.Keywords = s.cfg.Keywords
	}
	if req.Location == "" {
		req.Location = s.cfg.Location
	}
	if req.MaxAgeDays == 0 {
		req.MaxAgeDays = s.cfg.MaxAgeDays
	}

	runID := s.runner.StartDiscovery(discovery.Request{
		Keywords:   req.Keywords,
		Location:   req.Location,
		MaxAgeDays: req.MaxAgeDays,
		Platforms:  platforms,
	}, pipeline.EnrichOptions{})

	s.jsonResponse(w, http.StatusAccepted, RunResponse{RunID: runID, Status: "accepted"})
}

// handleEnrich starts an enrichment-only run over stored records.
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req EnrichRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	if len(req.JobIDs) == 0 && !req.ForceAll {
		s.errorResponse(w, http.StatusBadRequest, "Either job_ids or force_all is required")
		return
	}

	runID := s.runner.StartEnrich(req.JobIDs, req.ForceAll, pipeline.EnrichOptions{
		ForceRescore: req.ForceRescore,
	})

	s.jsonResponse(w, http.StatusAccepted, RunResponse{RunID: runID, Status: "accepted"})
}

// handleGetRun returns the state of a previously triggered run.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runner.GetRun(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}
