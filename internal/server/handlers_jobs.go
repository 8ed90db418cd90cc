package server

import (
	"log"
	"net/http"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// StatusUpdateRequest represents the request body for PATCH /api/jobs/{id}/status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// handleListJobs returns all stored job records, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.SelectAll(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// handleGetJob returns one job record.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.fetchJob(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJobStatus moves a record through the application workflow
// (saved, applied, interview, ...). Informational only.
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusUpdateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if !types.ValidStatus(req.Status) {
		s.errorResponse(w, http.StatusBadRequest, "Unknown status: "+req.Status)
		return
	}

	id := r.PathValue("id")
	if err := s.jobs.UpdateStatus(r.Context(), id, req.Status); err != nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrJobNotFound{ID: id}).Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

// handleDeleteJob removes a record permanently.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.jobs.Delete(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete job: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleJobResumePDF serves the generated resume document.
func (s *Server) handleJobResumePDF(w http.ResponseWriter, r *http.Request) {
	job, ok := s.fetchJob(w, r)
	if !ok {
		return
	}
	s.servePDF(w, job.ID, "resume", job.ResumePDF, job.ResumeFilename)
}

// handleJobCoverPDF serves the generated cover letter document.
func (s *Server) handleJobCoverPDF(w http.ResponseWriter, r *http.Request) {
	job, ok := s.fetchJob(w, r)
	if !ok {
		return
	}
	s.servePDF(w, job.ID, "cover letter", job.CoverPDF, job.CoverFilename)
}

// fetchJob loads the job named by the {id} path segment, writing the 404
// itself when absent.
func (s *Server) fetchJob(w http.ResponseWriter, r *http.Request) (*types.Job, bool) {
	id := r.PathValue("id")
	job, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load job: "+err.Error())
		return nil, false
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrJobNotFound{ID: id}).Error())
		return nil, false
	}
	return job, true
}

func (s *Server) servePDF(w http.ResponseWriter, jobID, kind string, pdf []byte, filename string) {
	if len(pdf) == 0 {
		s.errorResponse(w, http.StatusNotFound, (&ErrArtifactNotFound{JobID: jobID, Kind: kind}).Error())
		return
	}
	if filename == "" {
		filename = "document.pdf"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF response for %s: %v", jobID, err)
	}
}
