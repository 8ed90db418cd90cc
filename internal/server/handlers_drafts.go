package server

import (
	"net/http"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/drafts"
)

// DraftRequest represents the request body for the draft endpoints.
type DraftRequest struct {
	Role     string `json:"role" validate:"required"`
	Company  string `json:"company,omitempty"`
	RoleType string `json:"role_type,omitempty"`
	JD       string `json:"jd,omitempty"`
	// DaysSince applies only to follow-up drafts.
	DaysSince int `json:"days_since,omitempty"`
}

// GenericDraftRequest represents the request body for /api/drafts/generic.
type GenericDraftRequest struct {
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt" validate:"required"`
}

// DraftResponse represents a single-document draft response.
type DraftResponse struct {
	Text     string `json:"text"`
	IsAIRole bool   `json:"is_ai_role,omitempty"`
}

func (r DraftRequest) toDrafts() drafts.Request {
	return drafts.Request{
		Role:     r.Role,
		Company:  r.Company,
		RoleType: r.RoleType,
		JD:       r.JD,
	}
}

// handleDraftResume drafts a tailored resume as text.
func (s *Server) handleDraftResume(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if !s.requireDrafter(w) || !s.decodeAndValidate(w, r, &req) {
		return
	}

	text, isAIRole, err := s.drafter.TailorResume(r.Context(), req.toDrafts(), s.profiles.Active())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, DraftResponse{Text: text, IsAIRole: isAIRole})
}

// handleDraftCoverLetter drafts the 300-350 word cover letter.
func (s *Server) handleDraftCoverLetter(w http.ResponseWriter, r *http.Request) {
	s.singleDraft(w, r, func(req drafts.Request) (string, error) {
		return s.drafter.CoverLetter(r.Context(), req, s.profiles.Active())
	})
}

// handleDraftInterviewPrep drafts the structured interview prep guide.
func (s *Server) handleDraftInterviewPrep(w http.ResponseWriter, r *http.Request) {
	s.singleDraft(w, r, func(req drafts.Request) (string, error) {
		return s.drafter.InterviewPrep(r.Context(), req, s.profiles.Active())
	})
}

// handleDraftFollowUp drafts a short follow-up email.
func (s *Server) handleDraftFollowUp(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if !s.requireDrafter(w) || !s.decodeAndValidate(w, r, &req) {
		return
	}

	text, err := s.drafter.FollowUp(r.Context(), req.toDrafts(), s.profiles.Active(), req.DaysSince)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, DraftResponse{Text: text})
}

// handleDraftSpeedAnswer drafts the three-sentence "why this company" answer.
func (s *Server) handleDraftSpeedAnswer(w http.ResponseWriter, r *http.Request) {
	s.singleDraft(w, r, func(req drafts.Request) (string, error) {
		return s.drafter.SpeedAnswer(r.Context(), req, s.profiles.Active())
	})
}

// handleDraftFullKit drafts resume, cover letter, and prep guide in parallel.
func (s *Server) handleDraftFullKit(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if !s.requireDrafter(w) || !s.decodeAndValidate(w, r, &req) {
		return
	}

	kit, err := s.drafter.FullKit(r.Context(), req.toDrafts(), s.profiles.Active())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, kit)
}

// handleDraftGeneric runs a free-form prompt through the LLM.
func (s *Server) handleDraftGeneric(w http.ResponseWriter, r *http.Request) {
	var req GenericDraftRequest
	if !s.requireDrafter(w) || !s.decodeAndValidate(w, r, &req) {
		return
	}

	text, err := s.drafter.Generic(r.Context(), req.System, req.Prompt)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, DraftResponse{Text: text})
}

// singleDraft handles the draft endpoints that share the plain
// request-in/text-out shape.
func (s *Server) singleDraft(w http.ResponseWriter, r *http.Request, generate func(drafts.Request) (string, error)) {
	var req DraftRequest
	if !s.requireDrafter(w) || !s.decodeAndValidate(w, r, &req) {
		return
	}

	text, err := generate(req.toDrafts())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, DraftResponse{Text: text})
}

// requireDrafter writes the 503 when no LLM client is configured.
func (s *Server) requireDrafter(w http.ResponseWriter) bool {
	if s.drafter == nil {
		s.notConfiguredResponse(w, "llm")
		return false
	}
	return true
}
