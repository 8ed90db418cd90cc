package server

import (
	"net/http"
)

// CoachStartRequest represents the request body for creating a coach session.
type CoachStartRequest struct {
	Company  string `json:"company,omitempty"`
	RoleType string `json:"role_type,omitempty"`
}

// CoachMessageRequest represents one question sent to a coach session.
type CoachMessageRequest struct {
	Question string `json:"question" validate:"required"`
}

// handleCoachStart opens a new interview coach session.
func (s *Server) handleCoachStart(w http.ResponseWriter, r *http.Request) {
	var req CoachStartRequest
	if !s.requireCoach(w) || !s.decodeAndValidate(w, r, &req) {
		return
	}

	session, err := s.coach.Start(r.Context(), req.Company, req.RoleType)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, session)
}

// handleCoachAsk appends a question and returns the session with the
// coach's answer.
func (s *Server) handleCoachAsk(w http.ResponseWriter, r *http.Request) {
	var req CoachMessageRequest
	if !s.requireCoach(w) || !s.decodeAndValidate(w, r, &req) {
		return
	}

	session, err := s.coach.Ask(r.Context(), r.PathValue("id"), req.Question)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}

// handleCoachGet returns the session transcript.
func (s *Server) handleCoachGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoach(w) {
		return
	}

	session, err := s.coach.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}

// handleCoachEnd discards the session.
func (s *Server) handleCoachEnd(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoach(w) {
		return
	}

	if err := s.coach.End(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireCoach writes the 503 when no LLM client is configured.
func (s *Server) requireCoach(w http.ResponseWriter) bool {
	if s.coach == nil {
		s.notConfiguredResponse(w, "llm")
		return false
	}
	return true
}
