package server

import (
	"encoding/json"
	"net/http"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// ProfileResponse wraps the active profile with its origin.
type ProfileResponse struct {
	Profile types.Profile `json:"profile"`
	Custom  bool          `json:"custom"`
}

// handleGetProfile returns the profile currently used in prompts.
func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, ProfileResponse{
		Profile: s.profiles.Active(),
		Custom:  s.profiles.UsingCustom(),
	})
}

// handlePutProfile installs a custom candidate profile, replacing the
// built-in default for all subsequent scoring and drafting.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p types.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.profiles.SetCustom(p); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ProfileResponse{Profile: s.profiles.Active(), Custom: true})
}

// handleDeleteProfile reverts to the built-in default profile.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, _ *http.Request) {
	s.profiles.ClearCustom()
	w.WriteHeader(http.StatusNoContent)
}
