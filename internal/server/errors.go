package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/coach"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/llm"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/pipeline"
)

// ErrJobNotFound indicates the requested job record does not exist.
type ErrJobNotFound struct {
	ID string
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.ID)
}

// ErrArtifactNotFound indicates the job exists but the requested document
// has not been generated for it.
type ErrArtifactNotFound struct {
	JobID string
	Kind  string
}

func (e *ErrArtifactNotFound) Error() string {
	return fmt.Sprintf("no %s generated for job %s", e.Kind, e.JobID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	if errors.Is(err, llm.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, pipeline.ErrRunNotFound) || errors.Is(err, coach.ErrSessionNotFound) {
		return http.StatusNotFound
	}

	switch err.(type) {
	case *ErrJobNotFound, *ErrArtifactNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
