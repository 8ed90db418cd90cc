// Package server provides the HTTP REST API for the job hunt backend.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/coach"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/drafts"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/pipeline"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/profile"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/server/ratelimit"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/store"
)

var validate = validator.New()

// Config holds server configuration.
type Config struct {
	Port           int
	AllowedOrigins string

	// Defaults applied to discovery requests that omit them.
	Keywords   string
	Location   string
	MaxAgeDays int
}

// Deps are the collaborators the handlers dispatch to. Drafter and Coach may
// be nil when no LLM API key is configured; their endpoints then return 503.
type Deps struct {
	Jobs     store.JobStore
	Runner   *pipeline.Runner
	Drafter  *drafts.Drafter
	Coach    *coach.Coach
	Profiles *profile.Manager
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	cfg         Config
	jobs        store.JobStore
	runner      *pipeline.Runner
	drafter     *drafts.Drafter
	coach       *coach.Coach
	profiles    *profile.Manager
	rateLimiter *ratelimit.Limiter
}

// New creates a server with its routes and middleware wired.
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		cfg:         cfg,
		jobs:        deps.Jobs,
		runner:      deps.Runner,
		drafter:     deps.Drafter,
		coach:       deps.Coach,
		profiles:    deps.Profiles,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	mux := http.NewServeMux()

	// Run triggers
	mux.HandleFunc("POST /api/discover", s.handleDiscover)
	mux.HandleFunc("POST /api/enrich", s.handleEnrich)
	mux.HandleFunc("GET /api/runs/{id}", s.handleGetRun)

	// Job records
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	mux.HandleFunc("PATCH /api/jobs/{id}/status", s.handleUpdateJobStatus)
	mux.HandleFunc("DELETE /api/jobs/{id}", s.handleDeleteJob)
	mux.HandleFunc("GET /api/jobs/{id}/resume.pdf", s.handleJobResumePDF)
	mux.HandleFunc("GET /api/jobs/{id}/cover.pdf", s.handleJobCoverPDF)

	// Drafting
	mux.HandleFunc("POST /api/drafts/resume", s.handleDraftResume)
	mux.HandleFunc("POST /api/drafts/cover-letter", s.handleDraftCoverLetter)
	mux.HandleFunc("POST /api/drafts/interview-prep", s.handleDraftInterviewPrep)
	mux.HandleFunc("POST /api/drafts/follow-up", s.handleDraftFollowUp)
	mux.HandleFunc("POST /api/drafts/speed-answer", s.handleDraftSpeedAnswer)
	mux.HandleFunc("POST /api/drafts/full-kit", s.handleDraftFullKit)
	mux.HandleFunc("POST /api/drafts/generic", s.handleDraftGeneric)

	// Coach sessions
	mux.HandleFunc("POST /api/coach/sessions", s.handleCoachStart)
	mux.HandleFunc("POST /api/coach/sessions/{id}/messages", s.handleCoachAsk)
	mux.HandleFunc("GET /api/coach/sessions/{id}", s.handleCoachGet)
	mux.HandleFunc("DELETE /api/coach/sessions/{id}", s.handleCoachEnd)

	// Candidate profile
	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.handlePutProfile)
	mux.HandleFunc("DELETE /api/profile", s.handleDeleteProfile)

	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // PDF generation and LLM calls run long
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware-wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	origin := s.cfg.AllowedOrigins
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces per-client limits and sets X-RateLimit-* headers.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// extractClientID identifies the client by IP address.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// notConfiguredResponse reports a collaborator that needs configuration the
// deployment lacks (a missing GEMINI_API_KEY, typically).
func (s *Server) notConfiguredResponse(w http.ResponseWriter, what string) {
	s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
		"error": "not configured",
		"what":  what,
	})
}

// decodeAndValidate decodes a JSON request body and runs struct validation.
// Writes the error response itself and reports whether the request may proceed.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}
