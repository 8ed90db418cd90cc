// Package coach keeps multi-turn interview coaching sessions. Session state
// lives in the cache with a sliding TTL, so an idle conversation expires on
// its own.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/cache"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/llm"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/profile"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/scoring"
)

// SessionTTL is how long an idle session survives. Every exchange renews it.
const SessionTTL = 2 * time.Hour

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("coach: session not found")

// Message is one turn in a coaching conversation.
type Message struct {
	Role    string    `json:"role"` // "user" or "coach"
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is one coaching conversation, scoped to a target role and company.
type Session struct {
	ID        string    `json:"id"`
	Company   string    `json:"company,omitempty"`
	RoleType  string    `json:"role_type,omitempty"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// Coach manages sessions and answers through the LLM.
type Coach struct {
	cache    cache.Cache
	client   llm.Client
	profiles profile.Provider
}

// New creates a coach backed by the given cache and LLM client.
func New(c cache.Cache, client llm.Client, profiles profile.Provider) *Coach {
	return &Coach{cache: c, client: client, profiles: profiles}
}

func sessionKey(id string) string { return "coach:session:" + id }

// Start creates a new session.
func (c *Coach) Start(ctx context.Context, company, roleType string) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		Company:   company,
		RoleType:  roleType,
		CreatedAt: time.Now(),
	}
	if err := c.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get loads a session by ID.
func (c *Coach) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := c.cache.Get(ctx, sessionKey(id))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// End deletes a session.
func (c *Coach) End(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, sessionKey(id))
}

// Ask appends a user question, gets the coach's answer from the LLM, appends
// it, and renews the session TTL.
func (c *Coach) Ask(ctx context.Context, id, question string) (*Session, error) {
	s, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.Messages = append(s.Messages, Message{Role: "user", Content: question, At: now})

	answer, err := c.client.GenerateContent(ctx, c.buildPrompt(s), llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("coach answer: %w", err)
	}
	s.Messages = append(s.Messages, Message{Role: "coach", Content: answer, At: time.Now()})

	if err := c.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Coach) save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := c.cache.Set(ctx, sessionKey(s.ID), string(raw), SessionTTL); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (c *Coach) buildPrompt(s *Session) string {
	p := c.profiles.Active()

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an interview coach preparing %s", p.Name)
	if s.RoleType != "" {
		fmt.Fprintf(&sb, " for a %s role", s.RoleType)
	}
	if s.Company != "" {
		fmt.Fprintf(&sb, " at %s", s.Company)
	}
	sb.WriteString(".\n")
	sb.WriteString(scoring.ProductFraming())
	sb.WriteString("\n\nCANDIDATE BACKGROUND:\n")
	sb.WriteString(profile.Summary(p))
	sb.WriteString("\nConversation so far:\n")
	for _, m := range s.Messages {
		fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
	}
	sb.WriteString("\nAnswer the user's last question directly, using her real experience and metrics. Keep answers tight and actionable.")
	return sb.String()
}
