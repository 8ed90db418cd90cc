// Package profile manages the candidate profile used to personalize scoring
// and document prompts. A built-in default is always available; a custom
// profile can be uploaded at runtime and takes precedence until cleared.
package profile

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Provider serves the active candidate profile.
type Provider interface {
	Active() types.Profile
}

var validate = validator.New()

// Manager holds the default profile plus an optional uploaded override.
type Manager struct {
	mu       sync.RWMutex
	custom   *types.Profile
	fallback types.Profile
}

// NewManager creates a manager seeded with the built-in default profile.
func NewManager() *Manager {
	return &Manager{fallback: Default()}
}

// Active implements Provider. The uploaded profile wins when present.
func (m *Manager) Active() types.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.custom != nil {
		return *m.custom
	}
	return m.fallback
}

// SetCustom installs an uploaded profile after validation.
func (m *Manager) SetCustom(p types.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	m.mu.Lock()
	m.custom = &p
	m.mu.Unlock()
	return nil
}

// ClearCustom reverts to the built-in default.
func (m *Manager) ClearCustom() {
	m.mu.Lock()
	m.custom = nil
	m.mu.Unlock()
}

// UsingCustom reports whether an uploaded profile is active.
func (m *Manager) UsingCustom() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.custom != nil
}

// Summary flattens a profile into the compact text block embedded in prompts.
func Summary(p types.Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s — %s\n", p.Name, p.Headline)
	if p.Summary != "" {
		sb.WriteString(p.Summary)
		sb.WriteString("\n")
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if p.Certification != "" {
		fmt.Fprintf(&sb, "Certification: %s\n", p.Certification)
	}
	for _, exp := range p.Experience {
		fmt.Fprintf(&sb, "%s, %s (%s)\n", exp.Role, exp.Company, exp.Period)
		for _, b := range exp.Bullets {
			fmt.Fprintf(&sb, "  - %s\n", b)
		}
	}
	for _, proj := range p.Projects {
		fmt.Fprintf(&sb, "Project: %s (%s)", proj.Title, proj.Tech)
		if proj.URL != "" {
			fmt.Fprintf(&sb, " — %s", proj.URL)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
