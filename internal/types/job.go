// Package types defines the shared domain types for the job hunt backend.
package types

import (
	"strings"
	"time"
)

// MaxDescriptionLength is the bound applied to scraped job descriptions.
const MaxDescriptionLength = 2000

// Platform identifies the job board a record was scraped from.
type Platform string

// Supported job board platforms.
const (
	PlatformIndeed    Platform = "indeed"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformJobStreet Platform = "jobstreet"
	PlatformWorkable  Platform = "workable"
	PlatformGlassdoor Platform = "glassdoor"
)

// AllPlatforms returns every supported platform in a stable order.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformIndeed,
		PlatformLinkedIn,
		PlatformJobStreet,
		PlatformWorkable,
		PlatformGlassdoor,
	}
}

// ParsePlatform maps a string to a known Platform. Returns false for
// unrecognized values.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformIndeed:
		return PlatformIndeed, true
	case PlatformLinkedIn:
		return PlatformLinkedIn, true
	case PlatformJobStreet:
		return PlatformJobStreet, true
	case PlatformWorkable:
		return PlatformWorkable, true
	case PlatformGlassdoor:
		return PlatformGlassdoor, true
	}
	return "", false
}

// RawJob is the transient record a source adapter produces for one posting.
// It lives only within a single discovery call; persistence promotes it to Job.
type RawJob struct {
	Role        string   `json:"role"`
	Company     string   `json:"company,omitempty"`
	URL         string   `json:"url,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Platform    Platform `json:"platform"`
	// LinkedInID is a secondary dedup key, populated only by the LinkedIn adapter.
	LinkedInID string `json:"linkedin_id,omitempty"`
	// PostedDaysAgo is nil when the posting age could not be extracted.
	// Records with unknown age are never dropped by the age filter.
	PostedDaysAgo *int `json:"posted_days_ago,omitempty"`
}

// Usable reports whether the record carries enough data to keep.
// A role title is the minimum; everything else may be filled in later.
func (r *RawJob) Usable() bool {
	return strings.TrimSpace(r.Role) != ""
}

// Status values for a persisted job. Informational only; the pipeline does
// not branch on them.
const (
	StatusSaved     = "saved"
	StatusWishlist  = "wishlist"
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
)

// ValidStatus reports whether s is one of the known job statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusSaved, StatusWishlist, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Job is the persisted job record. ID is assigned at first persistence and is
// the sole upsert key; all other fields are filled in monotonically by the
// enrichment pipeline (score before documents) and never overwritten with
// conflicting values.
type Job struct {
	ID            string   `json:"id"`
	Role          string   `json:"role"`
	Company       string   `json:"company,omitempty"`
	URL           string   `json:"url,omitempty"`
	Location      string   `json:"location,omitempty"`
	Description   string   `json:"description,omitempty"`
	Platform      Platform `json:"platform"`
	LinkedInID    string   `json:"linkedin_id,omitempty"`
	PostedDaysAgo *int     `json:"posted_days_ago,omitempty"`
	Status        string   `json:"status"`

	// Scoring fields, empty until the Score stage succeeds.
	AIScore    *int   `json:"ai_score,omitempty"`
	AILabel    string `json:"ai_label,omitempty"`
	AIReason   string `json:"ai_reason,omitempty"`
	AIPriority string `json:"ai_priority,omitempty"`

	// Document artifacts, empty until the Generate stage succeeds.
	ResumePDF         []byte     `json:"-"`
	ResumeFilename    string     `json:"resume_filename,omitempty"`
	CoverPDF          []byte     `json:"-"`
	CoverFilename     string     `json:"cover_filename,omitempty"`
	ResumeVariant     string     `json:"resume_variant,omitempty"`
	ResumeGeneratedAt *time.Time `json:"resume_generated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scored reports whether the record already carries an AI score.
func (j *Job) Scored() bool {
	return j.AIScore != nil
}

// HasArtifacts reports whether documents were already generated for the record.
// Generation happens at most once per ID.
func (j *Job) HasArtifacts() bool {
	return len(j.ResumePDF) > 0
}

// FromRaw promotes a transient RawJob into a Job with the given ID.
func FromRaw(raw RawJob, id string, now time.Time) Job {
	desc := raw.Description
	if len(desc) > MaxDescriptionLength {
		desc = desc[:MaxDescriptionLength]
	}
	return Job{
		ID:            id,
		Role:          raw.Role,
		Company:       raw.Company,
		URL:           raw.URL,
		Location:      raw.Location,
		Description:   desc,
		Platform:      raw.Platform,
		LinkedInID:    raw.LinkedInID,
		PostedDaysAgo: raw.PostedDaysAgo,
		Status:        StatusSaved,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
