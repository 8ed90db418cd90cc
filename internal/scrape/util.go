package scrape

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Options configures shared adapter behavior.
type Options struct {
	// UseBrowser enables the headless browser fallback for boards that render
	// listings client-side.
	UseBrowser bool
	// Verbose enables per-strategy logging.
	Verbose bool
}

// DefaultAdapterOptions returns the default adapter configuration.
func DefaultAdapterOptions() *Options {
	return &Options{}
}

var relativeAgeRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(hour|day|week|month)s?\s*ago`)

// parsePostedDaysAgo converts a board's relative age string ("3 days ago",
// "30+ days ago", "Posted today") into days. Returns nil when the age cannot
// be determined; unknown ages are never filtered out downstream.
func parsePostedDaysAgo(s string) *int {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil
	}

	if strings.Contains(s, "today") || strings.Contains(s, "just posted") || strings.Contains(s, "just now") {
		zero := 0
		return &zero
	}
	if strings.Contains(s, "yesterday") {
		one := 1
		return &one
	}

	m := relativeAgeRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}

	switch m[2] {
	case "hour":
		n = 0
	case "week":
		n *= 7
	case "month":
		n *= 30
	}
	return &n
}

// absolutize resolves a possibly relative href against the page it was
// scraped from.
func absolutize(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// truncate bounds a scraped description.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// finalize applies shared post-processing to a scraped record: default
// location, description bound, and the usability check. Returns false when
// the record should be dropped.
func finalize(job *types.RawJob, q Query) bool {
	if !job.Usable() {
		return false
	}
	if strings.TrimSpace(job.Location) == "" {
		job.Location = q.Location
	}
	job.Role = strings.TrimSpace(job.Role)
	job.Company = strings.TrimSpace(job.Company)
	job.Description = truncate(strings.TrimSpace(job.Description), types.MaxDescriptionLength)
	return true
}
