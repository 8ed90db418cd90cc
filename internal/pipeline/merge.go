package pipeline

import (
	"strings"
	"time"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/fetch"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/store"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// MergeNew promotes discovered records that are not already stored. The same
// dedup keys as discovery apply against the stored set: canonical URL,
// LinkedIn ID, normalized (role, company). Matching records are skipped;
// survivors get fresh IDs.
func MergeNew(stored []types.Job, discovered []types.RawJob, ids *store.IDGenerator, now time.Time) []types.Job {
	seenURL := make(map[string]bool)
	seenLinkedIn := make(map[string]bool)
	seenRoleCompany := make(map[string]bool)

	for _, j := range stored {
		if u := fetch.CanonicalURL(j.URL); u != "" {
			seenURL[u] = true
		}
		if j.LinkedInID != "" {
			seenLinkedIn[j.LinkedInID] = true
		}
		seenRoleCompany[normalizedKey(j.Role, j.Company)] = true
	}

	var out []types.Job
	for _, raw := range discovered {
		if u := fetch.CanonicalURL(raw.URL); u != "" {
			if seenURL[u] {
				continue
			}
			seenURL[u] = true
		}
		if raw.LinkedInID != "" {
			if seenLinkedIn[raw.LinkedInID] {
				continue
			}
			seenLinkedIn[raw.LinkedInID] = true
		}
		key := normalizedKey(raw.Role, raw.Company)
		if seenRoleCompany[key] {
			continue
		}
		seenRoleCompany[key] = true

		out = append(out, types.FromRaw(raw, ids.Next(), now))
	}
	return out
}

func normalizedKey(role, company string) string {
	return strings.ToLower(strings.TrimSpace(role)) + "|" + strings.ToLower(strings.TrimSpace(company))
}
