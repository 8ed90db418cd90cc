package discovery

import (
	"strings"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/fetch"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Dedup removes duplicate postings from a merged result set, keeping the
// first occurrence of each. Three keys are checked in order:
//
//  1. canonical URL (query string and fragment stripped); records without a
//     URL never match on this key,
//  2. LinkedIn posting ID, when present,
//  3. normalized (role, company) pair.
//
// The operation is idempotent: running it twice yields the same list.
func Dedup(jobs []types.RawJob) []types.RawJob {
	seenURL := make(map[string]bool)
	seenLinkedIn := make(map[string]bool)
	seenRoleCompany := make(map[string]bool)

	var out []types.RawJob
	for _, j := range jobs {
		if u := fetch.CanonicalURL(j.URL); u != "" {
			if seenURL[u] {
				continue
			}
			seenURL[u] = true
		}
		if j.LinkedInID != "" {
			if seenLinkedIn[j.LinkedInID] {
				continue
			}
			seenLinkedIn[j.LinkedInID] = true
		}
		key := roleCompanyKey(j.Role, j.Company)
		if seenRoleCompany[key] {
			continue
		}
		seenRoleCompany[key] = true
		out = append(out, j)
	}
	return out
}

func roleCompanyKey(role, company string) string {
	return strings.ToLower(strings.TrimSpace(role)) + "|" + strings.ToLower(strings.TrimSpace(company))
}
