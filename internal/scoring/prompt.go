// Package scoring builds the job fit scoring prompt and validates the LLM's
// JSON response against a schema before any field reaches persistence.
package scoring

import (
	"fmt"
	"strings"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// productFraming is the positioning block shared by scoring and drafting
// prompts. The candidate is moving from consulting into in-house product
// roles, and every prompt must frame her that way.
const productFraming = `CRITICAL POSITIONING — She is transitioning from CONSULTING to IN-HOUSE PRODUCT roles:
- Reframe "KPMG consultant" → "Product Owner for Loan IQ product squad"
- Reframe "client delivery" → "shipped product features, owned backlog, drove sprint outcomes"
- DO NOT use: consultant, client, engagement, billable, service delivery
- DO USE: product, squad, roadmap, discovery, iteration, user value, outcome, feature, backlog`

// ProductFraming exposes the positioning block to the drafting prompts.
func ProductFraming() string { return productFraming }

// BuildPrompt constructs the scoring prompt for one job record. The scoring
// rules are business policy and live in the prompt, not in the pipeline.
func BuildPrompt(job types.Job, profile types.Profile) string {
	var sb strings.Builder

	sb.WriteString("You are a career advisor scoring a job posting for fit with a specific candidate.\n\n")

	sb.WriteString("Candidate:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", profile.Name)
	if profile.Headline != "" {
		fmt.Fprintf(&sb, "- Headline: %s\n", profile.Headline)
	}
	if profile.Summary != "" {
		fmt.Fprintf(&sb, "- Summary: %s\n", profile.Summary)
	}
	if len(profile.Skills) > 0 {
		fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(profile.Skills, ", "))
	}
	if profile.Certification != "" {
		fmt.Fprintf(&sb, "- Certification: %s\n", profile.Certification)
	}
	sb.WriteString("\n")
	sb.WriteString(productFraming)
	sb.WriteString("\n\n")

	sb.WriteString("Job posting:\n")
	fmt.Fprintf(&sb, "- Role: %s\n", job.Role)
	if job.Company != "" {
		fmt.Fprintf(&sb, "- Company: %s\n", job.Company)
	}
	if job.Location != "" {
		fmt.Fprintf(&sb, "- Location: %s\n", job.Location)
	}
	fmt.Fprintf(&sb, "- Description: %s\n\n", job.Description)

	sb.WriteString(`Scoring rules (apply in this order, they are not negotiable):
1. If the description contains an explicit no-sponsorship or citizenship
   restriction (e.g. "no visa sponsorship", "citizens only", "must be a
   permanent resident"), the score is 0 and the priority is "Skip",
   regardless of every other factor.
2. Roles at consulting or professional-services firms (Big 4, agencies,
   outsourcing, system integrators) are capped at 4 at most, because she is
   leaving consulting.
3. Roles owning an in-house product (the company builds and sells its own
   product) get a bonus over otherwise comparable roles.
4. Otherwise score 0-10 on skills overlap, seniority fit, and domain fit.

Return ONLY a JSON object, no markdown, no explanation:
{"score": 0-10, "label": "short fit label", "reason": "one sentence", "priority": "High" | "Medium" | "Low" | "Skip"}`)

	return sb.String()
}
