package notify

import (
	"fmt"
	"strings"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// MaxDigestLength bounds the chat digest. Chat APIs truncate or reject long
// messages, so the digest is cut at a clean boundary instead.
const MaxDigestLength = 1000

// Digest renders the short plain-text summary for chat delivery.
func Digest(s types.RunSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Job hunt run %s: %d discovered, %d new, %d scored, %d docs generated",
		shortID(s.RunID), s.Discovered, s.NewRecords, s.Scored, s.DocsGenerated)
	if len(s.Errors) > 0 {
		fmt.Fprintf(&sb, ", %d errors", len(s.Errors))
	}
	sb.WriteString("\n")

	for i, m := range s.TopMatches {
		line := fmt.Sprintf("%d. [%d/10] %s — %s\n", i+1, m.Score, m.Role, m.Company)
		if sb.Len()+len(line) > MaxDigestLength {
			sb.WriteString("…")
			break
		}
		sb.WriteString(line)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RichSummary renders the long-form variant for email delivery.
func RichSummary(s types.RunSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Job Hunt Run Report — %s\n", s.FinishedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Run ID: %s\n\n", s.RunID)
	fmt.Fprintf(&sb, "Discovered: %d\nNew records: %d\nProcessed: %d\nScored: %d\nDocuments generated: %d\n",
		s.Discovered, s.NewRecords, s.Processed, s.Scored, s.DocsGenerated)

	if len(s.TopMatches) > 0 {
		sb.WriteString("\nTop matches:\n")
		for i, m := range s.TopMatches {
			fmt.Fprintf(&sb, "%d. [%d/10] %s at %s", i+1, m.Score, m.Role, m.Company)
			if m.Label != "" {
				fmt.Fprintf(&sb, " — %s", m.Label)
			}
			if m.URL != "" {
				fmt.Fprintf(&sb, "\n   %s", m.URL)
			}
			sb.WriteString("\n")
		}
	}

	if len(s.Errors) > 0 {
		sb.WriteString("\nErrors:\n")
		for _, e := range s.Errors {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
	}
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
