package types

import "time"

// ScoreResult is the parsed output of one LLM scoring call.
type ScoreResult struct {
	Score    int    `json:"score"`
	Label    string `json:"label"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

// TopMatch is one high-scoring record surfaced in the run summary.
type TopMatch struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Company string `json:"company,omitempty"`
	URL     string `json:"url,omitempty"`
	Score   int    `json:"score"`
	Label   string `json:"label,omitempty"`
}

// RunSummary aggregates the outcome of one discovery+enrichment run.
type RunSummary struct {
	RunID         string     `json:"run_id"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    time.Time  `json:"finished_at"`
	Discovered    int        `json:"discovered"`
	NewRecords    int        `json:"new_records"`
	Processed     int        `json:"processed"`
	Scored        int        `json:"scored"`
	DocsGenerated int        `json:"docs_generated"`
	Errors        []string   `json:"errors,omitempty"`
	TopMatches    []TopMatch `json:"top_matches,omitempty"`
}
