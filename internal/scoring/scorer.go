package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/llm"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// MinDescriptionLength is the minimum description length worth scoring.
// Anything shorter gives the model nothing to work with.
const MinDescriptionLength = 50

// responseSchema validates the scoring JSON before it is trusted. A response
// that fails validation leaves the record unscored.
const responseSchema = `{
	"type": "object",
	"required": ["score", "label", "reason", "priority"],
	"properties": {
		"score":    {"type": "integer", "minimum": 0, "maximum": 10},
		"label":    {"type": "string"},
		"reason":   {"type": "string"},
		"priority": {"type": "string", "enum": ["High", "Medium", "Low", "Skip"]}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(responseSchema)

// Scorer asks the LLM to rate one job record against the active profile.
type Scorer struct {
	client llm.Client
}

// NewScorer wraps an LLM client.
func NewScorer(client llm.Client) *Scorer {
	return &Scorer{client: client}
}

// Scorable reports whether a record has enough description to be worth
// sending to the model.
func Scorable(job types.Job) bool {
	return len(strings.TrimSpace(job.Description)) >= MinDescriptionLength
}

// Score submits the scoring prompt and parses the validated response.
func (s *Scorer) Score(ctx context.Context, job types.Job, profile types.Profile) (types.ScoreResult, error) {
	raw, err := s.client.GenerateJSON(ctx, BuildPrompt(job, profile), llm.TierLite)
	if err != nil {
		return types.ScoreResult{}, fmt.Errorf("scoring call: %w", err)
	}
	return ParseResult(raw)
}

// ParseResult validates a raw scoring response against the schema and decodes
// it into a ScoreResult.
func ParseResult(raw string) (types.ScoreResult, error) {
	raw = llm.CleanJSONBlock(raw)

	validation, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return types.ScoreResult{}, fmt.Errorf("scoring response is not JSON: %w", err)
	}
	if !validation.Valid() {
		var reasons []string
		for _, e := range validation.Errors() {
			reasons = append(reasons, e.String())
		}
		return types.ScoreResult{}, fmt.Errorf("scoring response failed validation: %s", strings.Join(reasons, "; "))
	}

	var result types.ScoreResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return types.ScoreResult{}, fmt.Errorf("decode scoring response: %w", err)
	}
	return result, nil
}
