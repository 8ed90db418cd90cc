package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

func TestParseResult(t *testing.T) {
	t.Run("valid response", func(t *testing.T) {
		got, err := ParseResult(`{"score": 8, "label": "Strong fit", "reason": "Core BA skills match.", "priority": "High"}`)
		require.NoError(t, err)
		assert.Equal(t, types.ScoreResult{Score: 8, Label: "Strong fit", Reason: "Core BA skills match.", Priority: "High"}, got)
	})

	t.Run("markdown fences stripped", func(t *testing.T) {
		got, err := ParseResult("```json\n{\"score\": 0, \"label\": \"No sponsorship\", \"reason\": \"Citizens only.\", \"priority\": \"Skip\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, 0, got.Score)
		assert.Equal(t, "Skip", got.Priority)
	})

	t.Run("score out of range", func(t *testing.T) {
		_, err := ParseResult(`{"score": 14, "label": "x", "reason": "y", "priority": "High"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed validation")
	})

	t.Run("unknown priority", func(t *testing.T) {
		_, err := ParseResult(`{"score": 5, "label": "x", "reason": "y", "priority": "Urgent"}`)
		require.Error(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := ParseResult(`{"score": 5, "label": "x"}`)
		require.Error(t, err)
	})

	t.Run("not JSON at all", func(t *testing.T) {
		_, err := ParseResult("I cannot score this posting.")
		require.Error(t, err)
	})
}

func TestScorable(t *testing.T) {
	assert.False(t, Scorable(types.Job{Description: "short"}))
	assert.False(t, Scorable(types.Job{Description: strings.Repeat(" ", 100)}))
	assert.True(t, Scorable(types.Job{Description: strings.Repeat("responsibilities ", 10)}))
}

func TestBuildPrompt_CarriesBusinessRules(t *testing.T) {
	job := types.Job{Role: "Product Owner", Company: "Acme", Description: "Own the roadmap."}
	profile := types.Profile{Name: "Amretha Karthikeyan", Skills: []string{"SAFe 6.0", "Backlog management"}}

	prompt := BuildPrompt(job, profile)

	assert.Contains(t, prompt, "no-sponsorship or citizenship")
	assert.Contains(t, prompt, `"Skip"`)
	assert.Contains(t, prompt, "consulting or professional-services")
	assert.Contains(t, prompt, "in-house product")
	assert.Contains(t, prompt, "CRITICAL POSITIONING")
	assert.Contains(t, prompt, "Product Owner")
	assert.Contains(t, prompt, "SAFe 6.0")
}
