package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/store"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

func TestMergeNew_SkipsStoredDuplicates(t *testing.T) {
	stored := []types.Job{
		{ID: "job-1", Role: "Product Owner", Company: "Acme", URL: "https://indeed.com/job/1"},
		{ID: "job-2", Role: "Data Analyst", Company: "Globex", LinkedInID: "88"},
	}

	discovered := []types.RawJob{
		// Same URL as job-1, new tracking params.
		{Role: "Product Owner", Company: "Acme", URL: "https://indeed.com/job/1?utm=x", Platform: types.PlatformIndeed},
		// Same LinkedIn posting as job-2, different URL.
		{Role: "Data Analyst II", Company: "Globex", URL: "https://linkedin.com/jobs/view/da-88", LinkedInID: "88", Platform: types.PlatformLinkedIn},
		// Same role+company as job-1, case and whitespace differ.
		{Role: " product owner ", Company: "ACME", URL: "https://other.com/x", Platform: types.PlatformGlassdoor},
		// Genuinely new.
		{Role: "Platform PM", Company: "Initech", URL: "https://initech.com/jobs/7", Platform: types.PlatformWorkable},
	}

	now := time.Now()
	fresh := MergeNew(stored, discovered, store.NewIDGenerator(), now)

	require.Len(t, fresh, 1)
	assert.Equal(t, "Platform PM", fresh[0].Role)
	assert.NotEmpty(t, fresh[0].ID)
	assert.Equal(t, types.StatusSaved, fresh[0].Status)
	assert.Equal(t, now, fresh[0].CreatedAt)
}

func TestMergeNew_AssignsUniqueIDs(t *testing.T) {
	discovered := []types.RawJob{
		{Role: "A", Company: "X", Platform: types.PlatformIndeed},
		{Role: "B", Company: "Y", Platform: types.PlatformIndeed},
		{Role: "C", Company: "Z", Platform: types.PlatformIndeed},
	}

	fresh := MergeNew(nil, discovered, store.NewIDGenerator(), time.Now())
	require.Len(t, fresh, 3)

	seen := map[string]bool{}
	for _, j := range fresh {
		assert.False(t, seen[j.ID], "duplicate id %s", j.ID)
		seen[j.ID] = true
		assert.Contains(t, j.ID, "job-")
	}
}
