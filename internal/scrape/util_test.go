package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

func TestParsePostedDaysAgo(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"3 days ago", intPtr(3)},
		{"30+ days ago", intPtr(30)},
		{"1 day ago", intPtr(1)},
		{"2 hours ago", intPtr(0)},
		{"Posted today", intPtr(0)},
		{"Just posted", intPtr(0)},
		{"yesterday", intPtr(1)},
		{"2 weeks ago", intPtr(14)},
		{"1 month ago", intPtr(30)},
		{"", nil},
		{"Active hiring", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parsePostedDaysAgo(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestAbsolutize(t *testing.T) {
	assert.Equal(t, "https://x.com/job/1",
		absolutize("https://x.com/jobs?q=pm", "/job/1"))
	assert.Equal(t, "https://other.com/job/2",
		absolutize("https://x.com/jobs", "https://other.com/job/2"))
	assert.Empty(t, absolutize("https://x.com", ""))
}

func TestFinalize(t *testing.T) {
	q := Query{Keywords: "product owner", Location: "Singapore"}

	t.Run("drops record without role", func(t *testing.T) {
		job := types.RawJob{Company: "Acme"}
		assert.False(t, finalize(&job, q))
	})

	t.Run("defaults location to the search location", func(t *testing.T) {
		job := types.RawJob{Role: "PM"}
		require.True(t, finalize(&job, q))
		assert.Equal(t, "Singapore", job.Location)
	})

	t.Run("bounds the description", func(t *testing.T) {
		long := make([]byte, types.MaxDescriptionLength+500)
		for i := range long {
			long[i] = 'a'
		}
		job := types.RawJob{Role: "PM", Description: string(long)}
		require.True(t, finalize(&job, q))
		assert.Len(t, job.Description, types.MaxDescriptionLength)
	})
}

func TestLinkedInIDFromURL(t *testing.T) {
	assert.Equal(t, "3791234567",
		linkedInIDFromURL("https://www.linkedin.com/jobs/view/product-owner-at-acme-3791234567?refId=x"))
	assert.Empty(t, linkedInIDFromURL("https://www.linkedin.com/jobs/search"))
	assert.Empty(t, linkedInIDFromURL(""))
}

func TestJSONObjectAfter(t *testing.T) {
	script := `window.mosaic.providerData["mosaic-provider-jobcards"] = {"metaData":{"nested":{"a":"b}"}}};`
	blob := jsonObjectAfter(script, `window.mosaic.providerData["mosaic-provider-jobcards"]`)
	assert.Equal(t, `{"metaData":{"nested":{"a":"b}"}}}`, blob)

	assert.Empty(t, jsonObjectAfter("no marker here", "marker"))
	assert.Empty(t, jsonObjectAfter("marker = [1,2,3]", "missing"))
}

func intPtr(n int) *int { return &n }
