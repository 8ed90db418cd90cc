package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Jobs</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.Body, "<h1>Jobs</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
}

func TestFirstNonEmpty_SkipsFailedHosts(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>listings</body></html>"))
	}))
	defer good.Close()

	result, err := FirstNonEmpty(context.Background(), []string{bad.URL, good.URL}, nil)
	require.NoError(t, err)
	assert.Equal(t, good.URL, result.URL)
}

func TestFirstNonEmpty_AllFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	_, err := FirstNonEmpty(context.Background(), []string{bad.URL}, nil)
	require.Error(t, err)
}

func TestTextFromSelectors_ChainOrder(t *testing.T) {
	doc, err := Document(`
	<html><body>
		<div class="fallback">Fallback title</div>
		<h2 class="primary">Primary title</h2>
	</body></html>`)
	require.NoError(t, err)

	text := TextFromSelectors(doc.Selection, []string{".primary", ".fallback"})
	assert.Equal(t, "Primary title", text)

	text = TextFromSelectors(doc.Selection, []string{".missing", ".fallback"})
	assert.Equal(t, "Fallback title", text)

	text = TextFromSelectors(doc.Selection, []string{".missing", ".also-missing"})
	assert.Empty(t, text)
}

func TestAttrFromSelectors(t *testing.T) {
	doc, err := Document(`<html><body><a class="job-link" href="/job/42?ref=x">PM</a></body></html>`)
	require.NoError(t, err)

	href := AttrFromSelectors(doc.Selection, []string{".job-link"}, "href")
	assert.Equal(t, "/job/42?ref=x", href)

	assert.Empty(t, AttrFromSelectors(doc.Selection, []string{".missing"}, "href"))
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips query", "https://x.com/job/1?ref=abc", "https://x.com/job/1"},
		{"strips fragment", "https://x.com/job/1#apply", "https://x.com/job/1"},
		{"strips both", "https://x.com/job/1?ref=abc#apply", "https://x.com/job/1"},
		{"distinct paths stay distinct", "https://x.com/job/2", "https://x.com/job/2"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalURL(tt.in))
		})
	}
}

func TestCanonicalURL_SameJobDifferentRef(t *testing.T) {
	a := CanonicalURL("https://x.com/job/1?ref=abc")
	b := CanonicalURL("https://x.com/job/1?ref=xyz")
	assert.Equal(t, a, b)

	c := CanonicalURL("https://x.com/job/2")
	assert.NotEqual(t, a, c)
}

func TestCleanWhitespace(t *testing.T) {
	in := "  Product Owner  \n\n\n   Acme Corp \n"
	assert.Equal(t, "Product Owner\nAcme Corp", CleanWhitespace(in))
}
