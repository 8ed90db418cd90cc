package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// Strategy is one extraction attempt against a fetched page. Strategies are
// pure: they read the document and either produce records or report no match.
type Strategy struct {
	Name    string
	Extract func(doc *goquery.Document, q Query) ([]types.RawJob, error)
}

// ErrNoMatch is returned by a strategy whose selectors found nothing on the
// page. The next strategy in the chain is tried.
var ErrNoMatch = fmt.Errorf("strategy found no matching content")

// runStrategies tries each strategy in order and returns the first non-empty
// result. If every strategy fails, the last error is returned so the caller
// can report why extraction stopped.
func runStrategies(doc *goquery.Document, q Query, strategies []Strategy) ([]types.RawJob, error) {
	var lastErr error = ErrNoMatch
	for _, s := range strategies {
		jobs, err := s.Extract(doc, q)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", s.Name, err)
			continue
		}
		if len(jobs) > 0 {
			return jobs, nil
		}
		lastErr = fmt.Errorf("%s: %w", s.Name, ErrNoMatch)
	}
	return nil, lastErr
}

// scriptContaining returns the text of the first <script> element whose body
// contains the marker. Used by embedded-data strategies.
func scriptContaining(doc *goquery.Document, marker string) string {
	var found string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, marker) {
			found = text
			return false
		}
		return true
	})
	return found
}

// jsonObjectAfter extracts the balanced JSON object that follows the marker
// inside a script body. Returns "" when no complete object is present.
func jsonObjectAfter(script, marker string) string {
	idx := strings.Index(script, marker)
	if idx < 0 {
		return ""
	}
	rest := script[idx+len(marker):]
	start := strings.IndexByte(rest, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(rest); i++ {
		c := rest[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return rest[start : i+1]
			}
		}
	}
	return ""
}
