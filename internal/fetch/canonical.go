package fetch

import (
	"net/url"
	"strings"
)

// CanonicalURL strips the query string and fragment from a URL, producing the
// stable dedup key used across discovery runs. An empty or unparseable URL
// canonicalizes to "" and must never participate in URL-based dedup.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	canonical := parsed.String()
	return strings.TrimSuffix(canonical, "?")
}
