package render

import (
	"html"
	"strings"
)

// documentHTML wraps drafted plain text in a minimal print layout. The LLM
// output is paragraph text, so paragraphs split on blank lines.
func documentHTML(title, body string) string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
	sb.WriteString(html.EscapeString(title))
	sb.WriteString(`</title><style>
body { font-family: Georgia, 'Times New Roman', serif; font-size: 11pt; line-height: 1.45; margin: 2.2cm; color: #1a1a1a; }
h1 { font-size: 15pt; margin-bottom: 0.2em; }
p { margin: 0 0 0.7em 0; white-space: pre-wrap; }
@page { size: A4; margin: 0; }
</style></head><body>`)

	for _, para := range strings.Split(strings.TrimSpace(body), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(para))
		sb.WriteString("</p>")
	}
	sb.WriteString("</body></html>")
	return sb.String()
}
