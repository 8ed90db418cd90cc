// Package drafts builds the application-document prompts (tailored resume,
// cover letter, interview prep, follow-up) and runs them against the LLM.
package drafts

import "strings"

// aiTerms flag a posting as an AI role. An AI role changes the document
// strategy: the live AI project is featured prominently as hard proof.
var aiTerms = []string{
	"ai", "artificial intelligence", "machine learning", "ml", "llm",
	"generative ai", "genai", "nlp", "gpt", "claude", "openai",
	"foundation model", "large language model", "ai product", "data science",
}

// IsAIRole reports whether a job description or role type reads as an AI
// position.
func IsAIRole(description, roleType string) bool {
	text := strings.ToLower(description + " " + roleType)
	for _, term := range aiTerms {
		if containsWord(text, term) {
			return true
		}
	}
	return false
}

// containsWord matches term on word boundaries so "ai" does not fire inside
// "maintain" or "chairman".
func containsWord(text, term string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		leftOK := start == 0 || !isWordChar(text[start-1])
		rightOK := end == len(text) || !isWordChar(text[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
