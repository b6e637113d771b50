package analyze

import (
	"regexp"
	"strings"
)

// maxSnippetLen caps context snippets handed to consumers.
const maxSnippetLen = 500

// Locate returns the indices of every sentence containing the keyword.
// Matching is case-insensitive, anchored at a word boundary, and allows
// any word-character suffix so "ship" also matches "shipping".
func Locate(sentences []string, keyword string) []int {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\w*`)
	if err != nil {
		return nil
	}

	var indices []int
	for i, sentence := range sentences {
		if pattern.MatchString(sentence) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Window extracts the context around sentences[index]: radius sentences on
// each side, clamped to the sequence bounds, joined with single spaces and
// truncated to maxSnippetLen with an ellipsis marker. Returns the snippet
// and the half-open [start, end) range it covers.
func Window(sentences []string, index, radius int) (string, int, int) {
	start := index - radius
	if start < 0 {
		start = 0
	}
	end := index + radius + 1
	if end > len(sentences) {
		end = len(sentences)
	}

	snippet := strings.Join(sentences[start:end], " ")
	return truncate(snippet, maxSnippetLen), start, end
}

// truncate shortens s to maxLen runes with a trailing ellipsis marker.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
