package analyze

import (
	"regexp"
	"strings"
	"unicode"
)

// minSentenceLen filters out fragments that are noise rather than prose.
const minSentenceLen = 10

// Common abbreviations whose trailing period does not end a sentence.
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {},
	"st": {}, "vs": {}, "etc": {}, "eg": {}, "e.g": {}, "ie": {}, "i.e": {},
	"inc": {}, "ltd": {}, "co": {}, "corp": {}, "dept": {}, "approx": {},
	"est": {}, "min": {}, "max": {}, "no": {}, "apt": {}, "fig": {},
}

var fallbackBoundaryRe = regexp.MustCompile(`[.!?]+\s+`)

// Segment splits plain text into an ordered sequence of sentences. The
// primary strategy is an abbreviation-aware boundary scan; when it yields
// nothing the regex fallback takes over. Fragments at or below
// minSentenceLen characters are discarded by both strategies.
func Segment(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := filterFragments(scanSentences(text))
	if len(sentences) == 0 {
		sentences = filterFragments(splitOnPunctuation(text))
	}
	return sentences
}

// scanSentences walks the text and breaks after terminal punctuation that
// is followed by whitespace, unless the preceding token is a known
// abbreviation, a single-letter initial, or part of a number.
func scanSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// Consume a run of terminal punctuation ("?!", "...").
		end := i
		for end+1 < len(runes) && isTerminal(runes[end+1]) {
			end++
		}

		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}

		if r == '.' && !periodEndsSentence(runes, start, i) {
			i = end
			continue
		}

		sentences = append(sentences, string(runes[start:end+1]))
		i = end
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
		start = i + 1
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

func periodEndsSentence(runes []rune, start, dot int) bool {
	// Decimal numbers: "3.5 stars" never splits.
	if dot > 0 && dot+1 < len(runes) && unicode.IsDigit(runes[dot-1]) && unicode.IsDigit(runes[dot+1]) {
		return false
	}

	word := trailingWord(runes[start:dot])
	if word == "" {
		return true
	}
	if len([]rune(word)) == 1 && unicode.IsUpper([]rune(word)[0]) {
		return false // initials like "J."
	}
	if _, abbrev := abbreviations[strings.ToLower(word)]; abbrev {
		return false
	}
	return true
}

func trailingWord(runes []rune) string {
	i := len(runes)
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return strings.Trim(string(runes[i:]), "(\"'")
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// splitOnPunctuation is the fallback strategy: split on terminal
// punctuation followed by whitespace, keeping the punctuation.
func splitOnPunctuation(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range fallbackBoundaryRe.FindAllStringIndex(text, -1) {
		// Keep the punctuation run, drop the trailing whitespace.
		boundary := loc[0]
		for boundary < loc[1] && !unicode.IsSpace(rune(text[boundary])) {
			boundary++
		}
		sentences = append(sentences, text[last:boundary])
		last = loc[1]
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}
	return sentences
}

func filterFragments(candidates []string) []string {
	sentences := make([]string, 0, len(candidates))
	for _, s := range candidates {
		s = strings.TrimSpace(s)
		if len(s) > minSentenceLen {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
