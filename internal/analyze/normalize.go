package analyze

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Feed payloads carry provider chrome that must not reach the scorer.
	boilerplateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\[link\]|\[comments\]`),
		regexp.MustCompile(`(?i)submitted by /u/\w+`),
	}

	skipElements = map[string]struct{}{
		"script": {}, "style": {}, "head": {}, "meta": {},
	}
)

// Normalize strips markup from a raw feed payload and returns plain text:
// non-content elements dropped, entities decoded, whitespace collapsed,
// boilerplate removed. Malformed markup degrades to best-effort tag
// stripping; Normalize never fails.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := extractText(raw)
	text = html.UnescapeString(text)
	text = whitespaceRe.ReplaceAllString(text, " ")

	for _, re := range boilerplateRes {
		text = re.ReplaceAllString(text, "")
	}

	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func extractText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil || len(doc.Selection.Nodes) == 0 {
		return tagRe.ReplaceAllString(raw, " ")
	}

	var b strings.Builder
	for _, node := range doc.Selection.Nodes {
		collectText(node, &b)
	}
	return b.String()
}

// collectText walks the node tree appending visible text, one space per
// text node so adjacent elements never run together.
func collectText(n *xhtml.Node, b *strings.Builder) {
	if n.Type == xhtml.ElementNode {
		if _, skip := skipElements[n.Data]; skip {
			return
		}
	}
	if n.Type == xhtml.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
