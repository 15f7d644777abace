// Package textclean turns feed summary markup into plain text.
package textclean

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Clean strips all markup from the given text, collapses whitespace to
// single spaces and trims the result. Empty input yields the empty
// string; malformed markup degrades to best-effort extraction and never
// fails.
func Clean(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return collapse(stripTags(markup))
	}

	var parts []string
	for _, node := range doc.Selection.Nodes {
		collectText(node, &parts)
	}
	return collapse(strings.Join(parts, " "))
}

// collectText gathers text nodes, skipping script and style subtrees.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// stripTags is the fallback when the parser rejects the input: drop
// everything between angle brackets.
func stripTags(markup string) string {
	var b strings.Builder
	inTag := false
	for _, r := range markup {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
