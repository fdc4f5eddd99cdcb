package fetcher

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/sitemirror/internal/score"
)

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
}

var (
	boldStyleRe = regexp.MustCompile(`(?i)font-weight\s*:\s*(bold|[6-9]\d\d)`)
	fontSizeRe  = regexp.MustCompile(`(?i)font-size\s*:\s*(\d+(?:\.\d+)?)px`)
)

// parsePage walks statically parsed HTML and collects the page title plus
// every anchor as a scoring candidate. Without a layout engine there are no
// bounding boxes; visibility and boldness come from inline styles and tag
// context only.
func parsePage(raw []byte) (string, []score.Candidate, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return "", nil, err
	}

	title := findTitle(doc)

	var links []score.Candidate
	var stack []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
			stack = append(stack, n)
			defer func() { stack = stack[:len(stack)-1] }()

			if n.DataAtom == atom.A {
				links = append(links, candidateFrom(n, stack))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, links, nil
}

// candidateFrom builds a candidate for the anchor at the top of stack.
func candidateFrom(a *html.Node, stack []*html.Node) score.Candidate {
	c := score.Candidate{
		Href:    attr(a, "href"),
		Text:    collectText(a),
		Visible: true,
	}

	// Ancestor chain, innermost first, anchor included.
	for i := len(stack) - 1; i >= 0; i-- {
		c.Ancestors = append(c.Ancestors, stack[i].Data)
	}

	// Inline-style heuristics up the chain: any hidden ancestor hides the
	// anchor; bold and font size are taken from the nearest declaration.
	for i := len(stack) - 1; i >= 0; i-- {
		n := stack[i]
		if n.DataAtom == atom.B || n.DataAtom == atom.Strong {
			c.Bold = true
		}
		style := attr(n, "style")
		if style == "" {
			continue
		}
		for _, pat := range hiddenStylePatterns {
			if pat.MatchString(style) {
				c.Visible = false
			}
		}
		if boldStyleRe.MatchString(style) {
			c.Bold = true
		}
		if c.FontSize == 0 {
			if m := fontSizeRe.FindStringSubmatch(style); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					c.FontSize = v
				}
			}
		}
	}

	return c
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findTitle extracts the <title> text.
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		if n.FirstChild != nil {
			return strings.TrimSpace(n.FirstChild.Data)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// collectText extracts all text from a node subtree.
func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
