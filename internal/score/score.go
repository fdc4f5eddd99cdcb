// Package score implements the link relevance engine: a multi-factor
// additive scoring function over candidate links and the ranking pass that
// turns a page's anchors into a visitation order.
//
// The package depends only on plain candidate data gathered by a rendering
// backend — never on a browser API — so the same scoring runs against
// headless Chrome output and against statically parsed HTML.
package score

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/hazyhaar/sitemirror/internal/config"
)

// Invalid is the sentinel returned for candidates without a resolvable
// href. It is the only negative value Score can produce; every other path
// is floored at zero, so "score ≤ 0" is the single exclusion rule for
// ranking.
const Invalid = -1.0

// ancestorWindow is how many ancestors (innermost first) the structural
// context factor inspects.
const ancestorWindow = 3

// Box is an element's bounding box in viewport coordinates.
type Box struct {
	X, Y, Width, Height float64
}

// Candidate is one anchor occurrence on a rendered page. Two candidates
// with the same href are independent — ranking does not deduplicate.
type Candidate struct {
	// Href is the raw href attribute. Empty means the anchor has no
	// resolvable target and scores Invalid.
	Href string

	// Text is the anchor's visible text content.
	Text string

	// Ancestors is the tag-name chain from the anchor upward, innermost
	// first (the anchor's own tag included).
	Ancestors []string

	// Box is the layout box, nil when the element was never laid out.
	Box *Box

	// Visible reports computed-style visibility: neither display:none nor
	// visibility:hidden.
	Visible bool

	// Bold reports a computed font-weight of 600 or more.
	Bold bool

	// FontSize is the computed font size in pixels, 0 when unknown.
	FontSize float64
}

// Context is the page-level input to scoring: everything about the page
// the candidates were discovered on.
type Context struct {
	BaseURL        string
	Title          string
	ViewportHeight float64
}

var wordRe = regexp.MustCompile(`\w+`)

// words tokenizes s into a lower-cased word set.
func words(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		set[w] = struct{}{}
	}
	return set
}

// resolve turns a raw href into an absolute URL against base. ok is false
// for empty or unparseable hrefs.
func resolve(base, href string) (string, bool) {
	if href == "" {
		return "", false
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return b.ResolveReference(ref).String(), true
}

// Score computes the relevance of one candidate link against its page.
//
// Five additive factors: domain locality, title term overlap, vertical
// position, structural context, and visual prominence. A candidate without
// a resolvable href returns Invalid before the zero floor; all other
// results are clamped to ≥ 0, so the navigation penalty can cancel other
// factors but never push a valid link negative.
func Score(c Candidate, page Context, cfg *config.Scoring) float64 {
	abs, ok := resolve(page.BaseURL, c.Href)
	if !ok {
		return Invalid
	}

	var s float64

	// Domain locality: exact host match, port included, no eTLD+1 logic.
	if base, err := url.Parse(page.BaseURL); err == nil {
		if u, err := url.Parse(abs); err == nil && u.Host != "" && u.Host == base.Host {
			s += cfg.Domain.InternalLinkBonus
		}
	}

	// Title term overlap.
	titleWords := words(page.Title)
	overlap := 0
	for w := range words(c.Text) {
		if _, ok := titleWords[w]; ok {
			overlap++
		}
	}
	s += float64(overlap) * cfg.Content.TitleWordMatchWeight

	// Vertical position: links nearer the top of the viewport score higher.
	// Contributes nothing without a layout box.
	if c.Box != nil && page.ViewportHeight > 0 {
		ny := c.Box.Y / page.ViewportHeight
		if ny < 0 {
			ny = 0
		}
		if ny > 1 {
			ny = 1
		}
		s += (1 - ny) * cfg.Position.VerticalPositionWeight
	}

	// Structural context: inspect the nearest ancestors. Content and
	// navigation indicators apply independently and may both fire.
	chain := c.Ancestors
	if len(chain) > ancestorWindow {
		chain = chain[:ancestorWindow]
	}
	if anyTag(chain, cfg.Context.ContentIndicators) {
		s += cfg.Context.ContentAreaBonus
	}
	if anyTag(chain, cfg.Context.NavigationIndicators) {
		s += cfg.Context.NavigationAreaPenalty
	}

	// Visual prominence: bold and large-font bonuses only stack on top of
	// a visible element.
	if c.Visible {
		s += cfg.Prominence.VisibleLinkBonus
		if c.Bold {
			s += cfg.Prominence.BoldTextBonus
		}
		if c.FontSize > cfg.Prominence.LargeFontThreshold {
			s += cfg.Prominence.LargeFontBonus
		}
	}

	if s < 0 {
		return 0
	}
	return s
}

func anyTag(chain, indicators []string) bool {
	for _, tag := range chain {
		for _, ind := range indicators {
			if strings.EqualFold(tag, ind) {
				return true
			}
		}
	}
	return false
}
