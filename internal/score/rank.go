package score

import (
	"sort"

	"github.com/hazyhaar/sitemirror/internal/config"
)

// Scored is one frontier entry: a resolved absolute URL and its relevance.
type Scored struct {
	URL   string
	Score float64
}

// Rank scores every candidate, drops entries scoring ≤ 0 (invalid links and
// zero-relevance links fall to the same rule), and returns the rest in
// descending score order. Ties keep their discovery order. Candidates are
// not deduplicated: a page linking the same URL twice yields two entries.
func Rank(links []Candidate, page Context, cfg *config.Scoring) []Scored {
	frontier := make([]Scored, 0, len(links))
	for _, c := range links {
		s := Score(c, page, cfg)
		if s <= 0 {
			continue
		}
		abs, ok := resolve(page.BaseURL, c.Href)
		if !ok {
			continue // unreachable: Score already returned Invalid
		}
		frontier = append(frontier, Scored{URL: abs, Score: s})
	}
	sort.SliceStable(frontier, func(i, j int) bool {
		return frontier[i].Score > frontier[j].Score
	})
	return frontier
}
