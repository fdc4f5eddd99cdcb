// Package render defines the data a rendering backend hands to the ranking
// engine. Backends (headless Chrome, plain HTTP) produce a Snapshot; nothing
// downstream ever touches a browser handle.
package render

import "github.com/hazyhaar/sitemirror/internal/score"

// Snapshot is one rendered page: its final URL, title, serialized HTML,
// viewport height, and every anchor found on it with the attributes the
// scorer needs. A backend that has no layout engine leaves ViewportHeight
// at zero and candidate boxes nil; the affected scoring factors then
// contribute nothing.
type Snapshot struct {
	URL            string
	Title          string
	HTML           []byte
	ViewportHeight float64
	Links          []score.Candidate
}
