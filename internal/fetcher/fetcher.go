// Package fetcher implements the HTTP-only rendering backend. No browser,
// no JS — a single GET plus a static DOM walk. Position data is unavailable
// (no layout engine), visibility comes from inline-style heuristics, so the
// positional scoring factor contributes zero for every link. Covers static
// sites without the cost of Chrome.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hazyhaar/sitemirror/internal/render"
)

// maxBody caps page downloads at 10MB to prevent runaway reads.
const maxBody = 10 << 20

// Fetcher renders pages over plain HTTP.
type Fetcher struct {
	client *http.Client
	ua     string
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets a custom HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.ua = ua }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// New creates a Fetcher with sensible defaults.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		ua:     "Mozilla/5.0 (compatible; sitemirror/1.0)",
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Render GETs pageURL and builds a Snapshot from the static HTML.
// Non-2xx responses are errors: an error page is not worth mirroring.
func (f *Fetcher) Render(ctx context.Context, pageURL string) (*render.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetcher: new request: %w", err)
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetcher: do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetcher: %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("fetcher: read body: %w", err)
	}

	title, links, err := parsePage(body)
	if err != nil {
		return nil, fmt.Errorf("fetcher: parse %s: %w", pageURL, err)
	}

	f.logger.Debug("fetcher: rendered",
		"url", pageURL, "status", resp.StatusCode,
		"size", len(body), "links", len(links))

	return &render.Snapshot{
		URL:   pageURL,
		Title: title,
		HTML:  body,
		Links: links,
	}, nil
}

// Close satisfies the renderer contract; the HTTP backend holds nothing.
func (f *Fetcher) Close() error { return nil }
