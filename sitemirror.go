// Package sitemirror mirrors a single site: it renders the base page,
// ranks its outbound links by relevance, and persists the highest-ranked
// pages first until the page budget is spent.
//
// sitemirror crawls one page at a time — no parallel fetches, no shared
// mutable state. The rendering backend (headless Chrome or plain HTTP) is
// a disposable component behind the Renderer interface; ranking depends
// only on the snapshot data a backend produces.
package sitemirror

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/hazyhaar/sitemirror/internal/config"
	"github.com/hazyhaar/sitemirror/internal/manifest"
	"github.com/hazyhaar/sitemirror/internal/render"
	"github.com/hazyhaar/sitemirror/internal/safeio"
	"github.com/hazyhaar/sitemirror/internal/score"
	"github.com/hazyhaar/sitemirror/internal/store"
)

// Renderer is the capability a rendering backend must provide: navigate to
// a URL, wait until the page has settled, and return its snapshot.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (*render.Snapshot, error)
	Close() error
}

// Failure is one non-fatal page attempt that did not produce a file.
type Failure struct {
	URL string
	Err error
}

// Result is the outcome of one crawl.
type Result struct {
	// Saved counts pages written to disk, the root page included.
	Saved int
	// Attempted counts render attempts, successful or not.
	Attempted int
	// Failures lists the frontier entries that were skipped.
	Failures []Failure
	// Frontier is the full ranked frontier of the root page, kept for
	// reporting even when the budget stops before it is consumed.
	Frontier []score.Scored
}

// Options tunes a Crawler beyond its required collaborators.
type Options struct {
	// Scoring weights. Nil means config.Default().
	Scoring *config.Scoring

	// RPS is the politeness rate limit in requests per second. Default: 2.
	RPS float64

	// Manifest, when non-nil, receives a record per attempt.
	Manifest *manifest.Manifest

	Logger *slog.Logger
}

// Crawler is the frontier controller. It owns the visitation order and the
// success/failure bookkeeping; rendering and persistence are delegated.
type Crawler struct {
	renderer Renderer
	out      *store.Writer
	scoring  *config.Scoring
	limiter  *rate.Limiter
	man      *manifest.Manifest
	logger   *slog.Logger
}

// New creates a Crawler over a rendering backend and an output writer.
func New(r Renderer, out *store.Writer, opts Options) *Crawler {
	if opts.Scoring == nil {
		opts.Scoring = config.Default()
	}
	if opts.RPS <= 0 {
		opts.RPS = 2
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Crawler{
		renderer: r,
		out:      out,
		scoring:  opts.Scoring,
		limiter:  rate.NewLimiter(rate.Limit(opts.RPS), 1),
		man:      opts.Manifest,
		logger:   opts.Logger,
	}
}

// Crawl renders baseURL, writes it as index.html, ranks its links, and
// expands the frontier best-first until maxPages pages (root included) are
// saved. A root failure aborts the crawl; a frontier failure is logged,
// recorded, and skipped.
//
// Frontier output files are named page_<i>.html where i is the entry's
// index in the full ranked frontier — failed attempts leave gaps in the
// numbering on purpose, so filenames stay stable identifiers of rank.
func (c *Crawler) Crawl(ctx context.Context, baseURL string, maxPages int) (*Result, error) {
	res := &Result{}

	if maxPages < 1 {
		return res, fmt.Errorf("sitemirror: page budget must be positive, got %d", maxPages)
	}
	if err := safeio.ValidateURL(baseURL); err != nil {
		return res, fmt.Errorf("sitemirror: base URL: %w", err)
	}

	// FetchRoot: without a rendered root there is no title and no frontier,
	// so any failure here is fatal.
	if err := c.limiter.Wait(ctx); err != nil {
		return res, err
	}
	res.Attempted++
	snap, err := c.renderer.Render(ctx, baseURL)
	if err != nil {
		c.record(ctx, manifest.Attempt{
			URL: baseURL, RankIdx: -1, Status: manifest.StatusFailed, Err: err.Error(),
		})
		return res, fmt.Errorf("sitemirror: render root %s: %w", baseURL, err)
	}
	if _, err := c.out.Write("index.html", snap.HTML); err != nil {
		c.record(ctx, manifest.Attempt{
			URL: baseURL, RankIdx: -1, Status: manifest.StatusFailed, Err: err.Error(),
		})
		return res, fmt.Errorf("sitemirror: persist root: %w", err)
	}
	res.Saved++
	c.record(ctx, manifest.Attempt{
		URL: baseURL, File: "index.html", RankIdx: -1, Status: manifest.StatusSaved,
	})
	c.logger.Info("sitemirror: root saved",
		"url", baseURL, "title", snap.Title, "links", len(snap.Links))

	// RankRoot.
	res.Frontier = score.Rank(snap.Links, score.Context{
		BaseURL:        baseURL,
		Title:          snap.Title,
		ViewportHeight: snap.ViewportHeight,
	}, c.scoring)
	c.logger.Info("sitemirror: frontier ranked", "entries", len(res.Frontier))

	// ExpandFrontier: best-first until the budget is spent.
	for i, entry := range res.Frontier {
		if res.Saved >= maxPages {
			break
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return res, err
		}

		name := fmt.Sprintf("page_%d.html", i)
		res.Attempted++

		if err := c.visit(ctx, entry, i, name); err != nil {
			res.Failures = append(res.Failures, Failure{URL: entry.URL, Err: err})
			c.logger.Warn("sitemirror: page skipped",
				"url", entry.URL, "rank", i, "error", err)
			continue
		}
		res.Saved++
	}

	c.logger.Info("sitemirror: crawl done",
		"saved", res.Saved, "attempted", res.Attempted, "failed", len(res.Failures))
	return res, nil
}

// visit renders and persists one frontier entry.
func (c *Crawler) visit(ctx context.Context, entry score.Scored, rank int, name string) error {
	fail := func(err error) error {
		c.record(ctx, manifest.Attempt{
			URL: entry.URL, RankIdx: rank, Score: entry.Score,
			Status: manifest.StatusFailed, Err: err.Error(),
		})
		return err
	}

	if err := safeio.ValidateURL(entry.URL); err != nil {
		return fail(err)
	}
	snap, err := c.renderer.Render(ctx, entry.URL)
	if err != nil {
		return fail(err)
	}
	if _, err := c.out.Write(name, snap.HTML); err != nil {
		return fail(err)
	}

	c.record(ctx, manifest.Attempt{
		URL: entry.URL, File: name, RankIdx: rank, Score: entry.Score,
		Status: manifest.StatusSaved,
	})
	return nil
}

func (c *Crawler) record(ctx context.Context, a manifest.Attempt) {
	if c.man == nil {
		return
	}
	if err := c.man.Record(ctx, a); err != nil {
		c.logger.Warn("sitemirror: manifest record failed", "url", a.URL, "error", err)
	}
}
