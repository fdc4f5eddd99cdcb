package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/stealth"

	"github.com/hazyhaar/sitemirror/internal/render"
	"github.com/hazyhaar/sitemirror/internal/score"
)

// collectJS gathers, in one evaluation, everything the scorer needs from
// the live DOM: page title, viewport height, and per-anchor attributes.
// Hrefs are taken from the raw attribute (not the resolved property) so
// resolution stays in the ranking engine, identical across backends.
const collectJS = `() => {
	const anchors = Array.from(document.querySelectorAll('a')).map(a => {
		const rect = a.getBoundingClientRect();
		const style = window.getComputedStyle(a);
		const weight = parseInt(style.fontWeight, 10) || 0;
		const chain = [];
		let el = a;
		while (el && el.tagName && chain.length < 8) {
			chain.push(el.tagName.toLowerCase());
			el = el.parentElement;
		}
		return {
			href: a.getAttribute('href') || '',
			text: a.textContent || '',
			x: rect.x, y: rect.y, w: rect.width, h: rect.height,
			laidOut: rect.width > 0 || rect.height > 0,
			visible: style.display !== 'none' && style.visibility !== 'hidden',
			bold: weight >= 600,
			fontSize: parseFloat(style.fontSize) || 0,
			ancestors: chain,
		};
	});
	return {
		title: document.title || '',
		viewportHeight: window.innerHeight,
		links: anchors,
	};
}`

// Render navigates a fresh stealth tab to pageURL, waits for load plus a
// network-idle window, and returns the page snapshot. The tab is closed
// before returning.
func (r *Renderer) Render(ctx context.Context, pageURL string) (*render.Snapshot, error) {
	b, err := r.handle()
	if err != nil {
		return nil, err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}
	defer page.Close()

	if len(r.cfg.ResourceBlocking) > 0 {
		if err := applyResourceBlocking(page, r.cfg.ResourceBlocking); err != nil {
			r.cfg.Logger.Warn("browser: resource blocking failed", "error", err)
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, r.cfg.NavigationTimeout)
	defer cancel()
	p := page.Context(navCtx)

	if err := p.Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := p.WaitLoad(); err != nil {
		r.cfg.Logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}
	// Let in-flight XHR settle so dynamically injected links are present.
	wait := p.WaitRequestIdle(r.cfg.IdleWindow, nil, nil, nil)
	wait()

	htmlRes, err := p.Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("browser: serialize %s: %w", pageURL, err)
	}

	res, err := p.Eval(collectJS)
	if err != nil {
		return nil, fmt.Errorf("browser: collect links %s: %w", pageURL, err)
	}

	snap := &render.Snapshot{
		URL:            pageURL,
		Title:          res.Value.Get("title").Str(),
		HTML:           []byte(htmlRes.Value.Str()),
		ViewportHeight: res.Value.Get("viewportHeight").Num(),
	}

	for _, rec := range res.Value.Get("links").Arr() {
		c := score.Candidate{
			Href:     rec.Get("href").Str(),
			Text:     rec.Get("text").Str(),
			Visible:  rec.Get("visible").Bool(),
			Bold:     rec.Get("bold").Bool(),
			FontSize: rec.Get("fontSize").Num(),
		}
		for _, tag := range rec.Get("ancestors").Arr() {
			c.Ancestors = append(c.Ancestors, tag.Str())
		}
		if rec.Get("laidOut").Bool() {
			c.Box = &score.Box{
				X:      rec.Get("x").Num(),
				Y:      rec.Get("y").Num(),
				Width:  rec.Get("w").Num(),
				Height: rec.Get("h").Num(),
			}
		}
		snap.Links = append(snap.Links, c)
	}

	r.cfg.Logger.Debug("browser: rendered",
		"url", pageURL, "size", len(snap.HTML), "links", len(snap.Links))

	return snap, nil
}
