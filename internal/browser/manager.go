// Package browser is the headless-Chrome rendering backend. It manages the
// Chrome lifecycle (launch or attach, connect via Rod, close), and renders
// pages with full layout and computed-style data — the richest input the
// link scorer can get.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Config configures the browser backend.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// ResourceBlocking lists resource types to block (images, fonts,
	// media). Stylesheets are never blocked here: the scorer reads
	// computed styles, and blocking CSS would blind it.
	ResourceBlocking []string

	// NavigationTimeout bounds navigate + load per page. Default: 30s.
	NavigationTimeout time.Duration

	// IdleWindow is how long the network must stay quiet after load
	// before a page counts as rendered. Default: 500ms.
	IdleWindow time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = 30 * time.Second
	}
	if c.IdleWindow <= 0 {
		c.IdleWindow = 500 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Renderer renders pages in headless Chrome.
type Renderer struct {
	cfg     Config
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// New creates a browser Renderer. Call Start before rendering.
func New(cfg Config) *Renderer {
	cfg.defaults()
	return &Renderer{cfg: cfg}
}

// Start launches Chrome (or connects to a remote instance).
func (r *Renderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("browser: renderer is closed")
	}
	if r.browser != nil {
		return nil
	}

	log := r.cfg.Logger
	var wsURL string

	if r.cfg.RemoteURL != "" {
		wsURL = r.cfg.RemoteURL
		log.Info("browser: connecting to remote", "url", wsURL)
	} else {
		l := launcher.New().Headless(true)
		l = l.Set("disable-blink-features", "AutomationControlled")

		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		r.lnch = l
		log.Info("browser: launched local chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("browser: connect: %w", err)
	}

	if err := b.IgnoreCertErrors(true); err != nil {
		log.Warn("browser: ignore cert errors failed", "error", err)
	}

	r.browser = b
	return nil
}

// Close shuts down Chrome.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.browser != nil {
		r.browser.Close()
		r.browser = nil
	}
	if r.lnch != nil {
		r.lnch.Cleanup()
		r.lnch = nil
	}
	return nil
}

func (r *Renderer) handle() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser == nil {
		return nil, fmt.Errorf("browser: not started")
	}
	return r.browser, nil
}
