// Command sitemirror crawls a single site, saving the base page and its
// most relevant linked pages as rendered HTML.
//
// Usage:
//
//	sitemirror [flags] BASE_URL MAX_PAGES [OUTPUT_DIR] [CONFIG_PATH]
//
//	sitemirror https://example.com 10
//	sitemirror -fetch http https://example.com 5 ./mirror weights.yaml
//
// MAX_PAGES bounds the total number of saved pages, the base page included.
// OUTPUT_DIR defaults to "site_mirror", CONFIG_PATH to "config.yaml" (a
// missing or broken config file falls back to built-in weights).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/hazyhaar/sitemirror"
	"github.com/hazyhaar/sitemirror/internal/browser"
	"github.com/hazyhaar/sitemirror/internal/fetcher"
	"github.com/hazyhaar/sitemirror/internal/manifest"
	"github.com/hazyhaar/sitemirror/internal/store"
)

type cliArgs struct {
	baseURL    string
	maxPages   int
	outputDir  string
	configPath string
}

func main() {
	fetchMode := flag.String("fetch", "browser", "rendering backend: browser or http")
	remote := flag.String("remote", "", "WebSocket URL of an external Chrome (browser mode)")
	rps := flag.Float64("rps", 2, "politeness limit in requests per second")
	manifestPath := flag.String("manifest", "", "crawl manifest path, 'off' to disable (default: <output_dir>/crawl.db)")
	block := flag.String("block", "images,fonts,media", "comma-separated resource types to block in browser mode")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	args, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "sitemirror: %v\n", err)
		fmt.Fprintln(os.Stderr, "usage: sitemirror [flags] BASE_URL MAX_PAGES [OUTPUT_DIR] [CONFIG_PATH]")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, args, *fetchMode, *remote, *rps, *manifestPath, *block); err != nil {
		logger.Error("sitemirror: fatal", "error", err)
		os.Exit(1)
	}
}

// parseArgs validates the positional arguments.
func parseArgs(args []string) (cliArgs, error) {
	if len(args) < 2 || len(args) > 4 {
		return cliArgs{}, fmt.Errorf("expected 2 to 4 arguments, got %d", len(args))
	}

	maxPages, err := strconv.Atoi(args[1])
	if err != nil {
		return cliArgs{}, fmt.Errorf("MAX_PAGES must be an integer: %q", args[1])
	}
	if maxPages < 1 {
		return cliArgs{}, fmt.Errorf("MAX_PAGES must be positive, got %d", maxPages)
	}

	a := cliArgs{
		baseURL:    args[0],
		maxPages:   maxPages,
		outputDir:  "site_mirror",
		configPath: "config.yaml",
	}
	if len(args) >= 3 {
		a.outputDir = args[2]
	}
	if len(args) == 4 {
		a.configPath = args[3]
	}
	return a, nil
}

func run(ctx context.Context, logger *slog.Logger, args cliArgs,
	fetchMode, remote string, rps float64, manifestPath, block string) error {

	out, err := store.NewWriter(args.outputDir)
	if err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	scoring := sitemirror.LoadScoringConfig(args.configPath, logger)

	renderer, err := newRenderer(ctx, logger, fetchMode, remote, block)
	if err != nil {
		return err
	}
	defer renderer.Close()

	var man *manifest.Manifest
	if manifestPath != "off" {
		path := manifestPath
		if path == "" {
			path = filepath.Join(args.outputDir, "crawl.db")
		}
		man, err = manifest.Open(path)
		if err != nil {
			logger.Warn("manifest disabled", "path", path, "error", err)
		} else {
			defer man.Close()
		}
	}

	crawler := sitemirror.New(renderer, out, sitemirror.Options{
		Scoring:  scoring,
		RPS:      rps,
		Manifest: man,
		Logger:   logger,
	})

	res, err := crawler.Crawl(ctx, args.baseURL, args.maxPages)
	if err != nil {
		return fmt.Errorf("crawl: %w (saved %d of %d)", err, res.Saved, args.maxPages)
	}

	logger.Info("mirror complete",
		"saved", res.Saved, "attempted", res.Attempted,
		"failed", len(res.Failures), "output", args.outputDir)
	for _, f := range res.Failures {
		logger.Warn("page not mirrored", "url", f.URL, "error", f.Err)
	}
	return nil
}

func newRenderer(ctx context.Context, logger *slog.Logger, mode, remote, block string) (sitemirror.Renderer, error) {
	switch mode {
	case "http":
		return fetcher.New(fetcher.WithLogger(logger)), nil
	case "browser":
		var blocked []string
		for _, t := range strings.Split(block, ",") {
			if t = strings.TrimSpace(t); t != "" {
				blocked = append(blocked, t)
			}
		}
		r := browser.New(browser.Config{
			RemoteURL:        remote,
			ResourceBlocking: blocked,
			Logger:           logger,
		})
		if err := r.Start(ctx); err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown fetch mode %q (want browser or http)", mode)
	}
}
