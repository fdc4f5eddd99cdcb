package sitemirror

import (
	"log/slog"

	"github.com/hazyhaar/sitemirror/internal/config"
	"github.com/hazyhaar/sitemirror/internal/render"
)

// ScoringConfig holds the link relevance weights. Re-exported from internal.
type ScoringConfig = config.Scoring

// Snapshot is a rendered page as produced by a backend. Re-exported from
// internal so custom Renderer implementations can be written outside this
// module.
type Snapshot = render.Snapshot

// LoadScoringConfig reads scoring weights from a YAML file. It never fails:
// any problem with the file is logged and the built-in defaults are used.
func LoadScoringConfig(path string, logger *slog.Logger) *ScoringConfig {
	return config.Load(path, logger)
}

// DefaultScoringConfig returns the built-in scoring weights.
func DefaultScoringConfig() *ScoringConfig {
	return config.Default()
}
