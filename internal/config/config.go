// Package config defines the link scoring weights and loads them from YAML.
//
// The loader never fails its caller: a missing, unreadable, malformed, or
// incomplete document is logged and replaced wholesale by Default(). There
// is no partial merge — either every field of every group is present in the
// file, or the built-in defaults are used verbatim.
package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Scoring holds the five weight groups of the link relevance function.
// It is constructed once per crawl and passed by parameter; components
// treat it as read-only.
type Scoring struct {
	Domain     Domain     `yaml:"domain"`
	Content    Content    `yaml:"content"`
	Position   Position   `yaml:"position"`
	Context    Context    `yaml:"context"`
	Prominence Prominence `yaml:"prominence"`
}

// Domain weighs host locality.
type Domain struct {
	InternalLinkBonus float64 `yaml:"internal_link_bonus"`
}

// Content weighs textual overlap with the page title.
type Content struct {
	TitleWordMatchWeight float64 `yaml:"title_word_match_weight"`
}

// Position weighs vertical placement in the viewport.
type Position struct {
	VerticalPositionWeight float64 `yaml:"vertical_position_weight"`
}

// Context weighs the structural neighbourhood of a link: content areas
// boost, navigation areas penalise. Both indicator sets are tag names.
type Context struct {
	ContentAreaBonus      float64  `yaml:"content_area_bonus"`
	NavigationAreaPenalty float64  `yaml:"navigation_area_penalty"`
	ContentIndicators     []string `yaml:"content_indicators"`
	NavigationIndicators  []string `yaml:"navigation_indicators"`
}

// Prominence weighs how visually loud the rendered link is.
type Prominence struct {
	VisibleLinkBonus   float64 `yaml:"visible_link_bonus"`
	BoldTextBonus      float64 `yaml:"bold_text_bonus"`
	LargeFontBonus     float64 `yaml:"large_font_bonus"`
	LargeFontThreshold float64 `yaml:"large_font_threshold"`
}

// Default returns the built-in scoring weights.
func Default() *Scoring {
	return &Scoring{
		Domain:   Domain{InternalLinkBonus: 3.0},
		Content:  Content{TitleWordMatchWeight: 1.5},
		Position: Position{VerticalPositionWeight: 2.0},
		Context: Context{
			ContentAreaBonus:      2.0,
			NavigationAreaPenalty: -1.0,
			ContentIndicators:     []string{"main", "article", "section"},
			NavigationIndicators:  []string{"nav", "header", "footer", "aside"},
		},
		Prominence: Prominence{
			VisibleLinkBonus:   1.0,
			BoldTextBonus:      0.5,
			LargeFontBonus:     0.5,
			LargeFontThreshold: 18,
		},
	}
}

// fileScoring mirrors Scoring with pointer fields so the loader can tell
// "absent" from "zero". Any nil field rejects the whole document.
type fileScoring struct {
	Domain *struct {
		InternalLinkBonus *float64 `yaml:"internal_link_bonus"`
	} `yaml:"domain"`
	Content *struct {
		TitleWordMatchWeight *float64 `yaml:"title_word_match_weight"`
	} `yaml:"content"`
	Position *struct {
		VerticalPositionWeight *float64 `yaml:"vertical_position_weight"`
	} `yaml:"position"`
	Context *struct {
		ContentAreaBonus      *float64  `yaml:"content_area_bonus"`
		NavigationAreaPenalty *float64  `yaml:"navigation_area_penalty"`
		ContentIndicators     *[]string `yaml:"content_indicators"`
		NavigationIndicators  *[]string `yaml:"navigation_indicators"`
	} `yaml:"context"`
	Prominence *struct {
		VisibleLinkBonus   *float64 `yaml:"visible_link_bonus"`
		BoldTextBonus      *float64 `yaml:"bold_text_bonus"`
		LargeFontBonus     *float64 `yaml:"large_font_bonus"`
		LargeFontThreshold *float64 `yaml:"large_font_threshold"`
	} `yaml:"prominence"`
}

func (f *fileScoring) complete() bool {
	if f.Domain == nil || f.Domain.InternalLinkBonus == nil {
		return false
	}
	if f.Content == nil || f.Content.TitleWordMatchWeight == nil {
		return false
	}
	if f.Position == nil || f.Position.VerticalPositionWeight == nil {
		return false
	}
	c := f.Context
	if c == nil || c.ContentAreaBonus == nil || c.NavigationAreaPenalty == nil ||
		c.ContentIndicators == nil || c.NavigationIndicators == nil {
		return false
	}
	p := f.Prominence
	if p == nil || p.VisibleLinkBonus == nil || p.BoldTextBonus == nil ||
		p.LargeFontBonus == nil || p.LargeFontThreshold == nil {
		return false
	}
	return true
}

func (f *fileScoring) scoring() *Scoring {
	return &Scoring{
		Domain:   Domain{InternalLinkBonus: *f.Domain.InternalLinkBonus},
		Content:  Content{TitleWordMatchWeight: *f.Content.TitleWordMatchWeight},
		Position: Position{VerticalPositionWeight: *f.Position.VerticalPositionWeight},
		Context: Context{
			ContentAreaBonus:      *f.Context.ContentAreaBonus,
			NavigationAreaPenalty: *f.Context.NavigationAreaPenalty,
			ContentIndicators:     *f.Context.ContentIndicators,
			NavigationIndicators:  *f.Context.NavigationIndicators,
		},
		Prominence: Prominence{
			VisibleLinkBonus:   *f.Prominence.VisibleLinkBonus,
			BoldTextBonus:      *f.Prominence.BoldTextBonus,
			LargeFontBonus:     *f.Prominence.LargeFontBonus,
			LargeFontThreshold: *f.Prominence.LargeFontThreshold,
		},
	}
}

// Load reads scoring weights from a YAML file. It always returns a usable
// configuration: on any read, parse, or completeness failure it logs a
// warning and returns Default(). A complete document is used as-is — no
// range checks, negative weights included.
func Load(path string, logger *slog.Logger) *Scoring {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("config: using built-in defaults", "path", path, "error", err)
		return Default()
	}

	var f fileScoring
	if err := yaml.Unmarshal(data, &f); err != nil {
		logger.Warn("config: malformed YAML, using built-in defaults", "path", path, "error", err)
		return Default()
	}

	if !f.complete() {
		logger.Warn("config: incomplete document, using built-in defaults", "path", path)
		return Default()
	}

	return f.scoring()
}
