package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const fullDoc = `
domain:
  internal_link_bonus: 4.0
content:
  title_word_match_weight: 1.0
position:
  vertical_position_weight: 0.5
context:
  content_area_bonus: 2.5
  navigation_area_penalty: -2.0
  content_indicators: [main, article]
  navigation_indicators: [nav, footer]
prominence:
  visible_link_bonus: 1.0
  bold_text_bonus: 0.25
  large_font_bonus: 0.25
  large_font_threshold: 20
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if !reflect.DeepEqual(got, Default()) {
		t.Errorf("missing file: got %+v, want defaults", got)
	}
}

func TestLoadMalformedReturnsDefault(t *testing.T) {
	got := Load(writeTemp(t, "domain: [not: a: map"), nil)
	if !reflect.DeepEqual(got, Default()) {
		t.Errorf("malformed file: got %+v, want defaults", got)
	}
}

func TestLoadFullDocument(t *testing.T) {
	got := Load(writeTemp(t, fullDoc), nil)
	if got.Domain.InternalLinkBonus != 4.0 {
		t.Errorf("internal_link_bonus = %v, want 4.0", got.Domain.InternalLinkBonus)
	}
	if got.Context.NavigationAreaPenalty != -2.0 {
		t.Errorf("navigation_area_penalty = %v, want -2.0", got.Context.NavigationAreaPenalty)
	}
	if want := []string{"main", "article"}; !reflect.DeepEqual(got.Context.ContentIndicators, want) {
		t.Errorf("content_indicators = %v, want %v", got.Context.ContentIndicators, want)
	}
	if got.Prominence.LargeFontThreshold != 20 {
		t.Errorf("large_font_threshold = %v, want 20", got.Prominence.LargeFontThreshold)
	}
}

func TestLoadPartialDocumentRejectedWholesale(t *testing.T) {
	// A document with only the domain group must not be merged into the
	// defaults — it is replaced entirely by them.
	partial := "domain:\n  internal_link_bonus: 99.0\n"
	got := Load(writeTemp(t, partial), nil)
	if !reflect.DeepEqual(got, Default()) {
		t.Errorf("partial file: got %+v, want defaults", got)
	}
	if got.Domain.InternalLinkBonus == 99.0 {
		t.Error("partial document leaked into effective config")
	}
}

func TestLoadMissingSingleFieldRejectedWholesale(t *testing.T) {
	// Drop one prominence field from an otherwise full document.
	doc := fullDoc[:len(fullDoc)-len("  large_font_threshold: 20\n")]
	got := Load(writeTemp(t, doc), nil)
	if !reflect.DeepEqual(got, Default()) {
		t.Errorf("incomplete file: got %+v, want defaults", got)
	}
}

func TestLoadSemanticallyOddDocumentAccepted(t *testing.T) {
	// Negative weights parse fine and are used as-is.
	doc := `
domain:
  internal_link_bonus: -5.0
content:
  title_word_match_weight: 0
position:
  vertical_position_weight: 0
context:
  content_area_bonus: 0
  navigation_area_penalty: 3.0
  content_indicators: []
  navigation_indicators: []
prominence:
  visible_link_bonus: 0
  bold_text_bonus: 0
  large_font_bonus: 0
  large_font_threshold: 0
`
	got := Load(writeTemp(t, doc), nil)
	if got.Domain.InternalLinkBonus != -5.0 {
		t.Errorf("negative weight not preserved: %v", got.Domain.InternalLinkBonus)
	}
	if got.Context.NavigationAreaPenalty != 3.0 {
		t.Errorf("positive penalty not preserved: %v", got.Context.NavigationAreaPenalty)
	}
}
