// Package safeio guards the crawler's filesystem and network boundaries:
// output paths must stay inside the mirror root, and crawl targets must be
// plain http/https URLs.
package safeio

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when an output filename escapes the mirror root.
var ErrPathTraversal = errors.New("safeio: path traversal detected")

// ErrUnsafeScheme is returned when a URL uses a non-HTTP(S) scheme.
var ErrUnsafeScheme = errors.New("safeio: only http and https schemes are allowed")

// SafePath validates that joining root and name does not escape root.
// Returns the cleaned absolute path or ErrPathTraversal.
func SafePath(root, name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrPathTraversal
	}
	cleaned := filepath.Join(root, filepath.Clean("/"+name))
	if !strings.HasPrefix(cleaned, filepath.Clean(root)+string(filepath.Separator)) &&
		cleaned != filepath.Clean(root) {
		return "", ErrPathTraversal
	}
	return cleaned, nil
}

// ValidateURL checks that rawURL parses, uses http or https, and has a host.
// Crawl targets come from the command line and from rendered pages, so this
// is the single gate that keeps javascript:, data:, and file: out.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("safeio: invalid URL: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ErrUnsafeScheme
	}
	if u.Hostname() == "" {
		return fmt.Errorf("safeio: URL has no host")
	}
	return nil
}
