// Package store persists rendered pages under the mirror output root.
// Every write goes through a path-safety check so a hostile filename can
// never land outside the root.
package store

import (
	"fmt"
	"os"

	"github.com/hazyhaar/sitemirror/internal/safeio"
)

// Writer writes page files under a fixed output root.
type Writer struct {
	root string
}

// NewWriter creates the output root (and parents) and returns a Writer.
func NewWriter(root string) (*Writer, error) {
	if root == "" {
		return nil, fmt.Errorf("store: empty output root")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("store: create output root: %w", err)
	}
	return &Writer{root: root}, nil
}

// Root returns the output root path.
func (w *Writer) Root() string { return w.root }

// Write persists content as name inside the root. The name is validated
// against traversal before anything touches the filesystem; a rejected name
// is an error, not a panic.
func (w *Writer) Write(name string, content []byte) (string, error) {
	path, err := safeio.SafePath(w.root, name)
	if err != nil {
		return "", fmt.Errorf("store: unsafe name %q: %w", name, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("store: write %s: %w", path, err)
	}
	return path, nil
}
