package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/sitemirror/internal/safeio"
)

func TestWriterWrite(t *testing.T) {
	w, err := NewWriter(filepath.Join(t.TempDir(), "mirror"))
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	path, err := w.Write("index.html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("content = %q", data)
	}
}

func TestWriterRejectsTraversal(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	_, err = w.Write("../escape.html", []byte("x"))
	if !errors.Is(err, safeio.ErrPathTraversal) {
		t.Errorf("error = %v, want ErrPathTraversal", err)
	}
}

func TestNewWriterCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "mirror")
	if _, err := NewWriter(root); err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		t.Errorf("output root not created: %v", err)
	}
}

func TestNewWriterEmptyRoot(t *testing.T) {
	if _, err := NewWriter(""); err == nil {
		t.Error("expected error for empty root")
	}
}
