package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Release Notes</title></head>
<body>
  <nav>
    <ul><li><a href="/about">About</a></li></ul>
  </nav>
  <main>
    <article>
      <a href="/notes/v2" style="font-weight: 700; font-size: 22px">Release v2</a>
      <strong><a href="/notes/v1">Release v1</a></strong>
      <div style="display: none"><a href="/hidden">Hidden</a></div>
      <a>No target</a>
    </article>
  </main>
</body>
</html>`

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRenderCollectsCandidates(t *testing.T) {
	srv := serve(t, samplePage)
	f := New(WithClient(srv.Client()))

	snap, err := f.Render(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if snap.Title != "Release Notes" {
		t.Errorf("title = %q, want %q", snap.Title, "Release Notes")
	}
	if snap.ViewportHeight != 0 {
		t.Errorf("viewport height = %v, want 0 (no layout engine)", snap.ViewportHeight)
	}
	if len(snap.Links) != 5 {
		t.Fatalf("links = %d, want 5", len(snap.Links))
	}

	byHref := make(map[string]int)
	for i, l := range snap.Links {
		byHref[l.Href] = i
	}

	about := snap.Links[byHref["/about"]]
	if got := about.Ancestors[:4]; got[0] != "a" || got[1] != "li" || got[2] != "ul" || got[3] != "nav" {
		t.Errorf("about ancestors = %v, want [a li ul nav ...]", about.Ancestors)
	}
	if !about.Visible || about.Bold {
		t.Errorf("about: visible=%v bold=%v, want visible, not bold", about.Visible, about.Bold)
	}

	v2 := snap.Links[byHref["/notes/v2"]]
	if !v2.Bold {
		t.Error("inline font-weight: 700 not detected as bold")
	}
	if v2.FontSize != 22 {
		t.Errorf("font size = %v, want 22", v2.FontSize)
	}

	v1 := snap.Links[byHref["/notes/v1"]]
	if !v1.Bold {
		t.Error("strong ancestor not detected as bold")
	}
	if v1.Text != "Release v1" {
		t.Errorf("v1 text = %q", v1.Text)
	}

	hidden := snap.Links[byHref["/hidden"]]
	if hidden.Visible {
		t.Error("display:none ancestor not detected as hidden")
	}

	noTarget := snap.Links[byHref[""]]
	if noTarget.Href != "" {
		t.Errorf("anchor without href: Href = %q, want empty", noTarget.Href)
	}
	if noTarget.Box != nil {
		t.Error("static backend must not invent bounding boxes")
	}
}

func TestRenderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	f := New(WithClient(srv.Client()))
	if _, err := f.Render(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestRenderUnreachable(t *testing.T) {
	f := New()
	_, err := f.Render(context.Background(), "http://127.0.0.1:1/nope")
	if err == nil {
		t.Error("expected error for unreachable host")
	}
}
