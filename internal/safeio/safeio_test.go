package safeio

import "testing"

func TestSafePath(t *testing.T) {
	tests := []struct {
		root, name string
		wantErr    bool
	}{
		{"/data/mirror", "index.html", false},
		{"/data/mirror", "page_3.html", false},
		{"/data/mirror", "../etc/passwd", true},
		{"/data/mirror", "sub/../../outside", true},
		{"/data/mirror", "sub/page.html", false},
	}
	for _, tt := range tests {
		_, err := SafePath(tt.root, tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("SafePath(%q, %q) error=%v, wantErr=%v", tt.root, tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/", false},
		{"http://example.com/about", false},
		{"ftp://example.com/data", true},
		{"javascript:alert(1)", true},
		{"mailto:someone@example.com", true},
		{"https://", true}, // no host
	}
	for _, tt := range tests {
		err := ValidateURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error=%v, wantErr=%v", tt.url, err, tt.wantErr)
		}
	}
}
