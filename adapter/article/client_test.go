package article

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"viralfeed/domain"
)

func TestStripLinks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "no links here", "no links here"},
		{"link becomes anchor text", "read [the docs](https://example.com) now", "read the docs now"},
		{"image reference kept", "![Author Avatar](https://cdn.example.com/a.png)", "![Author Avatar](https://cdn.example.com/a.png)"},
		{"adjacent links", "[a](x)[b](y)", "ab"},
		{"link at line start", "[home](https://example.com) is here", "home is here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripLinks(tt.in); got != tt.want {
				t.Errorf("StripLinks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClientExtractRendersAndSlices(t *testing.T) {
	page := `<html><body>
<h1>Big Launch</h1>
<p>Something <a href="https://example.com/x">shipped</a> today.</p>
<h2>Most Popular</h2>
<p>sidebar noise</p>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	text, _, err := NewClient().Extract(context.Background(), domain.OutletTechCrunch, srv.URL)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if !strings.Contains(text, "Big Launch") || !strings.Contains(text, "shipped") {
		t.Errorf("extracted text missing article content: %q", text)
	}
	if strings.Contains(text, "sidebar noise") {
		t.Errorf("extracted text includes content past the end marker: %q", text)
	}
	if strings.Contains(text, "https://example.com/x") {
		t.Errorf("body rendering should have hyperlinks stripped: %q", text)
	}
}

func TestClientExtractNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := NewClient().Extract(context.Background(), domain.OutletTechCrunch, srv.URL)
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Extract() error = %v, want FetchError", err)
	}
	if fetchErr.Status != http.StatusNotFound {
		t.Errorf("FetchError.Status = %d, want 404", fetchErr.Status)
	}
}
