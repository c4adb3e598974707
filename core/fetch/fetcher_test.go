package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestFetch tests a successful fetch
func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte("# Hello"))
	}))
	defer srv.Close()

	res, err := New().Fetch(context.Background(), srv.URL+"/doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Body != "# Hello" {
		t.Errorf("want body %q got %q", "# Hello", res.Body)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("want status 200 got %d", res.StatusCode)
	}
	if !strings.HasPrefix(res.ContentType, "text/markdown") {
		t.Errorf("want markdown content type, got %q", res.ContentType)
	}
	if res.URL != srv.URL+"/doc.md" {
		t.Errorf("want URL %q got %q", srv.URL+"/doc.md", res.URL)
	}
	if !strings.HasPrefix(gotUA, "Pygmalion/") {
		t.Errorf("unexpected User-Agent %q", gotUA)
	}
}

// TestFetchErrors tests status and context failures
func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := New().Fetch(context.Background(), srv.URL); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status 404 error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Fetch(ctx, srv.URL); err == nil {
		t.Error("expected error for cancelled context")
	}

	if _, err := New().Fetch(context.Background(), "://bad"); err == nil {
		t.Error("expected error for malformed URL")
	}
}
