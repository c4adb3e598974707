package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the command tree with args and stdin, returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

// TestConvertStdin tests stdin to stdout conversion
func TestConvertStdin(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default text", []string{"convert"}, "Hello\n"},
		{"dash", []string{"convert", "-", "-f", "html"}, "<p>Hello</p>\n"},
		{"alias", []string{"convert", "--format", "md"}, "Hello\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, "Hello", tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("want %q got %q", tt.want, out)
			}
		})
	}
}

// TestConvertErrors tests that failures surface as errors
func TestConvertErrors(t *testing.T) {
	_, _, err := run(t, "hello `world", "convert")
	if err == nil || err.Error() != "stdin: parse: 1:7: invalid syntax: unterminated code span" {
		t.Errorf("unexpected parse error: %v", err)
	}

	_, _, err = run(t, "x", "convert", "-f", "docx")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("want unknown format error, got %v", err)
	}

	_, _, err = run(t, "", "convert", filepath.Join(t.TempDir(), "missing.md"))
	if err == nil || !strings.Contains(err.Error(), "reading input") {
		t.Errorf("want read error, got %v", err)
	}

	_, _, err = run(t, "", "convert", "notes.md", "--all")
	if err == nil || !strings.Contains(err.Error(), "--all requires") {
		t.Errorf("want --all URL error, got %v", err)
	}
}

// TestConvertFile tests writing a converted file to the output directory
func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(src, []byte("# Notes\n\n- one\n- two\n"), 0644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	out, _, err := run(t, "", "convert", src, "-f", "json", "--output_dir", outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(outDir, "notes.json")
	if !strings.Contains(out, "✓ Written: "+want) {
		t.Errorf("missing progress line for %s: %q", want, out)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	for _, s := range []string{`"source": "` + src + `"`, `"title": "Notes"`} {
		if !strings.Contains(string(data), s) {
			t.Errorf("output missing %s:\n%s", s, data)
		}
	}
}

// TestConvertHTMLFile tests that .html inputs go through extraction
func TestConvertHTMLFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "page.html")
	html := `<html><body><nav>menu</nav><main><h1>Doc</h1><p>Body</p></main></body></html>`
	if err := os.WriteFile(src, []byte(html), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "", "convert", src, "--stdout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Doc\n===\n\nBody\n" {
		t.Errorf("want %q got %q", "Doc\n===\n\nBody\n", out)
	}
}

// TestConvertURL tests fetching markup and HTML sources
func TestConvertURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doc.md":
			w.Header().Set("Content-Type", "text/markdown")
			fmt.Fprint(w, "**bold** move")
		default:
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html><body><p>from <em>html</em></p></body></html>")
		}
	}))
	defer srv.Close()

	out, _, err := run(t, "", "convert", srv.URL+"/doc.md", "--stdout", "-f", "html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<p><strong>bold</strong> move</p>\n" {
		t.Errorf("markup URL: got %q", out)
	}

	out, _, err = run(t, "", "convert", srv.URL+"/page", "--stdout", "-f", "md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from *html*\n" {
		t.Errorf("html URL: got %q", out)
	}
}

// TestConvertAll tests crawling and mirroring a site
func TestConvertAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><nav><a href="/docs/intro">intro</a><a href="/bad">bad</a></nav><h1>Home</h1></body></html>`)
	})
	mux.HandleFunc("/docs/intro", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Intro page</p></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	out, errOut, err := run(t, "", "convert", srv.URL+"/", "--all", "-f", "text", "--output_dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Found 3 pages to process") {
		t.Errorf("missing discovery summary: %q", out)
	}
	if !strings.Contains(errOut, "1/3 pages failed") {
		t.Errorf("missing failure summary: %q", errOut)
	}

	for path, want := range map[string]string{
		"index.txt":                        "Home\n====",
		filepath.Join("docs", "intro.txt"): "Intro page",
	} {
		data, err := os.ReadFile(filepath.Join(dir, path))
		if err != nil {
			t.Errorf("%s not written: %v", path, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s: want %q got %q", path, want, data)
		}
	}
}

// TestFormatsAndVersion tests the informational commands
func TestFormatsAndVersion(t *testing.T) {
	out, _, err := run(t, "", "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	for _, want := range []string{"FORMAT", "chunks", ".chunks.json", "pdf", ".pdf", "ansi", ".ans"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing %q:\n%s", want, out)
		}
	}

	out, _, err = run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "pygmalion dev\n" {
		t.Errorf("want %q got %q", "pygmalion dev\n", out)
	}
}
