package config

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// TestDefaultFromEnv tests environment defaults
func TestDefaultFromEnv(t *testing.T) {
	t.Setenv(EnvFormat, "html")
	t.Setenv(EnvOutputDir, "/tmp/out")
	t.Setenv(EnvWidth, "72")
	t.Setenv("NO_COLOR", "")

	o := Default()
	if o.Format != "html" || o.OutputDir != "/tmp/out" || o.Width != 72 || !o.NoColor {
		t.Errorf("unexpected options from env: %+v", o)
	}
	if o.ChunkSize != 512 {
		t.Errorf("want chunk size 512 got %d", o.ChunkSize)
	}
}

// TestBindOverridesDefaults tests that flags override environment defaults
func TestBindOverridesDefaults(t *testing.T) {
	t.Setenv(EnvFormat, "json")

	o := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.Bind(fs)
	if err := fs.Parse([]string{"-f", "md", "--width", "40", "--standalone", "--chunk_size=64"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Format != "md" || o.Width != 40 || !o.Standalone || o.ChunkSize != 64 {
		t.Errorf("unexpected options after flags: %+v", o)
	}

	if got := fs.Lookup("format").DefValue; got != "json" {
		t.Errorf("want format default %q from env, got %q", "json", got)
	}
}

// TestValidate tests option checks
func TestValidate(t *testing.T) {
	base := func() Options { return Options{Format: "text", ChunkSize: 10, Limit: 5} }
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{"ok", func(o *Options) {}, ""},
		{"alias", func(o *Options) { o.Format = "md" }, ""},
		{"unknown format", func(o *Options) { o.Format = "docx" }, "unknown format"},
		{"negative width", func(o *Options) { o.Width = -1 }, "--width"},
		{"chunk size", func(o *Options) { o.ChunkSize = 0 }, "--chunk_size"},
		{"all stdout", func(o *Options) { o.All, o.Stdout = true, true }, "mutually exclusive"},
		{"limit", func(o *Options) { o.All, o.Limit = true, 0 }, "--limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := base()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("want error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
