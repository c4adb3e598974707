// Package config holds the conversion settings shared by the CLI commands.
// Defaults come from the environment, flags override them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/pygmalion/core/render"
	"github.com/spf13/pflag"
)

// Environment variables that supply defaults.
const (
	EnvFormat    = "PYGMALION_FORMAT"
	EnvOutputDir = "PYGMALION_OUTPUT_DIR"
	EnvWidth     = "PYGMALION_WIDTH"
)

// Options configures a conversion run.
type Options struct {
	Format     string
	HTML       bool
	All        bool
	Limit      int
	OutputDir  string
	Stdout     bool
	Width      int
	Standalone bool
	NoColor    bool
	ChunkSize  int
	Verbose    bool
}

// Default returns Options seeded from the environment.
func Default() Options {
	o := Options{
		Format:    "text",
		ChunkSize: 512,
		Limit:     100,
	}
	if v := os.Getenv(EnvFormat); v != "" {
		o.Format = v
	}
	o.OutputDir = os.Getenv(EnvOutputDir)
	if v, err := strconv.Atoi(os.Getenv(EnvWidth)); err == nil {
		o.Width = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		o.NoColor = true
	}
	return o
}

// Bind registers a flag for every option on fs, using the current values
// as defaults.
func (o *Options) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Format, "format", "f", o.Format, "Output format: "+formatList())
	fs.BoolVar(&o.HTML, "html", o.HTML, "Treat the input as an HTML page")
	fs.BoolVar(&o.All, "all", o.All, "Crawl the site and convert every discovered page")
	fs.IntVar(&o.Limit, "limit", o.Limit, "Maximum pages to convert with --all")
	fs.StringVar(&o.OutputDir, "output_dir", o.OutputDir, "Output directory (default: current directory)")
	fs.BoolVar(&o.Stdout, "stdout", o.Stdout, "Write the result to stdout instead of a file")
	fs.IntVar(&o.Width, "width", o.Width, "Wrap text output at this many columns (0 disables)")
	fs.BoolVar(&o.Standalone, "standalone", o.Standalone, "Emit a full HTML page")
	fs.BoolVar(&o.NoColor, "no-color", o.NoColor, "Disable colours in ansi output")
	fs.IntVar(&o.ChunkSize, "chunk_size", o.ChunkSize, "Words per chunk for the chunks format")
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "Report stage timings")
}

// Validate checks option values and combinations.
func (o *Options) Validate() error {
	if _, err := render.New(o.Format, o.RenderOptions()); err != nil {
		return err
	}
	if o.Width < 0 {
		return fmt.Errorf("--width must not be negative (got %d)", o.Width)
	}
	if o.ChunkSize <= 0 {
		return fmt.Errorf("--chunk_size must be positive (got %d)", o.ChunkSize)
	}
	if o.All && o.Stdout {
		return fmt.Errorf("--all and --stdout are mutually exclusive")
	}
	if o.All && o.Limit <= 0 {
		return fmt.Errorf("--limit must be positive (got %d)", o.Limit)
	}
	return nil
}

// RenderOptions returns the renderer settings.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Width:      o.Width,
		Standalone: o.Standalone,
		NoColor:    o.NoColor,
		ChunkSize:  o.ChunkSize,
	}
}

func formatList() string {
	return strings.Join(render.Formats(), ", ")
}
