// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// read or fetch → (extract → normalize) → parse → render → write.
//
// It resolves the input source, selects the renderer, and handles the
// single-source and --all modes.
package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/pygmalion/config"
	"github.com/gaurav-prasanna/pygmalion/core"
	"github.com/gaurav-prasanna/pygmalion/core/extract"
	"github.com/gaurav-prasanna/pygmalion/core/fetch"
	"github.com/gaurav-prasanna/pygmalion/core/normalize"
	"github.com/gaurav-prasanna/pygmalion/core/output"
	"github.com/gaurav-prasanna/pygmalion/core/parse"
	"github.com/gaurav-prasanna/pygmalion/core/pipeline"
	"github.com/gaurav-prasanna/pygmalion/core/render"
	"github.com/gaurav-prasanna/pygmalion/crawl"
	"github.com/spf13/cobra"
)

// converter carries the state of one convert invocation.
type converter struct {
	opts    config.Options
	pipe    *pipeline.Pipeline
	fetcher core.Fetcher
	stdout  io.Writer
	stderr  io.Writer
}

func newConvertCmd() *cobra.Command {
	opts := config.Default()
	cmd := &cobra.Command{
		Use:   "convert [file|url|-]",
		Short: "Convert a markup source to the specified output format",
		Long: `Convert parses a markup source and renders it in the chosen format.
The source is a file path, an http(s) URL, or "-" (the default) for stdin.
HTML input (--html, a .html file, or an HTML response) is reduced to its main
content and normalized into the markup dialect before parsing.

Examples:
  pygmalion convert notes.md
  pygmalion convert notes.md -f html --standalone --output_dir ./out
  cat notes.md | pygmalion convert -f ansi
  pygmalion convert https://example.com -f json --stdout
  pygmalion convert https://example.com --all -f pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return runConvert(cmd, opts, source)
		},
	}
	opts.Bind(cmd.Flags())
	return cmd
}

func runConvert(cmd *cobra.Command, opts config.Options, source string) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	renderer, err := render.New(opts.Format, opts.RenderOptions())
	if err != nil {
		return err
	}

	c := &converter{
		opts: opts,
		pipe: &pipeline.Pipeline{
			Parser:     parse.New(),
			Renderer:   renderer,
			Extractor:  extract.New(),
			Normalizer: normalize.New(),
		},
		fetcher: fetch.New(),
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.All {
		if !isURL(source) {
			return fmt.Errorf("--all requires an http(s) URL, got %q", source)
		}
		return c.runAll(ctx, source)
	}
	return c.runOne(ctx, cmd.InOrStdin(), source)
}

// runOne converts a single source.
func (c *converter) runOne(ctx context.Context, stdin io.Reader, source string) error {
	res, err := c.convert(ctx, stdin, source)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(source), err)
	}

	// Stdin goes to stdout unless an output directory was asked for.
	if c.opts.Stdout || (source == "-" && c.opts.OutputDir == "") {
		return output.WriteTo(c.stdout, res.Data)
	}

	writer, err := output.New(c.opts.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteSource(source, res.Data, c.pipe.Renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers all internal pages and converts each one.
func (c *converter) runAll(ctx context.Context, rawURL string) error {
	writer, err := output.New(c.opts.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fmt.Fprintf(c.stdout, "Discovering pages from %s...\n", rawURL)
	urls, err := crawl.NewDiscoverer(c.fetcher, c.opts.Limit).Discover(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	fmt.Fprintf(c.stdout, "Found %d pages to process\n", len(urls))

	var errCount int
	for i, pageURL := range urls {
		fmt.Fprintf(c.stdout, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)

		res, err := c.convert(ctx, nil, pageURL)
		if err != nil {
			fmt.Fprintf(c.stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteMirror(pageURL, res.Data, c.pipe.Renderer.Extension())
		if err != nil {
			fmt.Fprintf(c.stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(c.stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(c.stderr, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	if len(urls) > 0 && errCount == len(urls) {
		return fmt.Errorf("all %d pages failed", errCount)
	}
	return nil
}

// convert reads or fetches source and runs it through the pipeline.
func (c *converter) convert(ctx context.Context, stdin io.Reader, source string) (*pipeline.Result, error) {
	start := time.Now()

	var (
		body   string
		isHTML = c.opts.HTML
	)
	switch {
	case isURL(source):
		result, err := c.fetcher.Fetch(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		body = result.Body
		if !crawl.IsMarkupURL(source) && crawl.IsHTMLType(result.ContentType) {
			isHTML = true
		}
	case source == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		body = string(data)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		body = string(data)
		switch strings.ToLower(filepath.Ext(source)) {
		case ".html", ".htm", ".xhtml":
			isHTML = true
		}
	}
	c.verbosef("  read %d bytes in %s", len(body), time.Since(start))

	start = time.Now()
	var (
		res *pipeline.Result
		err error
	)
	if isHTML {
		res, err = c.pipe.RunHTML(body, sourceName(source))
	} else {
		res, err = c.pipe.RunWithMeta(body, core.Metadata{Source: sourceName(source)})
	}
	if err != nil {
		return nil, err
	}
	c.verbosef("  converted %d blocks to %d bytes in %s", len(res.Document.Blocks), len(res.Data), time.Since(start))
	return res, nil
}

func (c *converter) verbosef(format string, args ...any) {
	if c.opts.Verbose {
		fmt.Fprintf(c.stderr, format+"\n", args...)
	}
}

// isURL reports whether source is an absolute http(s) URL.
func isURL(source string) bool {
	parsed, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// sourceName is the value recorded in document metadata.
func sourceName(source string) string {
	if source == "-" {
		return ""
	}
	return source
}

func displayName(source string) string {
	if source == "-" {
		return "stdin"
	}
	return source
}
