// Package pipeline wires the conversion stages together:
// parse → render for markup sources, and
// extract → normalize → parse → render for HTML pages.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/gaurav-prasanna/pygmalion/core"
)

// Pipeline holds one implementation of each stage. It keeps no state
// between calls, so a Pipeline may be shared between goroutines when its
// stages may.
type Pipeline struct {
	Parser     core.Parser
	Renderer   core.Renderer
	Extractor  core.Extractor
	Normalizer core.Normalizer
}

// Result is the output of a run together with the document it came from.
type Result struct {
	Document *core.Document
	Data     []byte
}

var (
	errNoParser   = errors.New("pipeline has no parser")
	errNoRenderer = errors.New("pipeline has no renderer")
	errNoHTML     = errors.New("pipeline has no extractor or normalizer")
)

// Run parses input and renders the resulting Document.
// Parse failures wrap a *core.ParseError, render failures a *core.RenderError.
func (p *Pipeline) Run(input string) (*Result, error) {
	return p.RunWithMeta(input, core.Metadata{})
}

// RunWithMeta is Run with document metadata attached before rendering.
func (p *Pipeline) RunWithMeta(input string, meta core.Metadata) (*Result, error) {
	if p.Parser == nil {
		return nil, errNoParser
	}
	if p.Renderer == nil {
		return nil, errNoRenderer
	}

	doc, err := p.Parser.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	doc.Meta = meta

	data, err := p.Renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return &Result{Document: doc, Data: data}, nil
}

// RunHTML extracts the main content of an HTML page, normalizes it into
// the markup dialect and runs it. The page title becomes the document title.
func (p *Pipeline) RunHTML(html string, source string) (*Result, error) {
	if p.Extractor == nil || p.Normalizer == nil {
		return nil, errNoHTML
	}

	page, err := p.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	markup, err := p.Normalizer.Normalize(page.HTML)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	return p.RunWithMeta(markup, core.Metadata{Source: source, Title: page.Title})
}
