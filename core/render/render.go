// Package render provides output renderers for the Pygmalion pipeline.
// Every renderer accepts any *core.Document, maps each block in document
// order, and fails with a *core.RenderError on the first block or inline
// it cannot map.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/pygmalion/core"
)

// Options configures renderer construction.
type Options struct {
	// Width wraps text at this many columns; 0 disables wrapping.
	Width int
	// Standalone makes the HTML renderer emit a full page.
	Standalone bool
	// NoColor makes the ANSI renderer emit text without escape codes.
	NoColor bool
	// ChunkSize is the number of words per chunk for the chunks format.
	ChunkSize int
}

// constructors maps a format name to its renderer.
var constructors = map[string]func(Options) core.Renderer{
	"text":     func(o Options) core.Renderer { return NewTextRenderer(o.Width) },
	"markdown": func(o Options) core.Renderer { return NewMarkdownRenderer() },
	"html":     func(o Options) core.Renderer { return NewHTMLRenderer(o.Standalone) },
	"json":     func(o Options) core.Renderer { return NewJSONRenderer() },
	"ansi":     func(o Options) core.Renderer { return NewANSIRenderer(o.Width, o.NoColor) },
	"pdf":      func(o Options) core.Renderer { return NewPDFRenderer() },
	"chunks":   func(o Options) core.Renderer { return NewChunksRenderer(o.ChunkSize) },
}

// aliases are alternative spellings accepted by New.
var aliases = map[string]string{
	"txt":   "text",
	"plain": "text",
	"md":    "markdown",
	"term":  "ansi",
}

// Formats returns the names of all renderers, sorted.
func Formats() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the renderer for the named format.
func New(format string, opts Options) (core.Renderer, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(Formats(), ", "))
	}
	return ctor(opts), nil
}

// checkDocument returns the first block or inline outside the closed variant
// set, including nil pointers to known variants. Every renderer runs it before
// producing output, so their type switches never see a nil node.
func checkDocument(format string, doc *core.Document) error {
	for i, b := range doc.Blocks {
		if core.IsNilBlock(b) || !b.Kind().Valid() {
			return core.UnsupportedBlock(format, i, b)
		}
		if in, bad := core.CheckInlines(b); bad {
			return core.UnsupportedInline(format, i, b, in)
		}
	}
	return nil
}

func orEmpty(doc *core.Document) *core.Document {
	if doc == nil {
		return &core.Document{}
	}
	return doc
}
