// Package core defines the document model and the pipeline interfaces for Pygmalion.
// Each stage of the pipeline is a clean, testable interface; the Document tree
// is the only value passed between the parse and render stages.
package core

import "context"

// FetchResult holds the raw body and response metadata from a fetch.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// Parser converts source text in the markup dialect into a Document.
// Implementations are deterministic and side-effect free; on failure they
// return a *ParseError and no Document.
type Parser interface {
	Parse(input string) (*Document, error)
}

// Renderer converts a Document into a final output format.
// Implementations never mutate the Document; on failure they return a *RenderError.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".txt", ".pdf").
	Extension() string
}

// Fetcher retrieves a remote source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extraction is the main content of an HTML page.
type Extraction struct {
	Title string
	HTML  string
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (*Extraction, error)
}

// Normalizer converts cleaned HTML into the markup dialect.
type Normalizer interface {
	Normalize(html string) (string, error)
}
