// Package render — JSON renderer.
// Serialises the Document tree with kind-tagged blocks and inlines, plus a
// structural summary (headings, links, code blocks, lists, quotes).
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pygmalion/core"
)

// InlineJSON is the JSON form of a core.Inline.
type InlineJSON struct {
	Kind     string       `json:"kind"`
	Text     string       `json:"text,omitempty"`
	URL      string       `json:"url,omitempty"`
	Children []InlineJSON `json:"children,omitempty"`
}

// BlockJSON is the JSON form of a core.Block.
type BlockJSON struct {
	Kind    string         `json:"kind"`
	Level   int            `json:"level,omitempty"`
	Info    string         `json:"info,omitempty"`
	Ordered bool           `json:"ordered,omitempty"`
	Start   int            `json:"start,omitempty"`
	Text    string         `json:"text"`
	Inlines []InlineJSON   `json:"inlines,omitempty"`
	Items   [][]InlineJSON `json:"items,omitempty"`
}

// HeadingEntry is a heading found in the document.
type HeadingEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// LinkEntry is a hyperlink found in the document.
type LinkEntry struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Structure summarises the document's shape.
type Structure struct {
	Headings   []HeadingEntry `json:"headings"`
	Links      []LinkEntry    `json:"links"`
	CodeBlocks int            `json:"code_blocks"`
	Lists      int            `json:"lists"`
	Quotes     int            `json:"quotes"`
	Words      int            `json:"words"`
}

// DocumentJSON is the complete JSON output for a Document.
type DocumentJSON struct {
	Metadata  core.Metadata `json:"metadata"`
	Blocks    []BlockJSON   `json:"blocks"`
	Structure Structure     `json:"structure"`
}

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the Document into the JSON structure.
func (r *JSONRenderer) Render(doc *core.Document) ([]byte, error) {
	page, err := r.Build(doc)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Build converts the Document into its JSON form without encoding it.
func (r *JSONRenderer) Build(doc *core.Document) (*DocumentJSON, error) {
	doc = orEmpty(doc)
	if err := checkDocument("json", doc); err != nil {
		return nil, err
	}

	meta := doc.Meta
	meta.Title = doc.Title()
	page := &DocumentJSON{
		Metadata: meta,
		Blocks:   make([]BlockJSON, 0, len(doc.Blocks)),
		Structure: Structure{
			Headings: make([]HeadingEntry, 0),
			Links:    make([]LinkEntry, 0),
		},
	}

	err := core.Walk(doc, func(i int, b core.Block) error {
		out := BlockJSON{Kind: b.Kind().String()}
		switch n := b.(type) {
		case *core.Paragraph:
			out.Inlines = inlinesJSON(n.Inlines)
			out.Text = core.PlainText(n.Inlines)
		case *core.Heading:
			out.Level = n.Level
			out.Inlines = inlinesJSON(n.Inlines)
			out.Text = core.PlainText(n.Inlines)
			page.Structure.Headings = append(page.Structure.Headings, HeadingEntry{Level: n.Level, Text: out.Text})
		case *core.CodeBlock:
			out.Info = n.Info
			out.Text = n.Text
			page.Structure.CodeBlocks++
		case *core.List:
			out.Ordered = n.Ordered
			out.Start = n.Start
			texts := make([]string, 0, len(n.Items))
			for _, it := range n.Items {
				out.Items = append(out.Items, inlinesJSON(it.Inlines))
				texts = append(texts, core.PlainText(it.Inlines))
			}
			out.Text = strings.Join(texts, "\n")
			page.Structure.Lists++
		case *core.Quote:
			out.Inlines = inlinesJSON(n.Inlines)
			out.Text = core.PlainText(n.Inlines)
			page.Structure.Quotes++
		case *core.Rule:
		default:
			return core.UnsupportedBlock("json", i, b)
		}

		core.WalkInlines(core.BlockInlines(b), func(in core.Inline) bool {
			if l, ok := in.(*core.Link); ok {
				page.Structure.Links = append(page.Structure.Links, LinkEntry{Text: core.PlainText(l.Children), Href: l.URL})
			}
			return true
		})
		page.Structure.Words += len(strings.Fields(out.Text))
		page.Blocks = append(page.Blocks, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func inlinesJSON(inlines []core.Inline) []InlineJSON {
	if len(inlines) == 0 {
		return nil
	}
	out := make([]InlineJSON, 0, len(inlines))
	for _, in := range inlines {
		j := InlineJSON{Kind: in.InlineKind().String()}
		switch n := in.(type) {
		case *core.Text:
			j.Text = n.Value
		case *core.Code:
			j.Text = n.Value
		case *core.Emphasis:
			j.Children = inlinesJSON(n.Children)
		case *core.Strong:
			j.Children = inlinesJSON(n.Children)
		case *core.Link:
			j.URL = n.URL
			j.Children = inlinesJSON(n.Children)
		}
		out = append(out, j)
	}
	return out
}
