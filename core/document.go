// Package core — document model.
// The Document tree is the only thing the parser and the renderers share.
// Block and Inline variants form a closed set: every renderer handles all of them.
package core

import "strings"

// BlockKind identifies a Block variant.
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindParagraph
	KindHeading
	KindCodeBlock
	KindList
	KindQuote
	KindRule
)

func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "Paragraph"
	case KindHeading:
		return "Heading"
	case KindCodeBlock:
		return "CodeBlock"
	case KindList:
		return "List"
	case KindQuote:
		return "Quote"
	case KindRule:
		return "Rule"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the variants the parser produces.
func (k BlockKind) Valid() bool {
	return k >= KindParagraph && k <= KindRule
}

// InlineKind identifies an Inline variant.
type InlineKind int

const (
	InlineUnknown InlineKind = iota
	InlineText
	InlineEmphasis
	InlineStrong
	InlineCode
	InlineLink
)

func (k InlineKind) String() string {
	switch k {
	case InlineText:
		return "Text"
	case InlineEmphasis:
		return "Emphasis"
	case InlineStrong:
		return "Strong"
	case InlineCode:
		return "Code"
	case InlineLink:
		return "Link"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the variants the parser produces.
func (k InlineKind) Valid() bool {
	return k >= InlineText && k <= InlineLink
}

// Metadata describes where a document came from. The parser never sets it.
type Metadata struct {
	Source string `json:"source,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Document is the root of a parsed source text.
type Document struct {
	Meta   Metadata
	Blocks []Block
}

// Title returns Meta.Title, falling back to the first level-1 heading.
func (d *Document) Title() string {
	if d.Meta.Title != "" {
		return d.Meta.Title
	}
	for _, b := range d.Blocks {
		if h, ok := b.(*Heading); ok && h != nil && h.Level == 1 {
			return PlainText(h.Inlines)
		}
	}
	return ""
}

// Block is a top-level unit of content.
type Block interface {
	Kind() BlockKind
}

// Paragraph is a run of text lines.
type Paragraph struct {
	Inlines []Inline
}

// Heading is a section title, Level 1-6.
type Heading struct {
	Level   int
	Inlines []Inline
}

// CodeBlock is fenced, verbatim text. Info is the word after the opening fence.
type CodeBlock struct {
	Info string
	Text string
}

// List is an ordered or bullet list. Start is the first number of an ordered list.
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// ListItem is a single entry of a List.
type ListItem struct {
	Inlines []Inline
}

// Quote is a block quotation.
type Quote struct {
	Inlines []Inline
}

// Rule is a thematic break.
type Rule struct{}

func (*Paragraph) Kind() BlockKind { return KindParagraph }
func (*Heading) Kind() BlockKind   { return KindHeading }
func (*CodeBlock) Kind() BlockKind { return KindCodeBlock }
func (*List) Kind() BlockKind      { return KindList }
func (*Quote) Kind() BlockKind     { return KindQuote }
func (*Rule) Kind() BlockKind      { return KindRule }

// Inline is a span of text inside a block.
type Inline interface {
	InlineKind() InlineKind
}

// Text is literal text.
type Text struct {
	Value string
}

// Emphasis is *emphasised* content.
type Emphasis struct {
	Children []Inline
}

// Strong is **strongly emphasised** content.
type Strong struct {
	Children []Inline
}

// Code is an inline code span.
type Code struct {
	Value string
}

// Link is a hyperlink with inline content as its label.
type Link struct {
	Children []Inline
	URL      string
}

func (*Text) InlineKind() InlineKind     { return InlineText }
func (*Emphasis) InlineKind() InlineKind { return InlineEmphasis }
func (*Strong) InlineKind() InlineKind   { return InlineStrong }
func (*Code) InlineKind() InlineKind     { return InlineCode }
func (*Link) InlineKind() InlineKind     { return InlineLink }

// PlainText flattens inlines into their visible text, dropping markup.
func PlainText(inlines []Inline) string {
	var b strings.Builder
	writePlain(&b, inlines)
	return b.String()
}

func writePlain(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch n := in.(type) {
		case *Text:
			b.WriteString(n.Value)
		case *Code:
			b.WriteString(n.Value)
		case *Emphasis:
			writePlain(b, n.Children)
		case *Strong:
			writePlain(b, n.Children)
		case *Link:
			writePlain(b, n.Children)
		}
	}
}
