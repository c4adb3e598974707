package core

import "fmt"

// Position is a location in source text. Line and Column are 1-based;
// Column counts runes, Offset counts bytes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseErrorKind classifies a parse failure.
type ParseErrorKind int

const (
	// InvalidSyntax means the input violates the grammar at Pos.
	InvalidSyntax ParseErrorKind = iota + 1
	// UnexpectedEOF means the input ended inside an open construct.
	UnexpectedEOF
)

func (k ParseErrorKind) String() string {
	switch k {
	case InvalidSyntax:
		return "invalid syntax"
	case UnexpectedEOF:
		return "unexpected end of input"
	default:
		return "parse error"
	}
}

// ParseError is returned by a Parser at the first offending position.
type ParseError struct {
	Kind ParseErrorKind
	Pos  Position
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v: %v", e.Pos, e.Kind)
	}
	return fmt.Sprintf("%v: %v: %s", e.Pos, e.Kind, e.Msg)
}

// RenderErrorKind classifies a render failure.
type RenderErrorKind int

const (
	// UnsupportedBlockKind means the renderer has no mapping for a block.
	UnsupportedBlockKind RenderErrorKind = iota + 1
	// UnsupportedInlineKind means a block holds an inline the renderer cannot map.
	UnsupportedInlineKind
)

func (k RenderErrorKind) String() string {
	switch k {
	case UnsupportedBlockKind:
		return "unsupported block kind"
	case UnsupportedInlineKind:
		return "unsupported inline kind"
	default:
		return "render error"
	}
}

// RenderError references the offending block and its index in the document.
type RenderError struct {
	Kind   RenderErrorKind
	Block  Block
	Index  int
	Format string
	// Inline is set for UnsupportedInlineKind.
	Inline Inline
}

func (e *RenderError) Error() string {
	what := "<nil>"
	if e.Block != nil {
		what = e.Block.Kind().String()
	}
	if e.Kind == UnsupportedInlineKind && e.Inline != nil {
		return fmt.Sprintf("%s: %v %v in block %d (%s)", e.Format, e.Kind, e.Inline.InlineKind(), e.Index, what)
	}
	return fmt.Sprintf("%s: %v %s at block %d", e.Format, e.Kind, what, e.Index)
}

// UnsupportedBlock builds the error a renderer returns for an unknown block.
func UnsupportedBlock(format string, index int, b Block) *RenderError {
	return &RenderError{Kind: UnsupportedBlockKind, Block: b, Index: index, Format: format}
}

// UnsupportedInline builds the error a renderer returns for an unknown inline.
func UnsupportedInline(format string, index int, b Block, in Inline) *RenderError {
	return &RenderError{Kind: UnsupportedInlineKind, Block: b, Index: index, Format: format, Inline: in}
}
