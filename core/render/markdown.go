// Package render — Markdown renderer.
// Writes the Document back out in the canonical form of the input dialect,
// so parsing the output yields the same Document again.
package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gaurav-prasanna/pygmalion/core"
)

// MarkdownRenderer re-serialises a Document into the markup dialect.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the Document into canonical markup.
func (r *MarkdownRenderer) Render(doc *core.Document) ([]byte, error) {
	doc = orEmpty(doc)
	if err := checkDocument("markdown", doc); err != nil {
		return nil, err
	}
	parts := make([]string, 0, len(doc.Blocks))
	for i, b := range doc.Blocks {
		s, err := r.block(i, b)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return []byte(strings.Join(parts, "\n\n")), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func (r *MarkdownRenderer) block(i int, b core.Block) (string, error) {
	switch n := b.(type) {
	case *core.Paragraph:
		return mdLine(i, b, n.Inlines)

	case *core.Heading:
		text, err := mdInlines(i, b, n.Inlines, ' ', ' ')
		if err != nil {
			return "", err
		}
		return strings.Repeat("#", n.Level) + " " + text, nil

	case *core.CodeBlock:
		if n.Text == "" {
			return "```" + n.Info + "\n```", nil
		}
		return "```" + n.Info + "\n" + n.Text + "\n```", nil

	case *core.List:
		items := make([]string, 0, len(n.Items))
		for j, it := range n.Items {
			text, err := mdLine(i, b, it.Inlines)
			if err != nil {
				return "", err
			}
			marker := "-"
			if n.Ordered {
				marker = fmt.Sprintf("%d.", ordinal(n.Start, j))
			}
			items = append(items, marker+" "+text)
		}
		return strings.Join(items, "\n"), nil

	case *core.Quote:
		text, err := mdLine(i, b, n.Inlines)
		if err != nil {
			return "", err
		}
		if text == "" {
			return ">", nil
		}
		return "> " + text, nil

	case *core.Rule:
		return "---", nil
	}
	return "", core.UnsupportedBlock("markdown", i, b)
}

// maxOrdinal is the largest item number the dialect reads back.
const maxOrdinal = 999999999

// ordinal numbers item j of a list starting at start. Only the first number
// is significant to the parser, so later items stop at maxOrdinal.
func ordinal(start, j int) int {
	if start > maxOrdinal-j {
		return maxOrdinal
	}
	return start + j
}

// mdLine renders inlines that begin a source line, escaping a leading
// character that would otherwise start a different block.
func mdLine(i int, b core.Block, inlines []core.Inline) (string, error) {
	text, err := mdInlines(i, b, inlines, ' ', ' ')
	if err != nil {
		return "", err
	}
	if len(inlines) == 0 {
		return text, nil
	}
	if _, ok := inlines[0].(*core.Text); !ok {
		return text, nil
	}
	return escapeLineStart(text), nil
}

// mdInlines renders inlines written between the runes prev and next.
func mdInlines(i int, b core.Block, inlines []core.Inline, prev, next rune) (string, error) {
	var sb strings.Builder
	for k, in := range inlines {
		before := prev
		if sb.Len() > 0 {
			before, _ = utf8.DecodeLastRuneInString(sb.String())
		}
		after := next
		if k+1 < len(inlines) {
			after = leadingRune(inlines[k+1], next)
		}

		switch n := in.(type) {
		case *core.Text:
			sb.WriteString(escapeMarkup(n.Value))
		case *core.Code:
			sb.WriteString("`" + n.Value + "`")
		case *core.Emphasis:
			d := emphasisDelimiter(n.Children, before, after)
			dr := rune(d[0])
			inner, err := mdInlines(i, b, n.Children, dr, dr)
			if err != nil {
				return "", err
			}
			sb.WriteString(d + inner + d)
		case *core.Strong:
			inner, err := mdInlines(i, b, n.Children, '*', '*')
			if err != nil {
				return "", err
			}
			sb.WriteString("**" + inner + "**")
		case *core.Link:
			label, err := mdInlines(i, b, n.Children, '[', ']')
			if err != nil {
				return "", err
			}
			sb.WriteString("[" + label + "](" + n.URL + ")")
		default:
			return "", core.UnsupportedInline("markdown", i, b, in)
		}
	}
	return sb.String(), nil
}

// leadingRune is the first rune in's markup starts with, or fallback for
// empty text.
func leadingRune(in core.Inline, fallback rune) rune {
	switch n := in.(type) {
	case *core.Text:
		if n.Value == "" {
			return fallback
		}
		r, _ := utf8.DecodeRuneInString(escapeMarkup(n.Value))
		return r
	case *core.Code:
		return '`'
	case *core.Link:
		return '['
	}
	return '*'
}

// emphasisDelimiter picks the emphasis delimiter for children written
// between prev and next. A "*" directly before a nested span, or directly
// after another "*", would read as "**", so those cases use '_' when the
// neighbours let it open and close.
func emphasisDelimiter(children []core.Inline, prev, next rune) string {
	conflict := prev == '*'
	if len(children) > 0 {
		switch children[0].(type) {
		case *core.Emphasis, *core.Strong:
			conflict = true
		}
	}
	if conflict && prev != '_' && !isWordRune(prev) && !isWordRune(next) {
		return "_"
	}
	return "*"
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// escapeMarkup backslash-escapes characters with inline meaning.
func escapeMarkup(s string) string {
	if !strings.ContainsAny(s, "\\`*_[]") {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune("\\`*_[]", r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// escapeLineStart escapes a leading block marker in already escaped text.
func escapeLineStart(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '>', '-', '+':
		return "\\" + s
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && s[digits] == '.' {
		return s[:digits] + "\\" + s[digits:]
	}
	return s
}
