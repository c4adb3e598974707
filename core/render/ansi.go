// Package render — ANSI terminal renderer.
// Styles blocks with lipgloss. The colour profile is fixed at construction
// instead of being detected from the terminal, so output is deterministic.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/gaurav-prasanna/pygmalion/core"
	"github.com/muesli/termenv"
)

const defaultRuleWidth = 40

// Styles holds the lipgloss styles for terminal output.
type Styles struct {
	H1         lipgloss.Style
	H2         lipgloss.Style
	Heading    lipgloss.Style
	Paragraph  lipgloss.Style
	CodeBlock  lipgloss.Style
	Bullet     lipgloss.Style
	Quote      lipgloss.Style
	Rule       lipgloss.Style
	Emphasis   lipgloss.Style
	Strong     lipgloss.Style
	InlineCode lipgloss.Style
	Link       lipgloss.Style
	LinkURL    lipgloss.Style
}

// DefaultStyles returns the default style configuration bound to r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		H1: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		H2: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Heading:   r.NewStyle().Bold(true),
		Paragraph: r.NewStyle(),
		CodeBlock: r.NewStyle().
			Foreground(lipgloss.Color("250")).
			PaddingLeft(4),
		Bullet: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		Quote: r.NewStyle().
			Foreground(lipgloss.Color("245")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			PaddingLeft(1),
		Rule: r.NewStyle().
			Foreground(lipgloss.Color("240")),
		Emphasis: r.NewStyle().Italic(true),
		Strong:   r.NewStyle().Bold(true),
		InlineCode: r.NewStyle().
			Foreground(lipgloss.Color("203")),
		Link: r.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("75")),
		LinkURL: r.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// ANSIRenderer renders a Document as styled terminal text.
type ANSIRenderer struct {
	Width  int
	Styles Styles
}

// NewANSIRenderer creates an ANSIRenderer. With noColor set the output
// carries no escape sequences.
func NewANSIRenderer(width int, noColor bool) *ANSIRenderer {
	lr := lipgloss.NewRenderer(io.Discard)
	if noColor {
		lr.SetColorProfile(termenv.Ascii)
	} else {
		lr.SetColorProfile(termenv.ANSI256)
	}
	return &ANSIRenderer{Width: width, Styles: DefaultStyles(lr)}
}

// Render converts the Document into styled terminal text.
func (r *ANSIRenderer) Render(doc *core.Document) ([]byte, error) {
	doc = orEmpty(doc)
	if err := checkDocument("ansi", doc); err != nil {
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

// Extension returns the file extension for terminal output.
func (r *ANSIRenderer) Extension() string {
	return ".ans"
}

func (r *ANSIRenderer) wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wordwrap(s, width, "")
}

func (r *ANSIRenderer) block(i int, b core.Block) (string, error) {
	st := r.Styles
	switch n := b.(type) {
	case *core.Paragraph:
		text, err := r.inlines(i, b, n.Inlines)
		if err != nil {
			return "", err
		}
		return st.Paragraph.Render(r.wrap(text, r.Width)), nil

	case *core.Heading:
		text, err := r.inlines(i, b, n.Inlines)
		if err != nil {
			return "", err
		}
		switch n.Level {
		case 1:
			return st.H1.Render(text), nil
		case 2:
			return st.H2.Render(text), nil
		}
		return st.Heading.Render(text), nil

	case *core.CodeBlock:
		if n.Text == "" {
			return "", nil
		}
		return st.CodeBlock.Render(n.Text), nil

	case *core.List:
		items := make([]string, 0, len(n.Items))
		for j, it := range n.Items {
			text, err := r.inlines(i, b, it.Inlines)
			if err != nil {
				return "", err
			}
			marker := "• "
			if n.Ordered {
				marker = fmt.Sprintf("%d. ", n.Start+j)
			}
			indent := strings.Repeat(" ", ansi.StringWidth(marker))
			body := r.wrap(text, r.Width-len(indent))
			body = strings.ReplaceAll(body, "\n", "\n"+indent)
			items = append(items, st.Bullet.Render(marker)+body)
		}
		return strings.Join(items, "\n"), nil

	case *core.Quote:
		text, err := r.inlines(i, b, n.Inlines)
		if err != nil {
			return "", err
		}
		return st.Quote.Render(r.wrap(text, r.Width-2)), nil

	case *core.Rule:
		width := r.Width
		if width <= 0 {
			width = defaultRuleWidth
		}
		return st.Rule.Render(strings.Repeat("─", width)), nil
	}
	return "", core.UnsupportedBlock("ansi", i, b)
}

func (r *ANSIRenderer) inlines(i int, b core.Block, inlines []core.Inline) (string, error) {
	st := r.Styles
	var sb strings.Builder
	for _, in := range inlines {
		switch n := in.(type) {
		case *core.Text:
			sb.WriteString(n.Value)
		case *core.Code:
			sb.WriteString(st.InlineCode.Render(n.Value))
		case *core.Emphasis:
			inner, err := r.inlines(i, b, n.Children)
			if err != nil {
				return "", err
			}
			sb.WriteString(st.Emphasis.Render(inner))
		case *core.Strong:
			inner, err := r.inlines(i, b, n.Children)
			if err != nil {
				return "", err
			}
			sb.WriteString(st.Strong.Render(inner))
		case *core.Link:
			label, err := r.inlines(i, b, n.Children)
			if err != nil {
				return "", err
			}
			sb.WriteString(st.Link.Render(label))
			if core.PlainText(n.Children) != n.URL {
				sb.WriteString(" " + st.LinkURL.Render("<"+n.URL+">"))
			}
		default:
			return "", core.UnsupportedInline("ansi", i, b, in)
		}
	}
	return sb.String(), nil
}
