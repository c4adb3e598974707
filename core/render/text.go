// Package render — plain text renderer.
// The mapping is fixed:
//
//	Paragraph  inline text; links as "label (url)"
//	Heading    text; level 1 underlined with '=', level 2 with '-'
//	CodeBlock  each line indented by four spaces
//	List       "- item" or "N. item"
//	Quote      lines prefixed with "> "
//	Rule       "---", or a full line of '-' when a width is set
//
// Blocks are separated by one blank line and the output has no trailing
// newline, so a lone paragraph "Hello" renders as "Hello".
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pygmalion/core"
	"github.com/mattn/go-runewidth"
)

// TextRenderer renders a Document as plain text.
type TextRenderer struct {
	// Width wraps paragraphs, list items and quotes; 0 disables wrapping.
	Width int
}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer(width int) *TextRenderer {
	return &TextRenderer{Width: width}
}

// Render converts the Document into plain text.
func (r *TextRenderer) Render(doc *core.Document) ([]byte, error) {
	doc = orEmpty(doc)
	if err := checkDocument("text", doc); err != nil {
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

// Extension returns the file extension for plain text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

func (r *TextRenderer) block(i int, b core.Block) (string, error) {
	switch n := b.(type) {
	case *core.Paragraph:
		text, err := plainInlines(i, b, n.Inlines)
		if err != nil {
			return "", err
		}
		return wrap(text, r.Width, ""), nil

	case *core.Heading:
		text, err := plainInlines(i, b, n.Inlines)
		if err != nil {
			return "", err
		}
		switch n.Level {
		case 1:
			return text + "\n" + underline(text, '='), nil
		case 2:
			return text + "\n" + underline(text, '-'), nil
		}
		return text, nil

	case *core.CodeBlock:
		lines := strings.Split(n.Text, "\n")
		for j, l := range lines {
			if l != "" {
				lines[j] = "    " + l
			}
		}
		return strings.Join(lines, "\n"), nil

	case *core.List:
		items := make([]string, 0, len(n.Items))
		for j, it := range n.Items {
			text, err := plainInlines(i, b, it.Inlines)
			if err != nil {
				return "", err
			}
			marker := "- "
			if n.Ordered {
				marker = fmt.Sprintf("%d. ", n.Start+j)
			}
			body := wrap(text, r.Width-len(marker), strings.Repeat(" ", len(marker)))
			items = append(items, marker+body)
		}
		return strings.Join(items, "\n"), nil

	case *core.Quote:
		text, err := plainInlines(i, b, n.Inlines)
		if err != nil {
			return "", err
		}
		if text == "" {
			return ">", nil
		}
		lines := strings.Split(wrap(text, r.Width-2, ""), "\n")
		for j, l := range lines {
			lines[j] = "> " + l
		}
		return strings.Join(lines, "\n"), nil

	case *core.Rule:
		if r.Width > 0 {
			return strings.Repeat("-", r.Width), nil
		}
		return "---", nil
	}
	return "", core.UnsupportedBlock("text", i, b)
}

// plainInlines flattens inlines for the text format.
func plainInlines(i int, b core.Block, inlines []core.Inline) (string, error) {
	var sb strings.Builder
	if err := writePlainInlines(&sb, i, b, inlines); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writePlainInlines(sb *strings.Builder, i int, b core.Block, inlines []core.Inline) error {
	for _, in := range inlines {
		switch n := in.(type) {
		case *core.Text:
			sb.WriteString(n.Value)
		case *core.Code:
			sb.WriteString(n.Value)
		case *core.Emphasis:
			if err := writePlainInlines(sb, i, b, n.Children); err != nil {
				return err
			}
		case *core.Strong:
			if err := writePlainInlines(sb, i, b, n.Children); err != nil {
				return err
			}
		case *core.Link:
			label, err := plainInlines(i, b, n.Children)
			if err != nil {
				return err
			}
			if label == "" || label == n.URL {
				sb.WriteString(n.URL)
			} else {
				fmt.Fprintf(sb, "%s (%s)", label, n.URL)
			}
		default:
			return core.UnsupportedInline("text", i, b, in)
		}
	}
	return nil
}

// underline returns a run of c as wide as text is on screen.
func underline(text string, c rune) string {
	w := runewidth.StringWidth(text)
	if w < 1 {
		w = 1
	}
	return strings.Repeat(string(c), w)
}

// wrap breaks text into lines of at most width display columns, prefixing
// continuation lines with indent. Words wider than width get their own line.
func wrap(text string, width int, indent string) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	current := words[0]
	currentWidth := runewidth.StringWidth(current)
	for _, w := range words[1:] {
		ww := runewidth.StringWidth(w)
		if currentWidth+1+ww > width {
			lines = append(lines, current)
			current, currentWidth = w, ww
			continue
		}
		current += " " + w
		currentWidth += 1 + ww
	}
	lines = append(lines, current)
	return strings.Join(lines, "\n"+indent)
}
