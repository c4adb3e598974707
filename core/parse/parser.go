package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/pygmalion/core"
)

// maxHeadingLevel is the deepest heading the dialect allows.
const maxHeadingLevel = 6

// Parser parses the markup dialect. The zero value is ready to use and a
// single Parser may be shared between goroutines.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse is shorthand for New().Parse(input).
func Parse(input string) (*core.Document, error) {
	return New().Parse(input)
}

// Parse converts input into a Document. Empty input yields a Document with no
// blocks. On failure the returned error is a *core.ParseError.
func (p *Parser) Parse(input string) (*core.Document, error) {
	s := &state{input: input, lines: splitLines(input)}
	blocks, err := s.run()
	if err != nil {
		return nil, err
	}
	return &core.Document{Blocks: blocks}, nil
}

// state is the cursor of a single Parse call.
type state struct {
	input string
	lines []line
	i     int
}

func (s *state) run() ([]core.Block, error) {
	blocks := make([]core.Block, 0)
	for s.i < len(s.lines) {
		t, _ := trimIndent(s.lines[s.i].text)
		kind := classify(t)
		if kind == lineBlank {
			s.i++
			continue
		}

		var (
			b   core.Block
			err error
		)
		switch kind {
		case lineFence:
			b, err = s.fence()
		case lineHeading:
			b, err = s.heading()
		case lineRule:
			s.i++
			b = &core.Rule{}
		case lineBullet, lineOrdered:
			b, err = s.list(kind)
		case lineQuote:
			b, err = s.quote()
		default:
			b, err = s.paragraph()
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// eof is the position just past the last character of the input.
func (s *state) eof() core.Position {
	if len(s.lines) == 0 {
		return core.Position{Line: 1, Column: 1}
	}
	last := s.lines[len(s.lines)-1]
	return core.Position{
		Offset: len(s.input),
		Line:   last.num,
		Column: utf8.RuneCountInString(last.text) + 1,
	}
}

func syntaxError(l line, idx int, format string, args ...any) *core.ParseError {
	return &core.ParseError{
		Kind: core.InvalidSyntax,
		Pos:  l.pos(idx),
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (s *state) fence() (core.Block, error) {
	open := s.lines[s.i]
	t, indent := trimIndent(open.text)
	info := strings.TrimSpace(t[3:])
	s.i++

	var body []string
	for s.i < len(s.lines) {
		l := s.lines[s.i]
		s.i++
		// The closer may be indented to match an indented opener.
		if strings.TrimSpace(l.text) == "```" {
			return &core.CodeBlock{Info: info, Text: strings.Join(body, "\n")}, nil
		}
		body = append(body, l.text)
	}
	return nil, &core.ParseError{
		Kind: core.UnexpectedEOF,
		Pos:  s.eof(),
		Msg:  fmt.Sprintf("code fence opened at %v is not closed", open.pos(indent)),
	}
}

func (s *state) heading() (core.Block, error) {
	l := s.lines[s.i]
	t, indent := trimIndent(l.text)
	level := countLeading(t, '#')
	if level > maxHeadingLevel {
		return nil, syntaxError(l, indent+maxHeadingLevel, "heading level %d exceeds %d", level, maxHeadingLevel)
	}
	content, ws := trimIndent(t[level:])
	content = strings.TrimRight(content, " \t")
	if content == "" {
		return nil, syntaxError(l, indent+level, "heading has no text")
	}
	inlines, err := parseInlines(l, indent+level+ws, content)
	if err != nil {
		return nil, err
	}
	s.i++
	return &core.Heading{Level: level, Inlines: inlines}, nil
}

func (s *state) paragraph() (core.Block, error) {
	var inlines []core.Inline
	for s.i < len(s.lines) {
		l := s.lines[s.i]
		t, indent := trimIndent(l.text)
		if classify(t) != lineText {
			break
		}
		more, err := parseInlines(l, indent, strings.TrimRight(t, " \t"))
		if err != nil {
			return nil, err
		}
		inlines = joinLines(inlines, more)
		s.i++
	}
	return &core.Paragraph{Inlines: inlines}, nil
}

func (s *state) quote() (core.Block, error) {
	var inlines []core.Inline
	for s.i < len(s.lines) {
		l := s.lines[s.i]
		t, indent := trimIndent(l.text)
		if classify(t) != lineQuote {
			break
		}
		start := 1
		if start < len(t) && isSpace(t[start]) {
			start++
		}
		content := strings.TrimRight(t[start:], " \t")
		s.i++
		if content == "" {
			continue
		}
		more, err := parseInlines(l, indent+start, content)
		if err != nil {
			return nil, err
		}
		inlines = joinLines(inlines, more)
	}
	return &core.Quote{Inlines: inlines}, nil
}

func (s *state) list(kind lineKind) (core.Block, error) {
	list := &core.List{Ordered: kind == lineOrdered}
	for s.i < len(s.lines) {
		l := s.lines[s.i]
		t, indent := trimIndent(l.text)
		if classify(t) != kind {
			break
		}

		marker := 1
		if list.Ordered {
			marker = orderedMarker(t)
			if len(list.Items) == 0 {
				list.Start, _ = strconv.Atoi(t[:marker-1])
			}
		}
		content, ws := trimIndent(t[marker:])
		content = strings.TrimRight(content, " \t")
		if content == "" {
			return nil, syntaxError(l, indent+marker, "list item has no text")
		}
		inlines, err := parseInlines(l, indent+marker+ws, content)
		if err != nil {
			return nil, err
		}
		s.i++

		for s.i < len(s.lines) && s.continues(s.lines[s.i]) {
			cl := s.lines[s.i]
			ct, cindent := trimIndent(cl.text)
			more, err := parseInlines(cl, cindent, strings.TrimRight(ct, " \t"))
			if err != nil {
				return nil, err
			}
			inlines = joinLines(inlines, more)
			s.i++
		}
		list.Items = append(list.Items, core.ListItem{Inlines: inlines})
	}
	return list, nil
}

// continues reports whether l is an indented text line continuing a list item.
func (s *state) continues(l line) bool {
	if l.text == "" || !isSpace(l.text[0]) {
		return false
	}
	t, _ := trimIndent(l.text)
	return classify(t) == lineText
}

// joinLines appends the inlines of a following source line, separated by a
// single space, merging adjacent text nodes.
func joinLines(acc, next []core.Inline) []core.Inline {
	if len(acc) == 0 {
		return next
	}
	if len(next) == 0 {
		return acc
	}
	out := make([]core.Inline, 0, len(acc)+len(next)+1)
	out = append(out, acc...)
	out = appendText(out, " ")
	for _, in := range next {
		if t, ok := in.(*core.Text); ok {
			out = appendText(out, t.Value)
			continue
		}
		out = append(out, in)
	}
	return out
}

func appendText(out []core.Inline, value string) []core.Inline {
	if n := len(out); n > 0 {
		if last, ok := out[n-1].(*core.Text); ok {
			out[n-1] = &core.Text{Value: last.Value + value}
			return out
		}
	}
	return append(out, &core.Text{Value: value})
}
