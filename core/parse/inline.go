package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gaurav-prasanna/pygmalion/core"
)

// inlineParser scans the inline markup of one line segment.
// All delimiters are ASCII, so it works on byte indexes.
type inlineParser struct {
	src  string
	base int // byte index of src[0] within l.text
	l    line
}

// parseInlines parses content, which starts at byte base of l.
func parseInlines(l line, base int, content string) ([]core.Inline, error) {
	p := &inlineParser{src: content, base: base, l: l}
	nodes, _, _, err := p.parse(0, len(content), "")
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (p *inlineParser) errorAt(i int, msg string) *core.ParseError {
	return syntaxError(p.l, p.base+i, "%s", msg)
}

// parse scans src[i:end] until closer (if any) is found. It returns the nodes,
// the index after the closer and whether the closer was seen.
func (p *inlineParser) parse(i, end int, closer string) ([]core.Inline, int, bool, error) {
	var nodes []core.Inline
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			nodes = append(nodes, &core.Text{Value: buf.String()})
			buf.Reset()
		}
	}

	for i < end {
		if closer != "" && p.closes(i, end, closer) {
			flush()
			return nodes, i + len(closer), true, nil
		}

		c := p.src[i]
		switch {
		case c == '\\' && i+1 < end && isASCIIPunct(p.src[i+1]):
			buf.WriteByte(p.src[i+1])
			i += 2

		case c == '`':
			j := strings.IndexByte(p.src[i+1:end], '`')
			if j < 0 {
				return nil, 0, false, p.errorAt(i, "unterminated code span")
			}
			if j == 0 {
				return nil, 0, false, p.errorAt(i, "empty code span")
			}
			flush()
			nodes = append(nodes, &core.Code{Value: p.src[i+1 : i+1+j]})
			i += j + 2

		case c == '*' && strings.HasPrefix(p.src[i:end], "**") && p.opens(i, 2, end):
			children, next, err := p.span(i, 2, end, "strong emphasis")
			if err != nil {
				return nil, 0, false, err
			}
			flush()
			nodes = append(nodes, &core.Strong{Children: children})
			i = next

		case (c == '*' || c == '_') && p.opens(i, 1, end):
			children, next, err := p.span(i, 1, end, "emphasis")
			if err != nil {
				return nil, 0, false, err
			}
			flush()
			nodes = append(nodes, &core.Emphasis{Children: children})
			i = next

		case c == '[':
			link, next, err := p.link(i, end)
			if err != nil {
				return nil, 0, false, err
			}
			if link == nil {
				buf.WriteByte(c)
				i++
				continue
			}
			flush()
			nodes = append(nodes, link)
			i = next

		default:
			buf.WriteByte(c)
			i++
		}
	}
	flush()
	return nodes, i, false, nil
}

// span parses an emphasis-like span whose n-byte opener is at i.
func (p *inlineParser) span(i, n, end int, what string) ([]core.Inline, int, error) {
	closer := p.src[i : i+n]
	children, next, closed, err := p.parse(i+n, end, closer)
	if err != nil {
		return nil, 0, err
	}
	if !closed {
		return nil, 0, p.errorAt(i, "unterminated "+what)
	}
	if len(children) == 0 {
		return nil, 0, p.errorAt(i, "empty "+what)
	}
	return children, next, nil
}

// link parses [label](url) at i. A bracket that does not start a link yields
// a nil node and no error.
func (p *inlineParser) link(i, end int) (core.Inline, int, error) {
	rb := p.findUnescaped(i+1, end, ']')
	if rb < 0 || rb+1 >= end || p.src[rb+1] != '(' {
		return nil, 0, nil
	}
	paren := rb + 1
	rp := strings.IndexByte(p.src[paren+1:end], ')')
	if rp < 0 {
		return nil, 0, p.errorAt(paren, "unterminated link destination")
	}
	url := strings.TrimSpace(p.src[paren+1 : paren+1+rp])
	if url == "" {
		return nil, 0, p.errorAt(paren, "empty link destination")
	}
	label, _, _, err := p.parse(i+1, rb, "")
	if err != nil {
		return nil, 0, err
	}
	return &core.Link{Children: label, URL: url}, paren + rp + 2, nil
}

func (p *inlineParser) findUnescaped(i, end int, c byte) int {
	for i < end {
		switch p.src[i] {
		case '\\':
			i += 2
			continue
		case c:
			return i
		}
		i++
	}
	return -1
}

// opens reports whether the n-byte delimiter at i can open a span: it must be
// followed by a non-space other than itself, and '_' must not sit inside a word.
func (p *inlineParser) opens(i, n, end int) bool {
	if i+n >= end {
		return false
	}
	next, _ := utf8.DecodeRuneInString(p.src[i+n : end])
	if unicode.IsSpace(next) {
		return false
	}
	if n == 1 && next == rune(p.src[i]) {
		return false
	}
	if p.src[i] == '_' && i > 0 {
		prev, _ := utf8.DecodeLastRuneInString(p.src[:i])
		if isWordRune(prev) {
			return false
		}
	}
	return true
}

// closes reports whether closer sits at i and can close a span: it must
// follow a non-space, and '_' must not be followed by a word character.
func (p *inlineParser) closes(i, end int, closer string) bool {
	if i == 0 || !strings.HasPrefix(p.src[i:end], closer) {
		return false
	}
	prev, _ := utf8.DecodeLastRuneInString(p.src[:i])
	if unicode.IsSpace(prev) {
		return false
	}
	if closer == "_" && i+1 < end {
		next, _ := utf8.DecodeRuneInString(p.src[i+1 : end])
		if isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isASCIIPunct(c byte) bool {
	return c < utf8.RuneSelf && unicode.IsPunct(rune(c)) || strings.IndexByte("$+<=>^`|~", c) >= 0
}
