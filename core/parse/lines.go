package parse

import (
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/pygmalion/core"
)

// line is one source line without its terminator.
type line struct {
	text   string
	num    int // 1-based
	offset int // byte offset of text[0] in the input
}

// splitLines breaks input on '\n', dropping a '\r' before it.
func splitLines(input string) []line {
	if input == "" {
		return nil
	}
	raw := strings.Split(input, "\n")
	lines := make([]line, 0, len(raw))
	offset := 0
	for i, text := range raw {
		n := len(text)
		text = strings.TrimSuffix(text, "\r")
		lines = append(lines, line{text: text, num: i + 1, offset: offset})
		offset += n + 1
	}
	return lines
}

// pos converts a byte index within l into a Position.
func (l line) pos(idx int) core.Position {
	if idx > len(l.text) {
		idx = len(l.text)
	}
	return core.Position{
		Offset: l.offset + idx,
		Line:   l.num,
		Column: utf8.RuneCountInString(l.text[:idx]) + 1,
	}
}

// trimIndent strips leading spaces and tabs and returns the byte count removed.
func trimIndent(s string) (string, int) {
	t := strings.TrimLeft(s, " \t")
	return t, len(s) - len(t)
}

// lineKind is the block type a line starts.
type lineKind int

const (
	lineBlank lineKind = iota
	lineText
	lineHeading
	lineFence
	lineRule
	lineBullet
	lineOrdered
	lineQuote
)

// classify decides the block type of a line whose indentation was trimmed.
func classify(t string) lineKind {
	switch {
	case strings.TrimSpace(t) == "":
		return lineBlank
	case strings.HasPrefix(t, "```"):
		return lineFence
	case isHeading(t):
		return lineHeading
	case isRule(t):
		return lineRule
	case isBullet(t):
		return lineBullet
	case orderedMarker(t) > 0:
		return lineOrdered
	case t[0] == '>':
		return lineQuote
	}
	return lineText
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

// afterMarker reports whether t ends at i or has whitespace at i.
func afterMarker(t string, i int) bool {
	return i == len(t) || isSpace(t[i])
}

func isHeading(t string) bool {
	n := countLeading(t, '#')
	return n > 0 && afterMarker(t, n)
}

func isRule(t string) bool {
	var mark byte
	n := 0
	for i := 0; i < len(t); i++ {
		c := t[i]
		if isSpace(c) {
			continue
		}
		if c != '-' && c != '*' && c != '_' {
			return false
		}
		if mark == 0 {
			mark = c
		} else if c != mark {
			return false
		}
		n++
	}
	return n >= 3
}

func isBullet(t string) bool {
	return (t[0] == '-' || t[0] == '*' || t[0] == '+') && afterMarker(t, 1)
}

// orderedMarker returns the length of "N." at the start of t, or 0.
func orderedMarker(t string) int {
	digits := 0
	for digits < len(t) && digits < 9 && t[digits] >= '0' && t[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits >= len(t) || t[digits] != '.' {
		return 0
	}
	if !afterMarker(t, digits+1) {
		return 0
	}
	return digits + 1
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
