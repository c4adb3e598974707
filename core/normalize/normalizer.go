// Package normalize implements the Normalizer interface.
// It converts cleaned HTML into the markup dialect, so web pages can go
// through the same parse and render stages as hand-written sources.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

var (
	// bareMarker matches list items and headings left without text, e.g.
	// from a <li> that only held an image.
	bareMarker = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.|#{1,6})\s*$`)
	// listEnd matches the comment html-to-markdown puts between adjacent lists.
	listEnd  = regexp.MustCompile(`^\s*<!--THE END-->\s*$`)
	blankRun = regexp.MustCompile(`\n{3,}`)
)

// MarkdownNormalizer converts HTML to the dialect using html-to-markdown.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer configured for the dialect's delimiters.
func New() *MarkdownNormalizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithEmDelimiter("*"),
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithBulletListMarker("-"),
				commonmark.WithCodeBlockFence("```"),
				commonmark.WithHorizontalRule("---"),
			),
		),
	)
	return &MarkdownNormalizer{conv: conv}
}

// Normalize converts a cleaned HTML fragment into the markup dialect.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return tidy(markdown), nil
}

// tidy drops lines the dialect rejects and collapses blank runs.
func tidy(markdown string) string {
	lines := strings.Split(markdown, "\n")
	kept := lines[:0]
	inFence := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "```" || strings.HasPrefix(strings.TrimSpace(l), "```") && !inFence {
			inFence = !inFence
			kept = append(kept, l)
			continue
		}
		if !inFence && (bareMarker.MatchString(l) || listEnd.MatchString(l)) {
			continue
		}
		kept = append(kept, l)
	}
	out := blankRun.ReplaceAllString(strings.Join(kept, "\n"), "\n\n")
	return strings.TrimSpace(out)
}
