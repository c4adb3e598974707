// Package chunk splits document text into word-sized chunks for retrieval
// indexing. Uses a simple whitespace tokenizer (words ≈ tokens).
// Chunk overlap is 0.
package chunk

import (
	"strings"

	"github.com/gaurav-prasanna/pygmalion/core"
)

// DefaultChunkSize is used when a non-positive size is requested.
const DefaultChunkSize = 512

// Chunker splits text into fixed-size word chunks.
type Chunker struct {
	ChunkSize int // number of words per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to DefaultChunkSize if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk splits the input text into slices of at most ChunkSize words.
// Each chunk is a contiguous run of words joined by spaces.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	size := c.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	var chunks []string
	for i := 0; i < len(words); i += size {
		end := min(i+size, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// Section is the text that follows a heading, up to the next heading.
type Section struct {
	Heading string
	Level   int
	Text    string
}

// Sections groups the text of each block under the most recent heading.
// Text before the first heading forms a section with an empty Heading.
// Rules carry no text and never start a section.
func Sections(doc *core.Document) []Section {
	if doc == nil {
		return nil
	}
	var (
		out     []Section
		current *Section
		parts   []string
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.Join(parts, "\n\n")
		out = append(out, *current)
		current, parts = nil, nil
	}

	for _, b := range doc.Blocks {
		if h, ok := b.(*core.Heading); ok {
			flush()
			current = &Section{Heading: core.PlainText(h.Inlines), Level: h.Level}
			continue
		}
		text := blockText(b)
		if text == "" {
			continue
		}
		if current == nil {
			current = &Section{}
		}
		parts = append(parts, text)
	}
	flush()
	return out
}

func blockText(b core.Block) string {
	switch n := b.(type) {
	case *core.CodeBlock:
		return n.Text
	case *core.List:
		items := make([]string, 0, len(n.Items))
		for _, it := range n.Items {
			items = append(items, core.PlainText(it.Inlines))
		}
		return strings.Join(items, "\n")
	}
	return core.PlainText(core.BlockInlines(b))
}
