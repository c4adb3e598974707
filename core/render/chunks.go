// Package render — Chunks renderer.
// Splits the Document into heading-scoped sections, chunks each section by
// word count, and emits the chunks as a JSON array ready for indexing.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pygmalion/core"
	"github.com/gaurav-prasanna/pygmalion/core/chunk"
)

// ChunkJSON is one entry of the chunks output.
type ChunkJSON struct {
	Index   int    `json:"index"`
	Heading string `json:"heading,omitempty"`
	Level   int    `json:"level,omitempty"`
	Text    string `json:"text"`
	Words   int    `json:"words"`
}

// ChunksRenderer produces word-bounded text chunks.
type ChunksRenderer struct {
	ChunkSize int
}

// NewChunksRenderer creates a ChunksRenderer.
// chunkSize <= 0 selects chunk.DefaultChunkSize.
func NewChunksRenderer(chunkSize int) *ChunksRenderer {
	if chunkSize <= 0 {
		chunkSize = chunk.DefaultChunkSize
	}
	return &ChunksRenderer{ChunkSize: chunkSize}
}

// Render converts the Document into a JSON array of chunks.
func (r *ChunksRenderer) Render(doc *core.Document) ([]byte, error) {
	doc = orEmpty(doc)
	if err := checkDocument("chunks", doc); err != nil {
		return nil, err
	}

	chunker := chunk.New(r.ChunkSize)
	out := make([]ChunkJSON, 0)
	for _, s := range chunk.Sections(doc) {
		for _, c := range chunker.Chunk(s.Text) {
			out = append(out, ChunkJSON{
				Index:   len(out),
				Heading: s.Heading,
				Level:   s.Level,
				Text:    c,
				Words:   len(strings.Fields(c)),
			})
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling chunks: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for chunk output.
func (r *ChunksRenderer) Extension() string {
	return ".chunks.json"
}
