// Package chunker splits document content into overlapping chunks for
// embedding and retrieval.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.DocumentChunker = (*Chunker)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunker splits content on paragraph boundaries into chunks of roughly
// chunkSize characters. Fenced code blocks are atomic: a block larger than
// the chunk size becomes its own oversized chunk rather than being split.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits doc.Content into chunks linked to doc.ID.
// Indices are contiguous starting at zero; empty content produces no chunks.
func (c *Chunker) Chunk(_ context.Context, doc *domain.Document) ([]domain.DocumentChunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	pieces := c.assemble(splitSegments(doc.Content))

	chunks := make([]domain.DocumentChunk, 0, len(pieces))
	for i, content := range pieces {
		chunks = append(chunks, domain.DocumentChunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ChunkIndex: i,
			Content:    content,
			TokenCount: estimateTokens(content),
		})
	}
	return chunks, nil
}

// segment is one paragraph or fenced code block.
type segment struct {
	text    string
	isFence bool
}

// splitSegments breaks content into paragraphs, keeping fenced code blocks
// (``` or ~~~) together as single segments.
func splitSegments(content string) []segment {
	var segments []segment
	var current []string
	var inFence bool
	var fenceMarker string

	flush := func(isFence bool) {
		if len(current) == 0 {
			return
		}
		text := strings.TrimRight(strings.Join(current, "\n"), "\n")
		if strings.TrimSpace(text) != "" {
			segments = append(segments, segment{text: text, isFence: isFence})
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if inFence {
			current = append(current, line)
			if strings.HasPrefix(trimmed, fenceMarker) {
				inFence = false
				flush(true)
			}
			continue
		}

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			flush(false)
			inFence = true
			fenceMarker = trimmed[:3]
			current = append(current, line)
			continue
		}

		if trimmed == "" {
			flush(false)
			continue
		}
		current = append(current, line)
	}
	flush(inFence)

	return segments
}

// assemble packs segments into chunk contents up to the chunk size,
// carrying overlap text between consecutive chunks. Overlap is only
// materialised when a real segment follows it, so no chunk consists of
// overlap alone.
func (c *Chunker) assemble(segments []segment) []string {
	var pieces []string
	var cur strings.Builder
	var pendingOverlap string

	emit := func() {
		if cur.Len() == 0 {
			return
		}
		content := cur.String()
		pieces = append(pieces, content)
		pendingOverlap = c.overlapTail(content)
		cur.Reset()
	}

	appendSegment := func(text string) {
		if cur.Len() == 0 && pendingOverlap != "" {
			cur.WriteString(pendingOverlap)
			pendingOverlap = ""
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(text)
	}

	for _, seg := range segments {
		if cur.Len() > 0 && cur.Len()+2+len(seg.text) > c.chunkSize {
			emit()
		}

		if len(seg.text) > c.chunkSize {
			emit()
			if seg.isFence {
				// Oversized code blocks stay whole.
				pieces = append(pieces, seg.text)
			} else {
				c.hardSplit(seg.text, &pieces)
			}
			pendingOverlap = ""
			continue
		}

		appendSegment(seg.text)
	}
	emit()

	return pieces
}

// hardSplit slices an oversized text segment into fixed-size windows.
func (c *Chunker) hardSplit(text string, pieces *[]string) {
	step := c.chunkSize - c.overlap
	for start := 0; start < len(text); start += step {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}
		*pieces = append(*pieces, text[start:end])
		if end == len(text) {
			break
		}
	}
}

// overlapTail returns the trailing overlap of a chunk to seed the next one.
// No overlap is carried out of code fences, so fences never leak partial
// copies into neighbouring chunks.
func (c *Chunker) overlapTail(content string) string {
	if c.overlap == 0 || content == "" {
		return ""
	}
	start := len(content) - c.overlap
	if start < 0 {
		start = 0
	}
	tail := content[start:]
	if strings.Contains(tail, "```") || strings.Contains(tail, "~~~") {
		return ""
	}
	// Cut on a word boundary so the overlap reads cleanly.
	if idx := strings.IndexAny(tail, " \n"); idx >= 0 && idx+1 < len(tail) {
		tail = tail[idx+1:]
	}
	return tail
}

// estimateTokens approximates the token count at four characters per token.
func estimateTokens(content string) int {
	n := len(content) / 4
	if n == 0 && content != "" {
		n = 1
	}
	return n
}
