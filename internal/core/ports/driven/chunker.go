package driven

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// DocumentChunker splits a document into overlapping retrieval chunks.
// Chunk indices are contiguous and zero-based; fenced code blocks are never
// split across chunks.
type DocumentChunker interface {
	// Chunk splits doc.Content into chunks linked to doc.ID.
	// Embeddings are not populated here.
	Chunk(ctx context.Context, doc *domain.Document) ([]domain.DocumentChunk, error)
}
