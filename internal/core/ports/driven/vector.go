package driven

import "context"

// VectorHit is one chunk-level nearest-neighbour match.
type VectorHit struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// DocumentID identifies the chunk's parent document.
	DocumentID string

	// ChunkIndex is the chunk's position within its document.
	ChunkIndex int

	// Title is the parent document title.
	Title string

	// Path is the parent document path.
	Path string

	// Content is the chunk text.
	Content string

	// Similarity is the cosine similarity in [0, 1], higher is closer.
	Similarity float64
}

// VectorIndex provides nearest-neighbour search over chunk embeddings,
// scoped to a single library version. Chunks without embeddings are
// invisible to it.
type VectorIndex interface {
	// QueryNearest returns up to limit chunks closest to query within
	// versionID, ordered by similarity descending.
	QueryNearest(ctx context.Context, versionID string, query []float32, limit int) ([]VectorHit, error)
}
