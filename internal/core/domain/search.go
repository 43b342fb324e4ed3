package domain

// SearchResult is one ranked hit returned by full-text or semantic search.
type SearchResult struct {
	// DocumentID identifies the matched document.
	DocumentID string

	// ChunkID identifies the matched chunk for semantic hits; empty for
	// document-level full-text hits.
	ChunkID string

	// Title is the document title.
	Title string

	// Path is the document path within the version.
	Path string

	// Snippet is the matched content excerpt.
	Snippet string

	// Score is the relevance score. Full-text scores are engine relevance;
	// semantic scores are cosine similarity in [0, 1].
	Score float64

	// ChunkIndex is the matched chunk's position; -1 for document-level hits.
	ChunkIndex int
}
