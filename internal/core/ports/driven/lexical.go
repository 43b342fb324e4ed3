package driven

import "context"

// LexicalHit is one document-level full-text match.
type LexicalHit struct {
	// DocumentID identifies the matched document.
	DocumentID string

	// Title is the document title.
	Title string

	// Path is the document path within the version.
	Path string

	// Content is the full document content; callers derive snippets.
	Content string

	// Score is the engine relevance score, higher is better.
	Score float64
}

// LexicalIndex provides keyword search over documents, scoped to a single
// library version. Title matches outrank body matches.
type LexicalIndex interface {
	// Search returns up to limit hits for query within versionID,
	// ordered by score descending then path ascending.
	// An empty result is not an error.
	Search(ctx context.Context, versionID, query string, limit int) ([]LexicalHit, error)
}
