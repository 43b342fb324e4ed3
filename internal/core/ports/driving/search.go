package driving

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// SearchService provides search over synced documentation to external actors.
type SearchService interface {
	// FullText performs document-level keyword search within the resolved
	// library version.
	FullText(ctx context.Context, libraryName, version, query string, limit int) ([]domain.SearchResult, error)

	// Semantic performs chunk-level vector search within the resolved
	// library version. Hits below threshold are dropped.
	// Returns domain.ErrEmbeddingUnavailable when no embedding service is
	// configured.
	Semantic(ctx context.Context, libraryName, version, query string, limit int, threshold float64) ([]domain.SearchResult, error)
}
