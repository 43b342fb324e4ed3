package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/core/ports/driving"
	"github.com/custodia-labs/docmcp/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	// defaultSearchLimit applies when callers pass a non-positive limit.
	defaultSearchLimit = 10

	// snippetLength is the maximum snippet size in runes.
	snippetLength = 500
)

// SearchService provides full-text and semantic search over synced
// documentation, scoped to one resolved library version per query.
type SearchService struct {
	libraries driving.LibraryService
	lexical   driven.LexicalIndex
	vector    driven.VectorIndex
	embedder  driven.EmbeddingService
}

// NewSearchService creates a new search service.
// The embedder is optional - when nil, Semantic returns
// domain.ErrEmbeddingUnavailable.
func NewSearchService(
	libraries driving.LibraryService,
	lexical driven.LexicalIndex,
	vector driven.VectorIndex,
	embedder driven.EmbeddingService,
) *SearchService {
	return &SearchService{
		libraries: libraries,
		lexical:   lexical,
		vector:    vector,
		embedder:  embedder,
	}
}

// FullText performs document-level keyword search within the resolved
// library version.
func (s *SearchService) FullText(ctx context.Context, libraryName, version, query string, limit int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	resolved, err := s.libraries.Resolve(ctx, libraryName, version)
	if err != nil {
		return nil, err
	}

	logger.Section("Full-Text Search")
	logger.Debug("Query %q in %s@%s, limit %d", query, libraryName, resolved.ResolvedVersion, limit)

	hits, err := s.lexical.Search(ctx, resolved.Version.ID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, domain.SearchResult{
			DocumentID: hit.DocumentID,
			Title:      hit.Title,
			Path:       hit.Path,
			Snippet:    snippet(hit.Content),
			Score:      hit.Score,
			ChunkIndex: -1,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Path < results[j].Path
	})

	logger.Info("Full-text search returned %d results", len(results))
	return results, nil
}

// Semantic performs chunk-level vector search within the resolved library
// version. Hits below threshold are dropped.
func (s *SearchService) Semantic(ctx context.Context, libraryName, version, query string, limit int, threshold float64) ([]domain.SearchResult, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	resolved, err := s.libraries.Resolve(ctx, libraryName, version)
	if err != nil {
		return nil, err
	}

	logger.Section("Semantic Search")
	logger.Debug("Query %q in %s@%s, limit %d, threshold %.2f",
		query, libraryName, resolved.ResolvedVersion, limit, threshold)

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vector.QueryNearest(ctx, resolved.Version.ID, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Similarity < threshold {
			continue
		}
		results = append(results, domain.SearchResult{
			DocumentID: hit.DocumentID,
			ChunkID:    hit.ChunkID,
			Title:      hit.Title,
			Path:       hit.Path,
			Snippet:    snippet(hit.Content),
			Score:      hit.Similarity,
			ChunkIndex: hit.ChunkIndex,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Path != results[j].Path {
			return results[i].Path < results[j].Path
		}
		return results[i].ChunkIndex < results[j].ChunkIndex
	})

	logger.Info("Semantic search returned %d results above threshold", len(results))
	return results, nil
}

// snippet truncates content to the snippet length on a rune boundary.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}
	return string(runes[:snippetLength])
}
