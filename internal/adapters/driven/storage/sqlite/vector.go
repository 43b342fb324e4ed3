package sqlite

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// vectorIndex implements driven.VectorIndex over the embedding blobs in
// document_chunks. Similarity is computed in Go; the corpus per version
// is small enough that a linear scan stays cheap.
type vectorIndex struct {
	store *Store
}

var _ driven.VectorIndex = (*vectorIndex)(nil)

// QueryNearest returns up to limit chunks closest to query within
// versionID, ordered by cosine similarity descending. Chunks without an
// embedding and chunks of a different dimension are skipped.
func (s *vectorIndex) QueryNearest(
	ctx context.Context,
	versionID string,
	query []float32,
	limit int,
) ([]driven.VectorHit, error) {
	if len(query) == 0 || limit <= 0 {
		return nil, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.chunk_index, c.content, c.embedding,
			d.title, d.path
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE d.version_id = ? AND c.embedding IS NOT NULL
	`, versionID)
	if err != nil {
		return nil, fmt.Errorf("querying chunk embeddings: %w", err)
	}
	defer rows.Close()

	var hits []driven.VectorHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit driven.VectorHit
		var embeddingBlob []byte
		if err := rows.Scan(&hit.ChunkID, &hit.DocumentID, &hit.ChunkIndex,
			&hit.Content, &embeddingBlob, &hit.Title, &hit.Path); err != nil {
			return nil, fmt.Errorf("scanning chunk embedding: %w", err)
		}

		embedding := bytesToFloat32Slice(embeddingBlob)
		if len(embedding) != len(query) {
			continue
		}

		hit.Similarity = cosineSimilarity(query, embedding)
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk embeddings: %w", err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	return hits, nil
}
