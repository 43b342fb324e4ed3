package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// titleWeight boosts title matches over body matches in bm25 ranking.
const titleWeight = 5.0

// lexicalIndex implements driven.LexicalIndex on the documents_fts table.
type lexicalIndex struct {
	store *Store
}

var _ driven.LexicalIndex = (*lexicalIndex)(nil)

// Search returns up to limit document-level full-text hits for query
// within versionID, best matches first.
func (s *lexicalIndex) Search(
	ctx context.Context,
	versionID, query string,
	limit int,
) ([]driven.LexicalHit, error) {
	match := ftsMatchExpr(query)
	if match == "" {
		return nil, nil
	}

	// bm25 returns negative values, more negative is better. Negate so
	// higher scores rank first.
	q := fmt.Sprintf(`
		SELECT d.id, d.title, d.path, d.content,
			-bm25(documents_fts, %.1f, 1.0) AS score
		FROM documents_fts
		JOIN documents d ON d.rowid = documents_fts.rowid
		WHERE documents_fts MATCH ? AND d.version_id = ?
		ORDER BY score DESC, d.path
		LIMIT ?
	`, titleWeight)
	rows, err := s.store.db.QueryContext(ctx, q, match, versionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying full-text index: %w", err)
	}
	defer rows.Close()

	var hits []driven.LexicalHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var hit driven.LexicalHit
		if err := rows.Scan(&hit.DocumentID, &hit.Title, &hit.Path,
			&hit.Content, &hit.Score); err != nil {
			return nil, fmt.Errorf("scanning full-text hit: %w", err)
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating full-text hits: %w", err)
	}

	return hits, nil
}

// ftsMatchExpr turns a raw user query into a safe FTS5 MATCH expression.
// Each token is double-quoted so FTS5 operators and punctuation in the
// input are treated as plain text. Tokens combine with implicit AND.
func ftsMatchExpr(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `"`)
		if f == "" {
			continue
		}
		quoted = append(quoted, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
