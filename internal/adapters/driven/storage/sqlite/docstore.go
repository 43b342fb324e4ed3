package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// UpsertDocument inserts or updates a document keyed on (VersionID, Path).
// An existing row keeps its ID; doc.ID is overwritten with the stored ID.
func (s *documentStore) UpsertDocument(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	now := time.Now().UTC()

	existing, err := s.FindByVersionAndPath(ctx, doc.VersionID, doc.Path)
	switch {
	case err == nil:
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
		doc.UpdatedAt = now

		_, err = s.store.db.ExecContext(ctx, `
			UPDATE documents SET
				title = ?,
				content = ?,
				content_hash = ?,
				doc_type = ?,
				metadata = ?,
				updated_at = ?
			WHERE id = ?
		`, doc.Title, doc.Content, doc.ContentHash, doc.DocType,
			string(metadataJSON), doc.UpdatedAt, doc.ID)
		if err != nil {
			return fmt.Errorf("updating document: %w", err)
		}
		return nil

	case errors.Is(err, domain.ErrNotFound):
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		doc.CreatedAt = now
		doc.UpdatedAt = now

		_, err = s.store.db.ExecContext(ctx, `
			INSERT INTO documents
				(id, version_id, title, path, content, content_hash, doc_type, metadata, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, doc.ID, doc.VersionID, doc.Title, doc.Path, doc.Content,
			doc.ContentHash, doc.DocType, string(metadataJSON), doc.CreatedAt, doc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("inserting document: %w", err)
		}
		return nil

	default:
		return err
	}
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, version_id, title, path, content, content_hash, doc_type, metadata, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// FindByVersionAndPath retrieves the document at path within a version.
func (s *documentStore) FindByVersionAndPath(
	ctx context.Context,
	versionID, path string,
) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, version_id, title, path, content, content_hash, doc_type, metadata, created_at, updated_at
		FROM documents WHERE version_id = ? AND path = ?
	`, versionID, path)

	return scanDocument(row)
}

// ListDocuments returns all documents of a version ordered by path.
func (s *documentStore) ListDocuments(ctx context.Context, versionID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, version_id, title, path, content, content_hash, doc_type, metadata, created_at, updated_at
		FROM documents WHERE version_id = ?
		ORDER BY path
	`, versionID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// SaveChunks stores chunks for a document.
func (s *documentStore) SaveChunks(ctx context.Context, chunks []domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO document_chunks
			(id, document_id, chunk_index, content, embedding, token_count, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		if chunk.ID == "" {
			chunk.ID = uuid.NewString()
		}
		if chunk.CreatedAt.IsZero() {
			chunk.CreatedAt = now
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.ChunkIndex,
			chunk.Content, embeddingBlob, chunk.TokenCount, string(metadataJSON),
			chunk.CreatedAt); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetChunks retrieves a document's chunks ordered by chunk index.
func (s *documentStore) GetChunks(ctx context.Context, documentID string) ([]domain.DocumentChunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, chunk_index, content, embedding, token_count, metadata, created_at
		FROM document_chunks WHERE document_id = ?
		ORDER BY chunk_index
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.DocumentChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// DeleteChunks removes all chunks of a document.
func (s *documentStore) DeleteChunks(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM document_chunks WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// SaveCodeExamples stores code examples for a document.
func (s *documentStore) SaveCodeExamples(ctx context.Context, examples []domain.CodeExample) error {
	if len(examples) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO code_examples (id, document_id, language, code, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, example := range examples {
		if example.ID == "" {
			example.ID = uuid.NewString()
		}
		if example.CreatedAt.IsZero() {
			example.CreatedAt = now
		}

		if _, err := stmt.ExecContext(ctx, example.ID, example.DocumentID,
			example.Language, example.Code, example.Description, example.CreatedAt); err != nil {
			return fmt.Errorf("saving code example: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListCodeExamples returns a document's code examples in document order,
// optionally filtered by language.
func (s *documentStore) ListCodeExamples(
	ctx context.Context,
	documentID, language string,
) ([]domain.CodeExample, error) {
	query := `
		SELECT id, document_id, language, code, description, created_at
		FROM code_examples WHERE document_id = ?
	`
	args := []any{documentID}
	if language != "" {
		query += " AND language = ?"
		args = append(args, language)
	}
	query += " ORDER BY rowid"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying code examples: %w", err)
	}
	defer rows.Close()

	var examples []domain.CodeExample //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.CodeExample
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.Language, &e.Code,
			&e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning code example: %w", err)
		}
		examples = append(examples, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating code examples: %w", err)
	}

	return examples, nil
}

// DeleteCodeExamples removes all code examples of a document.
func (s *documentStore) DeleteCodeExamples(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM code_examples WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting code examples: %w", err)
	}
	return nil
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON string

	if err := row.Scan(&doc.ID, &doc.VersionID, &doc.Title, &doc.Path, &doc.Content,
		&doc.ContentHash, &doc.DocType, &metadataJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if metadataJSON != "" && metadataJSON != jsonNull {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON string

	if err := rows.Scan(&doc.ID, &doc.VersionID, &doc.Title, &doc.Path, &doc.Content,
		&doc.ContentHash, &doc.DocType, &metadataJSON, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if metadataJSON != "" && metadataJSON != jsonNull {
		if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return &doc, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.DocumentChunk, error) {
	var chunk domain.DocumentChunk
	var embeddingBlob []byte
	var metadataJSON string

	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Content,
		&embeddingBlob, &chunk.TokenCount, &metadataJSON, &chunk.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON != "" && metadataJSON != jsonNull {
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
		}
	}

	return &chunk, nil
}
