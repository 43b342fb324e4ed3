package driven

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// DocumentStore persists documents, their chunks and code examples.
// Chunks and code examples are replaced wholesale when a document changes,
// never patched in place.
type DocumentStore interface {
	// UpsertDocument inserts or updates a document keyed on
	// (VersionID, Path). When a row already exists its ID is preserved
	// and doc.ID is overwritten with the stored ID.
	UpsertDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound when missing.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// FindByVersionAndPath retrieves the document at path within a version.
	// Returns domain.ErrNotFound when missing.
	FindByVersionAndPath(ctx context.Context, versionID, path string) (*domain.Document, error)

	// ListDocuments returns all documents of a version ordered by path.
	ListDocuments(ctx context.Context, versionID string) ([]domain.Document, error)

	// SaveChunks inserts chunks. Callers delete existing chunks first.
	SaveChunks(ctx context.Context, chunks []domain.DocumentChunk) error

	// GetChunks returns a document's chunks ordered by chunk index.
	GetChunks(ctx context.Context, documentID string) ([]domain.DocumentChunk, error)

	// DeleteChunks removes all chunks of a document.
	DeleteChunks(ctx context.Context, documentID string) error

	// SaveCodeExamples inserts code examples.
	SaveCodeExamples(ctx context.Context, examples []domain.CodeExample) error

	// ListCodeExamples returns a document's code examples in document order,
	// optionally filtered by language. Empty language means no filter.
	ListCodeExamples(ctx context.Context, documentID, language string) ([]domain.CodeExample, error)

	// DeleteCodeExamples removes all code examples of a document.
	DeleteCodeExamples(ctx context.Context, documentID string) error
}
