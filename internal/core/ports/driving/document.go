package driving

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// DocumentService exposes synced documents for direct retrieval.
type DocumentService interface {
	// GetContent retrieves the full document at path within the resolved
	// library version.
	GetContent(ctx context.Context, libraryName, version, path string) (*domain.Document, error)

	// List returns all documents of the resolved library version ordered
	// by path, suitable as a table of contents.
	List(ctx context.Context, libraryName, version string) ([]domain.Document, error)

	// CodeExamples returns code examples extracted from the document at
	// path, optionally filtered by language.
	CodeExamples(ctx context.Context, libraryName, version, path, language string) ([]domain.CodeExample, error)
}
