package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes synced documents for direct retrieval.
type DocumentService struct {
	libraries driving.LibraryService
	docStore  driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(libraries driving.LibraryService, docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{
		libraries: libraries,
		docStore:  docStore,
	}
}

// GetContent retrieves the full document at path within the resolved
// library version.
func (s *DocumentService) GetContent(ctx context.Context, libraryName, version, path string) (*domain.Document, error) {
	resolved, err := s.libraries.Resolve(ctx, libraryName, version)
	if err != nil {
		return nil, err
	}
	doc, err := s.docStore.FindByVersionAndPath(ctx, resolved.Version.ID, path)
	if err != nil {
		return nil, fmt.Errorf("get document %q: %w", path, err)
	}
	return doc, nil
}

// List returns all documents of the resolved library version ordered by path.
func (s *DocumentService) List(ctx context.Context, libraryName, version string) ([]domain.Document, error) {
	resolved, err := s.libraries.Resolve(ctx, libraryName, version)
	if err != nil {
		return nil, err
	}
	docs, err := s.docStore.ListDocuments(ctx, resolved.Version.ID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// CodeExamples returns code examples extracted from the document at path.
func (s *DocumentService) CodeExamples(ctx context.Context, libraryName, version, path, language string) ([]domain.CodeExample, error) {
	resolved, err := s.libraries.Resolve(ctx, libraryName, version)
	if err != nil {
		return nil, err
	}
	doc, err := s.docStore.FindByVersionAndPath(ctx, resolved.Version.ID, path)
	if err != nil {
		return nil, fmt.Errorf("get document %q: %w", path, err)
	}
	examples, err := s.docStore.ListCodeExamples(ctx, doc.ID, language)
	if err != nil {
		return nil, fmt.Errorf("list code examples: %w", err)
	}
	return examples, nil
}
