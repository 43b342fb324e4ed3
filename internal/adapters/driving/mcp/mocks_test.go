package mcp

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	resolved  *domain.ResolvedLibrary
	libraries []domain.Library
	versions  []domain.LibraryVersion
	err       error

	lastCategory string
}

func (m *mockLibraryService) Resolve(_ context.Context, _, _ string) (*domain.ResolvedLibrary, error) {
	return m.resolved, m.err
}

func (m *mockLibraryService) List(_ context.Context, category string) ([]domain.Library, error) {
	m.lastCategory = category
	return m.libraries, m.err
}

func (m *mockLibraryService) Versions(_ context.Context, _ string) ([]domain.LibraryVersion, error) {
	return m.versions, m.err
}

func (m *mockLibraryService) CreateLibrary(_ context.Context, lib domain.Library) (*domain.Library, error) {
	return &lib, m.err
}

func (m *mockLibraryService) CreateVersion(
	_ context.Context,
	_ string,
	v domain.LibraryVersion,
) (*domain.LibraryVersion, error) {
	return &v, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error

	lastLimit     int
	lastThreshold float64
}

func (m *mockSearchService) FullText(
	_ context.Context,
	_, _, _ string,
	limit int,
) ([]domain.SearchResult, error) {
	m.lastLimit = limit
	return m.results, m.err
}

func (m *mockSearchService) Semantic(
	_ context.Context,
	_, _, _ string,
	limit int,
	threshold float64,
) ([]domain.SearchResult, error) {
	m.lastLimit = limit
	m.lastThreshold = threshold
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document  *domain.Document
	documents []domain.Document
	examples  []domain.CodeExample
	err       error
}

func (m *mockDocumentService) GetContent(_ context.Context, _, _, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) List(_ context.Context, _, _ string) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) CodeExamples(
	_ context.Context,
	_, _, _, _ string,
) ([]domain.CodeExample, error) {
	return m.examples, m.err
}

// mockSyncOrchestrator is a mock implementation of driving.SyncOrchestrator.
type mockSyncOrchestrator struct {
	run      *domain.SyncHistory
	overview *domain.SyncOverview
	err      error
}

func (m *mockSyncOrchestrator) Sync(_ context.Context, _, _ string) (*domain.SyncHistory, error) {
	return m.run, m.err
}

func (m *mockSyncOrchestrator) SyncFromLocal(_ context.Context, _, _, _ string) (*domain.SyncHistory, error) {
	return m.run, m.err
}

func (m *mockSyncOrchestrator) Status(_ context.Context, _, _ string) (*domain.SyncOverview, error) {
	return m.overview, m.err
}

// newTestPorts returns ports with all required mocks wired.
func newTestPorts() *Ports {
	return &Ports{
		Library:  &mockLibraryService{},
		Search:   &mockSearchService{},
		Document: &mockDocumentService{},
	}
}
