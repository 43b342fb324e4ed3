package cli

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// newTestCmd returns a command with captured output for run functions.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	resolved  *domain.ResolvedLibrary
	libraries []domain.Library
	versions  []domain.LibraryVersion
	err       error

	createdLibrary *domain.Library
	createdVersion *domain.LibraryVersion
}

func (m *mockLibraryService) Resolve(_ context.Context, _, _ string) (*domain.ResolvedLibrary, error) {
	return m.resolved, m.err
}

func (m *mockLibraryService) List(_ context.Context, _ string) ([]domain.Library, error) {
	return m.libraries, m.err
}

func (m *mockLibraryService) Versions(_ context.Context, _ string) ([]domain.LibraryVersion, error) {
	return m.versions, m.err
}

func (m *mockLibraryService) CreateLibrary(_ context.Context, lib domain.Library) (*domain.Library, error) {
	if m.err != nil {
		return nil, m.err
	}
	lib.ID = "lib-1"
	m.createdLibrary = &lib
	return &lib, nil
}

func (m *mockLibraryService) CreateVersion(
	_ context.Context,
	_ string,
	v domain.LibraryVersion,
) (*domain.LibraryVersion, error) {
	if m.err != nil {
		return nil, m.err
	}
	v.ID = "ver-1"
	m.createdVersion = &v
	return &v, nil
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error

	lastSemantic  bool
	lastLimit     int
	lastThreshold float64
}

func (m *mockSearchService) FullText(
	_ context.Context,
	_, _, _ string,
	limit int,
) ([]domain.SearchResult, error) {
	m.lastSemantic = false
	m.lastLimit = limit
	return m.results, m.err
}

func (m *mockSearchService) Semantic(
	_ context.Context,
	_, _, _ string,
	limit int,
	threshold float64,
) ([]domain.SearchResult, error) {
	m.lastSemantic = true
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

	lastLocalDir string
}

func (m *mockSyncOrchestrator) Sync(_ context.Context, _, _ string) (*domain.SyncHistory, error) {
	return m.run, m.err
}

func (m *mockSyncOrchestrator) SyncFromLocal(_ context.Context, _, _, dir string) (*domain.SyncHistory, error) {
	m.lastLocalDir = dir
	return m.run, m.err
}

func (m *mockSyncOrchestrator) Status(_ context.Context, _, _ string) (*domain.SyncOverview, error) {
	return m.overview, m.err
}
