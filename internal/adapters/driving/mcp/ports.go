package mcp

import (
	"github.com/custodia-labs/docmcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library resolves names and versions and manages the registry.
	Library driving.LibraryService

	// Search provides full-text and semantic search.
	Search driving.SearchService

	// Document exposes synced documents and code examples.
	Document driving.DocumentService

	// Sync reports sync status and history. Optional; the status tool is
	// degraded without it.
	Sync driving.SyncOrchestrator
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
