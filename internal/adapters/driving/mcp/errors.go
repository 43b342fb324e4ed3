// Package mcp provides an MCP (Model Context Protocol) server adapter for
// docmcp. It lets AI assistants resolve libraries, trigger syncs and search
// versioned documentation.
package mcp

import "errors"

// Required-port errors.
var (
	// ErrMissingLibraryService is returned when the library service is not provided.
	ErrMissingLibraryService = errors.New("mcp: library service is required")

	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingDocumentService is returned when the document service is not provided.
	ErrMissingDocumentService = errors.New("mcp: document service is required")
)
