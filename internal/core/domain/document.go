package domain

import "time"

// Document is one normalised source file scoped to a library version.
// The path is unique within a version; contentHash detects no-op re-syncs.
type Document struct {
	// ID is the unique identifier.
	ID string

	// VersionID links to the owning LibraryVersion.
	VersionID string

	// Title is the extracted document title.
	Title string

	// Path is the file path relative to the documentation root.
	Path string

	// Content is the full text after parsing.
	Content string

	// ContentHash is the SHA-256 hex digest of Content, used to skip
	// re-chunking when a re-sync delivers identical bytes.
	ContentHash string

	// DocType identifies the source format (e.g. "markdown", "html").
	DocType string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentChunk is a sub-span of a document used for semantic search.
// Chunks are regenerated in full whenever the owning document changes.
type DocumentChunk struct {
	// ID is the unique identifier.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// ChunkIndex is the zero-based, contiguous position within the document.
	ChunkIndex int

	// Content is the chunk text.
	Content string

	// Embedding is the vector representation. Nil when embedding failed;
	// such chunks stay eligible for lexical search but are excluded from
	// vector search.
	Embedding []float32

	// TokenCount is a rough token estimate for the chunk.
	TokenCount int

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any

	CreatedAt time.Time
}

// CodeExample is a fenced or tagged code block extracted from a document.
type CodeExample struct {
	// ID is the unique identifier.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Language is the code block's language identifier (may be empty).
	Language string

	// Code is the block content.
	Code string

	// Description is optional surrounding context.
	Description string

	CreatedAt time.Time
}
