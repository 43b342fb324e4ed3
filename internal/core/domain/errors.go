package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSyncInProgress indicates a sync is already running for the version.
	// Start attempts are rejected, never queued.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrFetchFailed indicates every fetch strategy was exhausted without
	// producing any files.
	ErrFetchFailed = errors.New("all fetch strategies failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Semantic search is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates a vector does not match the deployment's
	// fixed embedding dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
