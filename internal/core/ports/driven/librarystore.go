package driven

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// LibraryStore persists tracked libraries.
type LibraryStore interface {
	// Save inserts or updates a library.
	// Returns domain.ErrAlreadyExists when inserting a duplicate name.
	Save(ctx context.Context, lib *domain.Library) error

	// GetByID retrieves a library by ID.
	// Returns domain.ErrNotFound when missing.
	GetByID(ctx context.Context, id string) (*domain.Library, error)

	// GetByName retrieves a library by its unique name.
	// Returns domain.ErrNotFound when missing.
	GetByName(ctx context.Context, name string) (*domain.Library, error)

	// List returns libraries ordered by name, optionally filtered by
	// category. Empty category means no filter.
	List(ctx context.Context, category string) ([]domain.Library, error)
}

// VersionStore persists library versions.
type VersionStore interface {
	// Save inserts or updates a version.
	// Returns domain.ErrAlreadyExists when inserting a duplicate
	// (library, version) pair.
	Save(ctx context.Context, v *domain.LibraryVersion) error

	// GetByID retrieves a version by ID.
	// Returns domain.ErrNotFound when missing.
	GetByID(ctx context.Context, id string) (*domain.LibraryVersion, error)

	// GetByLibraryAndVersion retrieves the named version of a library.
	// Returns domain.ErrNotFound when missing.
	GetByLibraryAndVersion(ctx context.Context, libraryID, version string) (*domain.LibraryVersion, error)

	// GetLatest retrieves the version flagged isLatest for a library.
	// Returns domain.ErrNotFound when the library has no latest version.
	GetLatest(ctx context.Context, libraryID string) (*domain.LibraryVersion, error)

	// ListByLibrary returns all versions of a library, newest first.
	ListByLibrary(ctx context.Context, libraryID string) ([]domain.LibraryVersion, error)
}
