package driving

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// LibraryService manages the library registry and version resolution.
type LibraryService interface {
	// Resolve finds a library by name and resolves the requested version.
	// An empty version resolves to the version flagged isLatest.
	// Returns domain.ErrNotFound when the library or version is unknown.
	Resolve(ctx context.Context, name, version string) (*domain.ResolvedLibrary, error)

	// List returns registered libraries ordered by name, optionally
	// filtered by category.
	List(ctx context.Context, category string) ([]domain.Library, error)

	// Versions returns all versions of the named library, newest first.
	Versions(ctx context.Context, name string) ([]domain.LibraryVersion, error)

	// CreateLibrary registers a new library.
	// Returns domain.ErrAlreadyExists for a duplicate name and
	// domain.ErrInvalidInput for an empty name or unparseable source URL.
	CreateLibrary(ctx context.Context, lib domain.Library) (*domain.Library, error)

	// CreateVersion registers a new version of an existing library.
	// Marking it latest clears the flag on the previous latest version.
	CreateVersion(ctx context.Context, libraryName string, v domain.LibraryVersion) (*domain.LibraryVersion, error)
}
