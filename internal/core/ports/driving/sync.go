package driving

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// SyncOrchestrator coordinates documentation synchronisation runs.
type SyncOrchestrator interface {
	// Sync fetches, parses, chunks, embeds and indexes the documentation
	// of the named library version, recording the run in sync history.
	// Returns domain.ErrSyncInProgress when a run for the same version is
	// already active.
	Sync(ctx context.Context, libraryName, version string) (*domain.SyncHistory, error)

	// SyncFromLocal ingests documentation from a local directory instead
	// of the library's remote source. Same concurrency and history
	// semantics as Sync.
	SyncFromLocal(ctx context.Context, libraryName, version, dir string) (*domain.SyncHistory, error)

	// Status returns the live and historical sync view for a version.
	Status(ctx context.Context, libraryName, version string) (*domain.SyncOverview, error)
}
