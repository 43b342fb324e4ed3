package driven

import (
	"context"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// SyncHistoryStore persists sync run records and enforces run mutual
// exclusion per version.
type SyncHistoryStore interface {
	// StartRun atomically records a new RUNNING run for versionID.
	// Returns domain.ErrSyncInProgress when another run for the same
	// version is already RUNNING. The check and insert are a single
	// atomic operation.
	StartRun(ctx context.Context, versionID string) (*domain.SyncHistory, error)

	// CompleteRun transitions a run to SUCCESS with final counters.
	CompleteRun(ctx context.Context, id string, documentsProcessed, chunksCreated int) error

	// FailRun transitions a run to FAILED with final counters and the
	// failure reason.
	FailRun(ctx context.Context, id string, documentsProcessed, chunksCreated int, errorMessage string) error

	// HasRunning reports whether a RUNNING run exists for versionID.
	HasRunning(ctx context.Context, versionID string) (bool, error)

	// Latest returns the most recent run for versionID, nil when the
	// version was never synced.
	Latest(ctx context.Context, versionID string) (*domain.SyncHistory, error)

	// ListRecent returns up to limit runs for versionID, newest first.
	ListRecent(ctx context.Context, versionID string, limit int) ([]domain.SyncHistory, error)
}
