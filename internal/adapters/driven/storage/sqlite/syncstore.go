package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// ==================== Sync History Store ====================

// syncHistoryStore implements driven.SyncHistoryStore.
type syncHistoryStore struct {
	store *Store
}

var _ driven.SyncHistoryStore = (*syncHistoryStore)(nil)

// StartRun atomically records a new RUNNING run for versionID.
// A partial unique index on (version_id) WHERE status='RUNNING' turns a
// concurrent start into a constraint violation, so the check and the
// insert are one operation.
func (s *syncHistoryStore) StartRun(ctx context.Context, versionID string) (*domain.SyncHistory, error) {
	run := &domain.SyncHistory{
		ID:        uuid.NewString(),
		VersionID: versionID,
		Status:    domain.SyncRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_history (id, version_id, status, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.VersionID, string(run.Status), run.StartedAt)

	if isUniqueViolation(err) {
		return nil, domain.ErrSyncInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("starting sync run: %w", err)
	}
	return run, nil
}

// CompleteRun transitions a run to SUCCESS with final counters.
func (s *syncHistoryStore) CompleteRun(
	ctx context.Context,
	id string,
	documentsProcessed, chunksCreated int,
) error {
	return s.finishRun(ctx, id, domain.SyncSuccess, documentsProcessed, chunksCreated, "")
}

// FailRun transitions a run to FAILED with final counters and the reason.
func (s *syncHistoryStore) FailRun(
	ctx context.Context,
	id string,
	documentsProcessed, chunksCreated int,
	errorMessage string,
) error {
	return s.finishRun(ctx, id, domain.SyncFailed, documentsProcessed, chunksCreated, errorMessage)
}

// finishRun writes the terminal state of a run. Terminal rows are never
// updated again.
func (s *syncHistoryStore) finishRun(
	ctx context.Context,
	id string,
	status domain.SyncStatus,
	documentsProcessed, chunksCreated int,
	errorMessage string,
) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE sync_history SET
			status = ?,
			completed_at = ?,
			documents_processed = ?,
			chunks_created = ?,
			error_message = ?
		WHERE id = ? AND status = 'RUNNING'
	`, string(status), time.Now().UTC(), documentsProcessed, chunksCreated, errorMessage, id)
	if err != nil {
		return fmt.Errorf("finishing sync run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking finished run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sync run %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// HasRunning reports whether a RUNNING run exists for versionID.
func (s *syncHistoryStore) HasRunning(ctx context.Context, versionID string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sync_history WHERE version_id = ? AND status = 'RUNNING'
	`, versionID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking running sync: %w", err)
	}
	return count > 0, nil
}

// Latest returns the most recent run for versionID, nil when the version
// was never synced.
func (s *syncHistoryStore) Latest(ctx context.Context, versionID string) (*domain.SyncHistory, error) {
	runs, err := s.ListRecent(ctx, versionID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ListRecent returns up to limit runs for versionID, newest first.
func (s *syncHistoryStore) ListRecent(
	ctx context.Context,
	versionID string,
	limit int,
) ([]domain.SyncHistory, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, version_id, status, started_at, completed_at,
			documents_processed, chunks_created, error_message, metadata
		FROM sync_history WHERE version_id = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, versionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync history: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncHistory //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.SyncHistory
		var status, metadataJSON string
		var completedAt sql.NullTime

		if err := rows.Scan(&run.ID, &run.VersionID, &status, &run.StartedAt,
			&completedAt, &run.DocumentsProcessed, &run.ChunksCreated,
			&run.ErrorMessage, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning sync run: %w", err)
		}

		run.Status = domain.SyncStatus(status)
		if completedAt.Valid {
			t := completedAt.Time
			run.CompletedAt = &t
		}
		if metadataJSON != "" && metadataJSON != jsonNull && metadataJSON != "{}" {
			if err := json.Unmarshal([]byte(metadataJSON), &run.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling sync metadata: %w", err)
			}
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync history: %w", err)
	}

	return runs, nil
}
