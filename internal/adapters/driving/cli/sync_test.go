package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

func TestRunSync(t *testing.T) {
	restore := syncOrchestrator
	defer func() { syncOrchestrator = restore }()

	completed := time.Now().UTC()
	run := &domain.SyncHistory{
		ID:                 "run-1",
		Status:             domain.SyncSuccess,
		StartedAt:          completed.Add(-2 * time.Second),
		CompletedAt:        &completed,
		DocumentsProcessed: 12,
		ChunksCreated:      40,
	}

	t.Run("no orchestrator configured", func(t *testing.T) {
		syncOrchestrator = nil
		cmd, _ := newTestCmd()
		err := runSync(cmd, []string{"react"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("remote sync prints run summary", func(t *testing.T) {
		mock := &mockSyncOrchestrator{run: run}
		syncOrchestrator = mock
		syncLocalDir = ""

		cmd, buf := newTestCmd()
		err := runSync(cmd, []string{"react"})
		require.NoError(t, err)
		assert.Empty(t, mock.lastLocalDir)
		assert.Contains(t, buf.String(), "SUCCESS")
		assert.Contains(t, buf.String(), "Documents: 12")
		assert.Contains(t, buf.String(), "Chunks:    40")
	})

	t.Run("local flag routes to SyncFromLocal", func(t *testing.T) {
		mock := &mockSyncOrchestrator{run: run}
		syncOrchestrator = mock
		syncLocalDir = "/tmp/docs"
		defer func() { syncLocalDir = "" }()

		cmd, _ := newTestCmd()
		err := runSync(cmd, []string{"react"})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/docs", mock.lastLocalDir)
	})

	t.Run("propagates sync in progress", func(t *testing.T) {
		syncOrchestrator = &mockSyncOrchestrator{err: domain.ErrSyncInProgress}
		cmd, _ := newTestCmd()
		err := runSync(cmd, []string{"react"})
		assert.ErrorIs(t, err, domain.ErrSyncInProgress)
	})
}

func TestRunSyncStatus(t *testing.T) {
	restore := syncOrchestrator
	defer func() { syncOrchestrator = restore }()

	t.Run("never synced", func(t *testing.T) {
		syncOrchestrator = &mockSyncOrchestrator{overview: &domain.SyncOverview{}}
		cmd, buf := newTestCmd()
		err := runSyncStatus(cmd, []string{"react"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Never synced.")
	})

	t.Run("shows latest run and history", func(t *testing.T) {
		failed := domain.SyncHistory{
			ID:           "run-0",
			Status:       domain.SyncFailed,
			StartedAt:    time.Now().UTC().Add(-time.Hour),
			ErrorMessage: "rate limited",
		}
		latest := domain.SyncHistory{
			ID:                 "run-1",
			Status:             domain.SyncSuccess,
			StartedAt:          time.Now().UTC(),
			DocumentsProcessed: 3,
		}
		syncOrchestrator = &mockSyncOrchestrator{overview: &domain.SyncOverview{
			IsRunning:     true,
			LatestRun:     &latest,
			RecentHistory: []domain.SyncHistory{latest, failed},
		}}

		cmd, buf := newTestCmd()
		err := runSyncStatus(cmd, []string{"react"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "currently running")
		assert.Contains(t, buf.String(), "Latest run:")
		assert.Contains(t, buf.String(), "Recent runs:")
		assert.Contains(t, buf.String(), "FAILED")
	})
}
