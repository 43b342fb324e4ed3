package domain

import "time"

// SyncStatus is the state of a synchronisation run.
// PENDING and RUNNING are transient; SUCCESS and FAILED are terminal and
// immutable once written.
type SyncStatus string

// Sync run states.
const (
	SyncPending SyncStatus = "PENDING"
	SyncRunning SyncStatus = "RUNNING"
	SyncSuccess SyncStatus = "SUCCESS"
	SyncFailed  SyncStatus = "FAILED"
)

// IsTerminal reports whether the status is a final state.
func (s SyncStatus) IsTerminal() bool {
	return s == SyncSuccess || s == SyncFailed
}

// SyncHistory is the auditable record of one synchronisation run.
// At most one row per version may be RUNNING at any instant.
type SyncHistory struct {
	// ID is the unique identifier.
	ID string

	// VersionID is the LibraryVersion being synchronised.
	VersionID string

	// Status is the run state.
	Status SyncStatus

	StartedAt   time.Time
	CompletedAt *time.Time

	// DocumentsProcessed counts documents parsed and stored in this run.
	DocumentsProcessed int

	// ChunksCreated counts chunks written in this run.
	ChunksCreated int

	// ErrorMessage holds the failure reason for FAILED runs.
	ErrorMessage string

	// Metadata contains run-specific key-value pairs.
	Metadata map[string]any
}

// DefaultSyncSchedule is the cron expression used when no schedule is
// configured: daily at 02:00.
const DefaultSyncSchedule = "0 2 * * *"

// SchedulerConfig controls the background sync scheduler.
type SchedulerConfig struct {
	// Enabled gates all scheduled syncs. Disabled by default.
	Enabled bool

	// Schedule is a standard 5-field cron expression.
	Schedule string
}

// SyncOverview combines the live and historical view of a version's syncs.
type SyncOverview struct {
	// IsRunning is true while a RUNNING row exists for the version.
	IsRunning bool

	// LatestRun is the most recent run, nil when the version was never synced.
	LatestRun *SyncHistory

	// RecentHistory lists recent runs, newest first.
	RecentHistory []SyncHistory
}
