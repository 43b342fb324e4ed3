package services

import (
	"context"
	"errors"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driving"
	"github.com/custodia-labs/docmcp/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs background syncs of active library versions on a cron
// schedule. It is disabled by default and does nothing unless enabled.
type Scheduler struct {
	config    domain.SchedulerConfig
	libraries driving.LibraryService
	syncOrch  driving.SyncOrchestrator

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(
	config domain.SchedulerConfig,
	libraries driving.LibraryService,
	syncOrch driving.SyncOrchestrator,
) *Scheduler {
	if config.Schedule == "" {
		config.Schedule = domain.DefaultSyncSchedule
	}
	return &Scheduler{
		config:    config,
		libraries: libraries,
		syncOrch:  syncOrch,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or the context is cancelled. When the scheduler is disabled it returns
// immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logger.Info("Scheduler disabled, not starting")
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	c := cron.New()
	_, err := c.AddFunc(s.config.Schedule, func() {
		s.syncActiveVersions(ctx)
	})
	if err != nil {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return errors.Join(errors.New("invalid cron schedule"), err)
	}

	logger.Info("Scheduler started with schedule %q", s.config.Schedule)
	c.Start()
	defer func() {
		// Wait for an in-flight sync job to finish before returning.
		<-c.Stop().Done()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-stopCh:
		return nil
	}
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	close(s.stopCh)
	return nil
}

// syncActiveVersions syncs every ACTIVE version of every registered library.
// A version already being synced is skipped; other failures are logged and
// the sweep continues.
func (s *Scheduler) syncActiveVersions(ctx context.Context) {
	logger.Section("Scheduled Sync")

	libs, err := s.libraries.List(ctx, "")
	if err != nil {
		logger.Warn("Scheduled sync: list libraries failed: %v", err)
		return
	}

	var synced, failed int
	for _, lib := range libs {
		versions, err := s.libraries.Versions(ctx, lib.Name)
		if err != nil {
			logger.Warn("Scheduled sync: list versions of %s failed: %v", lib.Name, err)
			failed++
			continue
		}
		for _, v := range versions {
			if v.Status != domain.VersionActive {
				continue
			}
			if _, err := s.syncOrch.Sync(ctx, lib.Name, v.Version); err != nil {
				if errors.Is(err, domain.ErrSyncInProgress) {
					logger.Debug("Scheduled sync: %s@%s already running", lib.Name, v.Version)
					continue
				}
				logger.Warn("Scheduled sync: %s@%s failed: %v", lib.Name, v.Version, err)
				failed++
				continue
			}
			synced++
		}
	}

	logger.Info("Scheduled sync complete: %d synced, %d failed", synced, failed)
}
