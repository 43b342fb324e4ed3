package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/core/ports/driving"
	"github.com/custodia-labs/docmcp/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages the library registry and version resolution.
type LibraryService struct {
	libStore     driven.LibraryStore
	versionStore driven.VersionStore
}

// NewLibraryService creates a new library service.
func NewLibraryService(libStore driven.LibraryStore, versionStore driven.VersionStore) *LibraryService {
	return &LibraryService{
		libStore:     libStore,
		versionStore: versionStore,
	}
}

// Resolve finds a library by name and resolves the requested version.
// An empty version resolves to the version flagged isLatest.
func (s *LibraryService) Resolve(ctx context.Context, name, version string) (*domain.ResolvedLibrary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: library name is required", domain.ErrInvalidInput)
	}

	lib, err := s.libStore.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get library %q: %w", name, err)
	}

	var ver *domain.LibraryVersion
	if version == "" {
		ver, err = s.versionStore.GetLatest(ctx, lib.ID)
		if err != nil {
			return nil, fmt.Errorf("get latest version of %q: %w", name, err)
		}
	} else {
		ver, err = s.versionStore.GetByLibraryAndVersion(ctx, lib.ID, version)
		if err != nil {
			return nil, fmt.Errorf("get version %q of %q: %w", version, name, err)
		}
	}

	logger.Debug("Resolved %s@%s to version %s", name, version, ver.ID)
	return &domain.ResolvedLibrary{
		Library:         *lib,
		Version:         *ver,
		ResolvedVersion: ver.Version,
	}, nil
}

// List returns registered libraries ordered by name.
func (s *LibraryService) List(ctx context.Context, category string) ([]domain.Library, error) {
	libs, err := s.libStore.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	return libs, nil
}

// Versions returns all versions of the named library, newest first.
func (s *LibraryService) Versions(ctx context.Context, name string) ([]domain.LibraryVersion, error) {
	lib, err := s.libStore.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get library %q: %w", name, err)
	}
	versions, err := s.versionStore.ListByLibrary(ctx, lib.ID)
	if err != nil {
		return nil, fmt.Errorf("list versions of %q: %w", name, err)
	}
	return versions, nil
}

// CreateLibrary registers a new library.
func (s *LibraryService) CreateLibrary(ctx context.Context, lib domain.Library) (*domain.Library, error) {
	lib.Name = strings.TrimSpace(lib.Name)
	if lib.Name == "" {
		return nil, fmt.Errorf("%w: library name is required", domain.ErrInvalidInput)
	}
	if lib.SourceType == "" {
		lib.SourceType = domain.SourceGitHub
	}
	if lib.SourceType == domain.SourceGitHub {
		if owner, repo := lib.GitHubRepo(); owner == "" || repo == "" {
			return nil, fmt.Errorf("%w: source URL %q is not a GitHub repository URL", domain.ErrInvalidInput, lib.SourceURL)
		}
	}
	if lib.DisplayName == "" {
		lib.DisplayName = lib.Name
	}

	now := time.Now()
	lib.ID = uuid.NewString()
	lib.CreatedAt = now
	lib.UpdatedAt = now

	if err := s.libStore.Save(ctx, &lib); err != nil {
		return nil, fmt.Errorf("save library %q: %w", lib.Name, err)
	}
	logger.Info("Registered library %s (%s)", lib.Name, lib.ID)
	return &lib, nil
}

// CreateVersion registers a new version of an existing library.
// Marking it latest clears the flag on the previous latest version.
func (s *LibraryService) CreateVersion(ctx context.Context, libraryName string, v domain.LibraryVersion) (*domain.LibraryVersion, error) {
	v.Version = strings.TrimSpace(v.Version)
	if v.Version == "" {
		return nil, fmt.Errorf("%w: version string is required", domain.ErrInvalidInput)
	}

	lib, err := s.libStore.GetByName(ctx, libraryName)
	if err != nil {
		return nil, fmt.Errorf("get library %q: %w", libraryName, err)
	}

	if v.IsLatest {
		if err := s.clearLatest(ctx, lib.ID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	v.ID = uuid.NewString()
	v.LibraryID = lib.ID
	if v.Status == "" {
		v.Status = domain.VersionActive
	}
	if v.DocsPath == "" {
		v.DocsPath = "docs"
	}
	v.CreatedAt = now
	v.UpdatedAt = now

	if err := s.versionStore.Save(ctx, &v); err != nil {
		return nil, fmt.Errorf("save version %q of %q: %w", v.Version, libraryName, err)
	}
	logger.Info("Registered version %s of %s (%s)", v.Version, libraryName, v.ID)
	return &v, nil
}

// clearLatest unsets the latest flag on the current latest version, if any.
func (s *LibraryService) clearLatest(ctx context.Context, libraryID string) error {
	current, err := s.versionStore.GetLatest(ctx, libraryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get latest version: %w", err)
	}
	current.IsLatest = false
	current.UpdatedAt = time.Now()
	if err := s.versionStore.Save(ctx, current); err != nil {
		return fmt.Errorf("clear latest flag: %w", err)
	}
	return nil
}
