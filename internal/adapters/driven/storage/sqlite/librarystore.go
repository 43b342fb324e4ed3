package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// ==================== Library Store ====================

// libraryStore implements driven.LibraryStore.
type libraryStore struct {
	store *Store
}

var _ driven.LibraryStore = (*libraryStore)(nil)

// Save stores or updates a library.
func (s *libraryStore) Save(ctx context.Context, lib *domain.Library) error {
	tagsJSON, err := json.Marshal(lib.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	now := time.Now().UTC()
	if lib.CreatedAt.IsZero() {
		lib.CreatedAt = now
	}
	lib.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO libraries
			(id, name, display_name, description, source_type, source_url, category, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			display_name = excluded.display_name,
			description = excluded.description,
			source_type = excluded.source_type,
			source_url = excluded.source_url,
			category = excluded.category,
			tags = excluded.tags,
			updated_at = excluded.updated_at
	`, lib.ID, lib.Name, lib.DisplayName, lib.Description, string(lib.SourceType),
		lib.SourceURL, lib.Category, string(tagsJSON), lib.CreatedAt, lib.UpdatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("library %q: %w", lib.Name, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	return nil
}

// GetByID retrieves a library by ID.
func (s *libraryStore) GetByID(ctx context.Context, id string) (*domain.Library, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, display_name, description, source_type, source_url, category, tags, created_at, updated_at
		FROM libraries WHERE id = ?
	`, id)

	return scanLibrary(row)
}

// GetByName retrieves a library by its unique name.
func (s *libraryStore) GetByName(ctx context.Context, name string) (*domain.Library, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, display_name, description, source_type, source_url, category, tags, created_at, updated_at
		FROM libraries WHERE name = ?
	`, name)

	return scanLibrary(row)
}

// List returns libraries ordered by name, optionally filtered by category.
func (s *libraryStore) List(ctx context.Context, category string) ([]domain.Library, error) {
	query := `
		SELECT id, name, display_name, description, source_type, source_url, category, tags, created_at, updated_at
		FROM libraries
	`
	args := []any{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY name"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying libraries: %w", err)
	}
	defer rows.Close()

	var libs []domain.Library //nolint:prealloc // size unknown from query
	for rows.Next() {
		lib, err := scanLibraryRows(rows)
		if err != nil {
			return nil, err
		}
		libs = append(libs, *lib)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating libraries: %w", err)
	}

	return libs, nil
}

// scanLibrary scans a single library row.
func scanLibrary(row *sql.Row) (*domain.Library, error) {
	var lib domain.Library
	var sourceType, tagsJSON string

	if err := row.Scan(&lib.ID, &lib.Name, &lib.DisplayName, &lib.Description,
		&sourceType, &lib.SourceURL, &lib.Category, &tagsJSON,
		&lib.CreatedAt, &lib.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning library: %w", err)
	}

	lib.SourceType = domain.SourceType(sourceType)
	if err := json.Unmarshal([]byte(tagsJSON), &lib.Tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags: %w", err)
	}

	return &lib, nil
}

// scanLibraryRows scans a library from *sql.Rows.
func scanLibraryRows(rows *sql.Rows) (*domain.Library, error) {
	var lib domain.Library
	var sourceType, tagsJSON string

	if err := rows.Scan(&lib.ID, &lib.Name, &lib.DisplayName, &lib.Description,
		&sourceType, &lib.SourceURL, &lib.Category, &tagsJSON,
		&lib.CreatedAt, &lib.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning library: %w", err)
	}

	lib.SourceType = domain.SourceType(sourceType)
	if err := json.Unmarshal([]byte(tagsJSON), &lib.Tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags: %w", err)
	}

	return &lib, nil
}

// ==================== Version Store ====================

// versionStore implements driven.VersionStore.
type versionStore struct {
	store *Store
}

var _ driven.VersionStore = (*versionStore)(nil)

// Save stores or updates a version.
func (s *versionStore) Save(ctx context.Context, v *domain.LibraryVersion) error {
	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	var releaseDate any
	if v.ReleaseDate != nil {
		releaseDate = *v.ReleaseDate
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO library_versions
			(id, library_id, version, is_latest, status, docs_path, release_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			library_id = excluded.library_id,
			version = excluded.version,
			is_latest = excluded.is_latest,
			status = excluded.status,
			docs_path = excluded.docs_path,
			release_date = excluded.release_date,
			updated_at = excluded.updated_at
	`, v.ID, v.LibraryID, v.Version, v.IsLatest, string(v.Status), v.DocsPath,
		releaseDate, v.CreatedAt, v.UpdatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("version %q: %w", v.Version, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("saving version: %w", err)
	}
	return nil
}

// GetByID retrieves a version by ID.
func (s *versionStore) GetByID(ctx context.Context, id string) (*domain.LibraryVersion, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, library_id, version, is_latest, status, docs_path, release_date, created_at, updated_at
		FROM library_versions WHERE id = ?
	`, id)

	return scanVersion(row)
}

// GetByLibraryAndVersion retrieves the named version of a library.
func (s *versionStore) GetByLibraryAndVersion(
	ctx context.Context,
	libraryID, version string,
) (*domain.LibraryVersion, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, library_id, version, is_latest, status, docs_path, release_date, created_at, updated_at
		FROM library_versions WHERE library_id = ? AND version = ?
	`, libraryID, version)

	return scanVersion(row)
}

// GetLatest retrieves the version flagged latest for a library.
func (s *versionStore) GetLatest(ctx context.Context, libraryID string) (*domain.LibraryVersion, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, library_id, version, is_latest, status, docs_path, release_date, created_at, updated_at
		FROM library_versions WHERE library_id = ? AND is_latest = 1
	`, libraryID)

	return scanVersion(row)
}

// ListByLibrary returns all versions of a library, newest first.
func (s *versionStore) ListByLibrary(ctx context.Context, libraryID string) ([]domain.LibraryVersion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, library_id, version, is_latest, status, docs_path, release_date, created_at, updated_at
		FROM library_versions WHERE library_id = ?
		ORDER BY created_at DESC, version DESC
	`, libraryID)
	if err != nil {
		return nil, fmt.Errorf("querying versions: %w", err)
	}
	defer rows.Close()

	var versions []domain.LibraryVersion //nolint:prealloc // size unknown from query
	for rows.Next() {
		v, err := scanVersionRows(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}

	return versions, nil
}

// scanVersion scans a single version row.
func scanVersion(row *sql.Row) (*domain.LibraryVersion, error) {
	var v domain.LibraryVersion
	var status string
	var releaseDate sql.NullTime

	if err := row.Scan(&v.ID, &v.LibraryID, &v.Version, &v.IsLatest, &status,
		&v.DocsPath, &releaseDate, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning version: %w", err)
	}

	v.Status = domain.VersionStatus(status)
	if releaseDate.Valid {
		t := releaseDate.Time
		v.ReleaseDate = &t
	}

	return &v, nil
}

// scanVersionRows scans a version from *sql.Rows.
func scanVersionRows(rows *sql.Rows) (*domain.LibraryVersion, error) {
	var v domain.LibraryVersion
	var status string
	var releaseDate sql.NullTime

	if err := rows.Scan(&v.ID, &v.LibraryID, &v.Version, &v.IsLatest, &status,
		&v.DocsPath, &releaseDate, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning version: %w", err)
	}

	v.Status = domain.VersionStatus(status)
	if releaseDate.Valid {
		t := releaseDate.Time
		v.ReleaseDate = &t
	}

	return &v, nil
}
