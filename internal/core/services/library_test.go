package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

func TestLibraryService_CreateLibrary(t *testing.T) {
	svc := NewLibraryService(newFakeLibraryStore(), newFakeVersionStore())

	lib, err := svc.CreateLibrary(context.Background(), domain.Library{
		Name:      "react",
		SourceURL: "https://github.com/facebook/react",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, lib.ID)
	assert.Equal(t, "react", lib.DisplayName) // defaults to name
	assert.Equal(t, domain.SourceGitHub, lib.SourceType)
}

func TestLibraryService_CreateLibrary_EmptyName(t *testing.T) {
	svc := NewLibraryService(newFakeLibraryStore(), newFakeVersionStore())

	_, err := svc.CreateLibrary(context.Background(), domain.Library{
		Name:      "   ",
		SourceURL: "https://github.com/facebook/react",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLibraryService_CreateLibrary_BadSourceURL(t *testing.T) {
	svc := NewLibraryService(newFakeLibraryStore(), newFakeVersionStore())

	_, err := svc.CreateLibrary(context.Background(), domain.Library{
		Name:      "react",
		SourceURL: "https://example.com/not-github",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLibraryService_CreateLibrary_Duplicate(t *testing.T) {
	svc, _, _ := seedLibrary(t)

	_, err := svc.CreateLibrary(context.Background(), domain.Library{
		Name:      "react",
		SourceURL: "https://github.com/facebook/react",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestLibraryService_Resolve_Latest(t *testing.T) {
	svc, _, _ := seedLibrary(t)

	resolved, err := svc.Resolve(context.Background(), "react", "")
	require.NoError(t, err)
	assert.Equal(t, "react", resolved.Library.Name)
	assert.Equal(t, "18.2.0", resolved.ResolvedVersion)
	assert.True(t, resolved.Version.IsLatest)
}

func TestLibraryService_Resolve_ExplicitVersion(t *testing.T) {
	svc, _, _ := seedLibrary(t)
	_, err := svc.CreateVersion(context.Background(), "react", domain.LibraryVersion{
		Version: "17.0.2",
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), "react", "17.0.2")
	require.NoError(t, err)
	assert.Equal(t, "17.0.2", resolved.ResolvedVersion)
	assert.False(t, resolved.Version.IsLatest)
}

func TestLibraryService_Resolve_UnknownLibrary(t *testing.T) {
	svc := NewLibraryService(newFakeLibraryStore(), newFakeVersionStore())

	_, err := svc.Resolve(context.Background(), "nope", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_Resolve_UnknownVersion(t *testing.T) {
	svc, _, _ := seedLibrary(t)

	_, err := svc.Resolve(context.Background(), "react", "99.0.0")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_CreateVersion_ReplacesLatest(t *testing.T) {
	svc, _, _ := seedLibrary(t)

	v2, err := svc.CreateVersion(context.Background(), "react", domain.LibraryVersion{
		Version:  "19.0.0",
		IsLatest: true,
	})
	require.NoError(t, err)
	assert.True(t, v2.IsLatest)

	// Resolving without a version now lands on the new latest.
	resolved, err := svc.Resolve(context.Background(), "react", "")
	require.NoError(t, err)
	assert.Equal(t, "19.0.0", resolved.ResolvedVersion)

	// The previous latest lost its flag.
	old, err := svc.Resolve(context.Background(), "react", "18.2.0")
	require.NoError(t, err)
	assert.False(t, old.Version.IsLatest)
}

func TestLibraryService_CreateVersion_Defaults(t *testing.T) {
	svc, _, _ := seedLibrary(t)

	v, err := svc.CreateVersion(context.Background(), "react", domain.LibraryVersion{
		Version: "17.0.2",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VersionActive, v.Status)
	assert.Equal(t, "docs", v.DocsPath)
}

func TestLibraryService_Versions(t *testing.T) {
	svc, _, _ := seedLibrary(t)
	_, err := svc.CreateVersion(context.Background(), "react", domain.LibraryVersion{Version: "17.0.2"})
	require.NoError(t, err)

	versions, err := svc.Versions(context.Background(), "react")
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}

func TestLibraryService_List_FilterByCategory(t *testing.T) {
	svc := NewLibraryService(newFakeLibraryStore(), newFakeVersionStore())
	_, err := svc.CreateLibrary(context.Background(), domain.Library{
		Name: "react", SourceURL: "https://github.com/facebook/react", Category: "frontend",
	})
	require.NoError(t, err)
	_, err = svc.CreateLibrary(context.Background(), domain.Library{
		Name: "gin", SourceURL: "https://github.com/gin-gonic/gin", Category: "backend",
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	frontend, err := svc.List(context.Background(), "frontend")
	require.NoError(t, err)
	require.Len(t, frontend, 1)
	assert.Equal(t, "react", frontend[0].Name)
}
