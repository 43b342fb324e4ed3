package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

func TestLexicalIndex_Search(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, versionID := seedVersion(t, store)

	seedDocument(t, store, versionID, "hooks.md", "Hooks API",
		"useState returns a stateful value and a function to update it.")
	seedDocument(t, store, versionID, "components.md", "Components",
		"Components let you split the UI into independent pieces.")

	hits, err := store.LexicalIndex().Search(ctx, versionID, "useState", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Hooks API", hits[0].Title)
	assert.Equal(t, "hooks.md", hits[0].Path)
	assert.Positive(t, hits[0].Score)
	assert.Contains(t, hits[0].Content, "stateful value")
}

func TestLexicalIndex_TitleMatchOutranksBodyMatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, versionID := seedVersion(t, store)

	seedDocument(t, store, versionID, "mentions.md", "Other topics",
		"This page mentions rendering only in passing, nothing else about rendering here.")
	seedDocument(t, store, versionID, "rendering.md", "Rendering",
		"How the framework paints the screen.")

	hits, err := store.LexicalIndex().Search(ctx, versionID, "rendering", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "rendering.md", hits[0].Path)
}

func TestLexicalIndex_ScopedToVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	libraryID, versionID := seedVersion(t, store)

	other := &domain.LibraryVersion{
		ID:        uuid.NewString(),
		LibraryID: libraryID,
		Version:   "17.0.2",
		Status:    domain.VersionActive,
	}
	require.NoError(t, store.VersionStore().Save(ctx, other))

	seedDocument(t, store, versionID, "a.md", "Suspense", "Suspense in 18.")
	seedDocument(t, store, other.ID, "a.md", "Suspense", "Suspense in 17.")

	hits, err := store.LexicalIndex().Search(ctx, versionID, "suspense", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Content, "18")
}

func TestLexicalIndex_UpdatedDocumentReindexed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, versionID := seedVersion(t, store)

	doc := seedDocument(t, store, versionID, "guide.md", "Guide", "The old transclusion text.")

	hits, err := store.LexicalIndex().Search(ctx, versionID, "transclusion", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	doc.Content = "Completely rewritten body."
	require.NoError(t, store.DocumentStore().UpsertDocument(ctx, doc))

	hits, err = store.LexicalIndex().Search(ctx, versionID, "transclusion", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = store.LexicalIndex().Search(ctx, versionID, "rewritten", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestLexicalIndex_QuerySanitised(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, versionID := seedVersion(t, store)

	seedDocument(t, store, versionID, "a.md", "A", "plain words here")

	// FTS5 operators and punctuation are treated as literal text.
	for _, q := range []string{`AND OR NOT`, `"broken`, `paren(thesis)`, `star*`} {
		_, err := store.LexicalIndex().Search(ctx, versionID, q, 10)
		require.NoError(t, err, "query %q", q)
	}

	hits, err := store.LexicalIndex().Search(ctx, versionID, "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestLexicalIndex_RespectsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, versionID := seedVersion(t, store)

	for _, path := range []string{"a.md", "b.md", "c.md"} {
		seedDocument(t, store, versionID, path, "Title "+path, "shared keyword everywhere")
	}

	hits, err := store.LexicalIndex().Search(ctx, versionID, "keyword", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func seedChunk(t *testing.T, store *Store, documentID string, index int, content string, embedding []float32) {
	t.Helper()
	require.NoError(t, store.DocumentStore().SaveChunks(context.Background(), []domain.DocumentChunk{{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		ChunkIndex: index,
		Content:    content,
		Embedding:  embedding,
	}}))
}

func TestVectorIndex_QueryNearest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, versionID := seedVersion(t, store)
	doc := seedDocument(t, store, versionID, "guide.md", "Guide", "content")

	seedChunk(t, store, doc.ID, 0, "close match", []float32{1, 0, 0})
	seedChunk(t, store, doc.ID, 1, "far match", []float32{0, 1, 0})
	seedChunk(t, store, doc.ID, 2, "no embedding", nil)

	hits, err := store.VectorIndex().QueryNearest(ctx, versionID, []float32{0.9, 0.1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "close match", hits[0].Content)
	assert.Equal(t, 0, hits[0].ChunkIndex)
	assert.Equal(t, "Guide", hits[0].Title)
	assert.Equal(t, "guide.md", hits[0].Path)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestVectorIndex_SkipsMismatchedDimensions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, versionID := seedVersion(t, store)
	doc := seedDocument(t, store, versionID, "guide.md", "Guide", "content")

	seedChunk(t, store, doc.ID, 0, "three dims", []float32{1, 0, 0})
	seedChunk(t, store, doc.ID, 1, "two dims", []float32{1, 0})

	hits, err := store.VectorIndex().QueryNearest(ctx, versionID, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "three dims", hits[0].Content)
}

func TestVectorIndex_ScopedToVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	libraryID, versionID := seedVersion(t, store)

	other := &domain.LibraryVersion{
		ID:        uuid.NewString(),
		LibraryID: libraryID,
		Version:   "17.0.2",
		Status:    domain.VersionActive,
	}
	require.NoError(t, store.VersionStore().Save(ctx, other))

	inScope := seedDocument(t, store, versionID, "a.md", "A", "content")
	outOfScope := seedDocument(t, store, other.ID, "a.md", "A", "content")
	seedChunk(t, store, inScope.ID, 0, "in scope", []float32{1, 0})
	seedChunk(t, store, outOfScope.ID, 0, "out of scope", []float32{1, 0})

	hits, err := store.VectorIndex().QueryNearest(ctx, versionID, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "in scope", hits[0].Content)
}

func TestVectorIndex_RespectsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, versionID := seedVersion(t, store)
	doc := seedDocument(t, store, versionID, "guide.md", "Guide", "content")

	for i := 0; i < 5; i++ {
		seedChunk(t, store, doc.ID, i, "chunk", []float32{1, float32(i) * 0.1})
	}

	hits, err := store.VectorIndex().QueryNearest(ctx, versionID, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestVectorIndex_EmptyQuery(t *testing.T) {
	store := newTestStore(t)
	_, versionID := seedVersion(t, store)

	hits, err := store.VectorIndex().QueryNearest(context.Background(), versionID, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
