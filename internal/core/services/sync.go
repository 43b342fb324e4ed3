package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/core/ports/driving"
	"github.com/custodia-labs/docmcp/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// recentRunLimit is how many historical runs a status query returns.
const recentRunLimit = 5

// SyncOrchestrator coordinates documentation synchronisation runs:
// fetch, parse, chunk, embed, store.
type SyncOrchestrator struct {
	libraries   driving.LibraryService
	fetcher     driven.ContentFetcher
	localSource driven.LocalSource
	parsers     []driven.DocumentParser
	chunker     driven.DocumentChunker
	embedder    driven.EmbeddingService
	docStore    driven.DocumentStore
	syncStore   driven.SyncHistoryStore
}

// NewSyncOrchestrator creates a new sync orchestrator.
// The embedder is optional - when nil, chunks are stored without embeddings
// and semantic search stays empty for the synced version.
func NewSyncOrchestrator(
	libraries driving.LibraryService,
	fetcher driven.ContentFetcher,
	localSource driven.LocalSource,
	parsers []driven.DocumentParser,
	chunker driven.DocumentChunker,
	embedder driven.EmbeddingService,
	docStore driven.DocumentStore,
	syncStore driven.SyncHistoryStore,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		libraries:   libraries,
		fetcher:     fetcher,
		localSource: localSource,
		parsers:     parsers,
		chunker:     chunker,
		embedder:    embedder,
		docStore:    docStore,
		syncStore:   syncStore,
	}
}

// Sync fetches and indexes the documentation of the named library version.
func (o *SyncOrchestrator) Sync(ctx context.Context, libraryName, version string) (*domain.SyncHistory, error) {
	resolved, err := o.libraries.Resolve(ctx, libraryName, version)
	if err != nil {
		return nil, err
	}

	owner, repo := resolved.Library.GitHubRepo()
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: library %q has no GitHub source URL", domain.ErrInvalidInput, libraryName)
	}

	return o.runSync(ctx, resolved, func(ctx context.Context) (*driven.FetchResult, error) {
		return o.fetcher.Fetch(ctx, owner, repo, resolved.Version.DocsPath, resolved.Version.Version)
	})
}

// SyncFromLocal ingests documentation from a local directory.
func (o *SyncOrchestrator) SyncFromLocal(ctx context.Context, libraryName, version, dir string) (*domain.SyncHistory, error) {
	if o.localSource == nil {
		return nil, fmt.Errorf("%w: local source not configured", domain.ErrInvalidInput)
	}

	resolved, err := o.libraries.Resolve(ctx, libraryName, version)
	if err != nil {
		return nil, err
	}

	return o.runSync(ctx, resolved, func(ctx context.Context) (*driven.FetchResult, error) {
		return o.localSource.Read(ctx, dir)
	})
}

// Status returns the live and historical sync view for a version.
func (o *SyncOrchestrator) Status(ctx context.Context, libraryName, version string) (*domain.SyncOverview, error) {
	resolved, err := o.libraries.Resolve(ctx, libraryName, version)
	if err != nil {
		return nil, err
	}

	running, err := o.syncStore.HasRunning(ctx, resolved.Version.ID)
	if err != nil {
		return nil, fmt.Errorf("check running sync: %w", err)
	}
	latest, err := o.syncStore.Latest(ctx, resolved.Version.ID)
	if err != nil {
		return nil, fmt.Errorf("get latest sync: %w", err)
	}
	recent, err := o.syncStore.ListRecent(ctx, resolved.Version.ID, recentRunLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent syncs: %w", err)
	}

	return &domain.SyncOverview{
		IsRunning:     running,
		LatestRun:     latest,
		RecentHistory: recent,
	}, nil
}

// fetchFunc retrieves the documentation files for one run.
type fetchFunc func(ctx context.Context) (*driven.FetchResult, error)

// runSync executes the shared run lifecycle: start the history row, fetch,
// ingest, and record the terminal state. Per-document failures are counted
// and the run continues; a failed fetch fails the whole run.
func (o *SyncOrchestrator) runSync(ctx context.Context, resolved *domain.ResolvedLibrary, fetch fetchFunc) (*domain.SyncHistory, error) {
	run, err := o.syncStore.StartRun(ctx, resolved.Version.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			return nil, err
		}
		return nil, fmt.Errorf("start sync run: %w", err)
	}

	logger.Section("Sync")
	logger.Info("Syncing %s@%s (run %s)", resolved.Library.Name, resolved.ResolvedVersion, run.ID)

	result, err := fetch(ctx)
	if err != nil {
		msg := fmt.Sprintf("fetch failed: %v", err)
		if failErr := o.syncStore.FailRun(ctx, run.ID, 0, 0, msg); failErr != nil {
			logger.Warn("Failed to record run failure: %v", failErr)
		}
		return nil, fmt.Errorf("fetch %s@%s: %w", resolved.Library.Name, resolved.ResolvedVersion, err)
	}
	logger.Info("Fetched %d files via %s", len(result.Files), result.Strategy)

	docs, chunks, errCount := o.ingest(ctx, resolved.Version.ID, result)

	if err := ctx.Err(); err != nil {
		msg := fmt.Sprintf("cancelled: %v", err)
		if failErr := o.syncStore.FailRun(ctx, run.ID, docs, chunks, msg); failErr != nil {
			logger.Warn("Failed to record run failure: %v", failErr)
		}
		return nil, err
	}

	if err := o.syncStore.CompleteRun(ctx, run.ID, docs, chunks); err != nil {
		return nil, fmt.Errorf("complete sync run: %w", err)
	}
	logger.Info("Sync complete: %d documents, %d chunks, %d errors", docs, chunks, errCount)

	now := time.Now()
	run.Status = domain.SyncSuccess
	run.CompletedAt = &now
	run.DocumentsProcessed = docs
	run.ChunksCreated = chunks
	if errCount > 0 {
		run.Metadata = map[string]any{"errorCount": errCount}
	}
	return run, nil
}

// ingest processes every fetched file, returning counts of documents
// processed, chunks created and per-document errors.
func (o *SyncOrchestrator) ingest(ctx context.Context, versionID string, result *driven.FetchResult) (docs, chunks, errCount int) {
	for _, file := range result.Files {
		if ctx.Err() != nil {
			return docs, chunks, errCount
		}
		if !file.IsFile() {
			continue
		}
		parser := o.findParser(file.Path)
		if parser == nil {
			logger.Debug("Skipping unsupported file %s", file.Path)
			continue
		}

		created, err := o.processFile(ctx, versionID, file.Path, parser, result)
		if err != nil {
			errCount++
			logger.Debug("Failed to process %s: %v", file.Path, err)
			continue
		}
		docs++
		chunks += created
	}
	return docs, chunks, errCount
}

// processFile runs the per-document pipeline and returns the number of
// chunks created. Unchanged documents are detected by content hash and
// skipped without touching chunks or code examples.
func (o *SyncOrchestrator) processFile(
	ctx context.Context,
	versionID, path string,
	parser driven.DocumentParser,
	result *driven.FetchResult,
) (int, error) {
	content, err := result.Content(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("load content: %w", err)
	}

	parsed := parser.Parse(content, path)
	digest := sha256.Sum256([]byte(parsed.Content))
	hash := hex.EncodeToString(digest[:])

	existing, err := o.docStore.FindByVersionAndPath(ctx, versionID, path)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("find document: %w", err)
	}
	if existing != nil && existing.ContentHash == hash {
		logger.Debug("Unchanged: %s", path)
		return 0, nil
	}

	now := time.Now()
	doc := &domain.Document{
		ID:          uuid.NewString(),
		VersionID:   versionID,
		Title:       parsed.Title,
		Path:        path,
		Content:     parsed.Content,
		ContentHash: hash,
		DocType:     parser.DocType(),
		Metadata:    parsed.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := o.docStore.UpsertDocument(ctx, doc); err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}

	// Content changed, so derived data is rebuilt from scratch.
	if err := o.docStore.DeleteChunks(ctx, doc.ID); err != nil {
		return 0, fmt.Errorf("delete chunks: %w", err)
	}
	if err := o.docStore.DeleteCodeExamples(ctx, doc.ID); err != nil {
		return 0, fmt.Errorf("delete code examples: %w", err)
	}

	docChunks, err := o.chunker.Chunk(ctx, doc)
	if err != nil {
		return 0, fmt.Errorf("chunk document: %w", err)
	}
	o.embedChunks(ctx, path, docChunks)
	if err := o.docStore.SaveChunks(ctx, docChunks); err != nil {
		return 0, fmt.Errorf("save chunks: %w", err)
	}

	if err := o.saveCodeExamples(ctx, doc.ID, parsed.CodeBlocks); err != nil {
		return 0, fmt.Errorf("save code examples: %w", err)
	}

	return len(docChunks), nil
}

// embedChunks populates chunk embeddings with one batch call per document.
// An embedding failure leaves all embeddings nil; the chunks still serve
// full-text search.
func (o *SyncOrchestrator) embedChunks(ctx context.Context, path string, chunks []domain.DocumentChunk) {
	if o.embedder == nil || len(chunks) == 0 {
		return
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	embeddings, err := o.embedder.EmbedBatch(ctx, texts)
	if err != nil || len(embeddings) != len(chunks) {
		logger.Warn("Embedding failed for %s, storing chunks without vectors: %v", path, err)
		return
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}
}

// saveCodeExamples stores extracted code blocks for a document.
func (o *SyncOrchestrator) saveCodeExamples(ctx context.Context, documentID string, blocks []driven.CodeBlock) error {
	if len(blocks) == 0 {
		return nil
	}

	now := time.Now()
	examples := make([]domain.CodeExample, 0, len(blocks))
	for _, block := range blocks {
		examples = append(examples, domain.CodeExample{
			ID:         uuid.NewString(),
			DocumentID: documentID,
			Language:   block.Language,
			Code:       block.Code,
			CreatedAt:  now,
		})
	}
	return o.docStore.SaveCodeExamples(ctx, examples)
}

// findParser returns the first parser supporting path, nil when none does.
func (o *SyncOrchestrator) findParser(path string) driven.DocumentParser {
	for _, p := range o.parsers {
		if p.Supports(path) {
			return p
		}
	}
	return nil
}
