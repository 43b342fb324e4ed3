package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// --- In-memory fakes shared by the service tests ---

// fakeLibraryStore implements driven.LibraryStore.
type fakeLibraryStore struct {
	mu   stdsync.Mutex
	libs map[string]domain.Library // by ID
}

func newFakeLibraryStore() *fakeLibraryStore {
	return &fakeLibraryStore{libs: make(map[string]domain.Library)}
}

func (s *fakeLibraryStore) Save(_ context.Context, lib *domain.Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.libs {
		if existing.Name == lib.Name && id != lib.ID {
			return domain.ErrAlreadyExists
		}
	}
	s.libs[lib.ID] = *lib
	return nil
}

func (s *fakeLibraryStore) GetByID(_ context.Context, id string) (*domain.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lib, ok := s.libs[id]; ok {
		return &lib, nil
	}
	return nil, domain.ErrNotFound
}

func (s *fakeLibraryStore) GetByName(_ context.Context, name string) (*domain.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lib := range s.libs {
		if lib.Name == name {
			l := lib
			return &l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeLibraryStore) List(_ context.Context, category string) ([]domain.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Library
	for _, lib := range s.libs {
		if category == "" || lib.Category == category {
			out = append(out, lib)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeVersionStore implements driven.VersionStore.
type fakeVersionStore struct {
	mu       stdsync.Mutex
	versions map[string]domain.LibraryVersion // by ID
}

func newFakeVersionStore() *fakeVersionStore {
	return &fakeVersionStore{versions: make(map[string]domain.LibraryVersion)}
}

func (s *fakeVersionStore) Save(_ context.Context, v *domain.LibraryVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.versions {
		if existing.LibraryID == v.LibraryID && existing.Version == v.Version && id != v.ID {
			return domain.ErrAlreadyExists
		}
	}
	s.versions[v.ID] = *v
	return nil
}

func (s *fakeVersionStore) GetByID(_ context.Context, id string) (*domain.LibraryVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.versions[id]; ok {
		return &v, nil
	}
	return nil, domain.ErrNotFound
}

func (s *fakeVersionStore) GetByLibraryAndVersion(_ context.Context, libraryID, version string) (*domain.LibraryVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.versions {
		if v.LibraryID == libraryID && v.Version == version {
			ver := v
			return &ver, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeVersionStore) GetLatest(_ context.Context, libraryID string) (*domain.LibraryVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.versions {
		if v.LibraryID == libraryID && v.IsLatest {
			ver := v
			return &ver, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeVersionStore) ListByLibrary(_ context.Context, libraryID string) ([]domain.LibraryVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.LibraryVersion
	for _, v := range s.versions {
		if v.LibraryID == libraryID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakeDocumentStore implements driven.DocumentStore.
type fakeDocumentStore struct {
	mu       stdsync.Mutex
	docs     map[string]domain.Document // by ID
	chunks   map[string][]domain.DocumentChunk
	examples map[string][]domain.CodeExample
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{
		docs:     make(map[string]domain.Document),
		chunks:   make(map[string][]domain.DocumentChunk),
		examples: make(map[string][]domain.CodeExample),
	}
}

func (s *fakeDocumentStore) UpsertDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.docs {
		if existing.VersionID == doc.VersionID && existing.Path == doc.Path {
			doc.ID = existing.ID
			doc.CreatedAt = existing.CreatedAt
			break
		}
	}
	s.docs[doc.ID] = *doc
	return nil
}

func (s *fakeDocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[id]; ok {
		return &doc, nil
	}
	return nil, domain.ErrNotFound
}

func (s *fakeDocumentStore) FindByVersionAndPath(_ context.Context, versionID, path string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.VersionID == versionID && doc.Path == path {
			d := doc
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeDocumentStore) ListDocuments(_ context.Context, versionID string) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Document
	for _, doc := range s.docs {
		if doc.VersionID == versionID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *fakeDocumentStore) SaveChunks(_ context.Context, chunks []domain.DocumentChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		s.chunks[c.DocumentID] = append(s.chunks[c.DocumentID], c)
	}
	return nil
}

func (s *fakeDocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.DocumentChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.DocumentChunk(nil), s.chunks[documentID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkIndex < out[j].ChunkIndex })
	return out, nil
}

func (s *fakeDocumentStore) DeleteChunks(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, documentID)
	return nil
}

func (s *fakeDocumentStore) SaveCodeExamples(_ context.Context, examples []domain.CodeExample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range examples {
		s.examples[e.DocumentID] = append(s.examples[e.DocumentID], e)
	}
	return nil
}

func (s *fakeDocumentStore) ListCodeExamples(_ context.Context, documentID, language string) ([]domain.CodeExample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CodeExample
	for _, e := range s.examples[documentID] {
		if language == "" || e.Language == language {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeDocumentStore) DeleteCodeExamples(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.examples, documentID)
	return nil
}

// fakeSyncStore implements driven.SyncHistoryStore.
type fakeSyncStore struct {
	mu   stdsync.Mutex
	runs []domain.SyncHistory
}

func newFakeSyncStore() *fakeSyncStore {
	return &fakeSyncStore{}
}

func (s *fakeSyncStore) StartRun(_ context.Context, versionID string) (*domain.SyncHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, run := range s.runs {
		if run.VersionID == versionID && run.Status == domain.SyncRunning {
			return nil, domain.ErrSyncInProgress
		}
	}
	run := domain.SyncHistory{
		ID:        uuid.NewString(),
		VersionID: versionID,
		Status:    domain.SyncRunning,
		StartedAt: time.Now(),
	}
	s.runs = append(s.runs, run)
	return &run, nil
}

func (s *fakeSyncStore) CompleteRun(_ context.Context, id string, docs, chunks int) error {
	return s.finish(id, domain.SyncSuccess, docs, chunks, "")
}

func (s *fakeSyncStore) FailRun(_ context.Context, id string, docs, chunks int, msg string) error {
	return s.finish(id, domain.SyncFailed, docs, chunks, msg)
}

func (s *fakeSyncStore) finish(id string, status domain.SyncStatus, docs, chunks int, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.runs {
		if s.runs[i].ID == id {
			now := time.Now()
			s.runs[i].Status = status
			s.runs[i].CompletedAt = &now
			s.runs[i].DocumentsProcessed = docs
			s.runs[i].ChunksCreated = chunks
			s.runs[i].ErrorMessage = msg
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *fakeSyncStore) HasRunning(_ context.Context, versionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, run := range s.runs {
		if run.VersionID == versionID && run.Status == domain.SyncRunning {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeSyncStore) Latest(_ context.Context, versionID string) (*domain.SyncHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.SyncHistory
	for i := range s.runs {
		if s.runs[i].VersionID != versionID {
			continue
		}
		if latest == nil || s.runs[i].StartedAt.After(latest.StartedAt) {
			latest = &s.runs[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	run := *latest
	return &run, nil
}

func (s *fakeSyncStore) ListRecent(_ context.Context, versionID string, limit int) ([]domain.SyncHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.SyncHistory
	for _, run := range s.runs {
		if run.VersionID == versionID {
			out = append(out, run)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeFetcher implements driven.ContentFetcher.
type fakeFetcher struct {
	result *driven.FetchResult
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(_ context.Context, _, _, _, _ string) (*driven.FetchResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// preloadedResult builds an eager fetch result from path/content pairs.
func preloadedResult(contents map[string]string) *driven.FetchResult {
	result := &driven.FetchResult{
		Strategy: "fake",
		Contents: contents,
	}
	paths := make([]string, 0, len(contents))
	for path := range contents {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		result.Files = append(result.Files, driven.FileInfo{
			Name: path[strings.LastIndex(path, "/")+1:],
			Path: path,
			Size: int64(len(contents[path])),
			Kind: "file",
		})
	}
	return result
}

// fakeParser implements driven.DocumentParser for markdown-ish files.
type fakeParser struct{}

func (p *fakeParser) Supports(path string) bool {
	return strings.HasSuffix(path, ".md")
}

func (p *fakeParser) Parse(content, path string) driven.ParsedDocument {
	title := path
	var blocks []driven.CodeBlock
	if strings.Contains(content, "```go") {
		blocks = append(blocks, driven.CodeBlock{Language: "go", Code: "fmt.Println(\"hi\")"})
	}
	return driven.ParsedDocument{
		Title:      title,
		Content:    content,
		CodeBlocks: blocks,
	}
}

func (p *fakeParser) DocType() string { return "markdown" }

// fakeChunker implements driven.DocumentChunker producing one chunk.
type fakeChunker struct {
	err error
}

func (c *fakeChunker) Chunk(_ context.Context, doc *domain.Document) ([]domain.DocumentChunk, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []domain.DocumentChunk{{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		ChunkIndex: 0,
		Content:    doc.Content,
		TokenCount: len(doc.Content) / 4,
		CreatedAt:  time.Now(),
	}}, nil
}

// fakeEmbedder implements driven.EmbeddingService.
type fakeEmbedder struct {
	err        error
	batchCalls int
}

func (e *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (e *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (e *fakeEmbedder) Dimensions() int              { return 3 }
func (e *fakeEmbedder) ModelName() string            { return "fake" }
func (e *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (e *fakeEmbedder) Close() error                 { return nil }

// fakeLexicalIndex implements driven.LexicalIndex.
type fakeLexicalIndex struct {
	hits []driven.LexicalHit
	err  error
}

func (l *fakeLexicalIndex) Search(_ context.Context, _, _ string, limit int) ([]driven.LexicalHit, error) {
	if l.err != nil {
		return nil, l.err
	}
	if len(l.hits) > limit {
		return l.hits[:limit], nil
	}
	return l.hits, nil
}

// fakeVectorIndex implements driven.VectorIndex.
type fakeVectorIndex struct {
	hits []driven.VectorHit
	err  error
}

func (v *fakeVectorIndex) QueryNearest(_ context.Context, _ string, _ []float32, limit int) ([]driven.VectorHit, error) {
	if v.err != nil {
		return nil, v.err
	}
	if len(v.hits) > limit {
		return v.hits[:limit], nil
	}
	return v.hits, nil
}

// --- Test scenario helpers ---

var errFakeFetch = errors.New("fake fetch error")

// seedLibrary registers a library with one latest version and returns the
// library service plus the stores for further assertions.
func seedLibrary(t interface{ Fatalf(string, ...any) }) (*LibraryService, *fakeLibraryStore, *fakeVersionStore) {
	libStore := newFakeLibraryStore()
	versionStore := newFakeVersionStore()
	svc := NewLibraryService(libStore, versionStore)

	lib, err := svc.CreateLibrary(context.Background(), domain.Library{
		Name:      "react",
		SourceURL: "https://github.com/facebook/react",
	})
	if err != nil {
		t.Fatalf("seed library: %v", err)
	}
	_, err = svc.CreateVersion(context.Background(), lib.Name, domain.LibraryVersion{
		Version:  "18.2.0",
		IsLatest: true,
		DocsPath: "docs",
	})
	if err != nil {
		t.Fatalf("seed version: %v", err)
	}
	return svc, libStore, versionStore
}
