package driven

import "context"

// FileInfo describes one file listed by a fetch strategy.
type FileInfo struct {
	// Name is the base file name.
	Name string

	// Path is the path relative to the repository root.
	Path string

	// Size is the file size in bytes, when known.
	Size int64

	// Kind is the entry kind (e.g. "file").
	Kind string
}

// IsFile reports whether the entry is a regular file.
func (f FileInfo) IsFile() bool {
	return f.Kind == "file"
}

// ContentLoader lazily retrieves the content of a listed file.
type ContentLoader func(ctx context.Context, path string) (string, error)

// FetchResult is the outcome of a successful fetch: an ordered file listing
// plus content access. Eager strategies preload Contents; lazy strategies
// only list files and supply a Loader for follow-up reads.
type FetchResult struct {
	// Files lists the fetched files in source order.
	Files []FileInfo

	// Strategy names the strategy that produced this result.
	Strategy string

	// Contents maps file path to preloaded content. May be nil.
	Contents map[string]string

	// Loader retrieves content for files missing from Contents. May be nil.
	Loader ContentLoader
}

// Content returns the content for path, preferring preloaded content and
// falling back to the loader.
func (r *FetchResult) Content(ctx context.Context, path string) (string, error) {
	if content, ok := r.Contents[path]; ok {
		return content, nil
	}
	if r.Loader != nil {
		return r.Loader(ctx, path)
	}
	return "", &NoContentError{Path: path}
}

// NoContentError indicates a fetch result has neither preloaded content nor
// a loader for the requested path.
type NoContentError struct {
	Path string
}

func (e *NoContentError) Error() string {
	return "no content available for " + e.Path
}

// FetchStrategy is one pluggable way of retrieving documentation files.
// Strategies are ordered ascending by Priority; Supports is a cheap
// predicate evaluated before any network call.
type FetchStrategy interface {
	// Name returns the strategy name for logging.
	Name() string

	// Priority returns the ordering priority (lower runs first).
	Priority() int

	// Supports reports whether the strategy can handle the given reference.
	// Must not perform network I/O.
	Supports(owner, repo, ref string) bool

	// Fetch retrieves the file listing under path at ref.
	// A nil result with nil error means "no result" so the chain can try
	// the next strategy; strategies degrade to that instead of raising
	// transport or decoding errors.
	Fetch(ctx context.Context, owner, repo, path, ref string) (*FetchResult, error)
}

// LocalSource reads documentation files from a local directory instead of a
// remote repository.
type LocalSource interface {
	// Read lists supported files under dir (recursively) with preloaded
	// contents. Paths in the result are relative to dir.
	Read(ctx context.Context, dir string) (*FetchResult, error)
}

// ContentFetcher resolves a fetch request through an ordered strategy chain.
type ContentFetcher interface {
	// Fetch tries each supporting strategy in priority order and returns
	// the first non-empty result. Returns domain.ErrFetchFailed when all
	// strategies are exhausted.
	Fetch(ctx context.Context, owner, repo, path, ref string) (*FetchResult, error)
}
