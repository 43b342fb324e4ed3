package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/logger"
)

// Ensure ContentsStrategy implements the interface.
var _ driven.FetchStrategy = (*ContentsStrategy)(nil)

// contentsRate throttles contents API calls to stay well inside the
// authenticated quota (5000/hour).
const contentsRate = 1.2

// ContentsStrategy lists documentation files through the GitHub contents
// API. It works for any ref (branches included) but spends one API request
// per directory plus one per file read, so it runs after the archive
// strategy. File contents are loaded lazily.
type ContentsStrategy struct {
	client  *gh.Client
	limiter *rate.Limiter
}

// NewContentsStrategy creates a contents strategy around a GitHub client.
func NewContentsStrategy(client *gh.Client) *ContentsStrategy {
	return &ContentsStrategy{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(contentsRate), 1),
	}
}

// Name returns the strategy name.
func (s *ContentsStrategy) Name() string { return "contents" }

// Priority returns 2; the contents API is the fallback.
func (s *ContentsStrategy) Priority() int { return 2 }

// Supports always returns true; the contents API handles any ref.
func (s *ContentsStrategy) Supports(_, _, _ string) bool { return true }

// Fetch lists supported files under path at ref. Listing failures yield a
// nil result so the chain reports exhaustion instead of a transport error.
func (s *ContentsStrategy) Fetch(ctx context.Context, owner, repo, path, ref string) (*driven.FetchResult, error) {
	files, err := s.listDir(ctx, owner, repo, path, ref)
	if err != nil {
		logger.Debug("Contents listing %s/%s/%s@%s: %v", owner, repo, path, ref, err)
		return nil, nil
	}
	if len(files) == 0 {
		return nil, nil
	}

	return &driven.FetchResult{
		Files:    files,
		Strategy: "contents",
		Loader: func(ctx context.Context, filePath string) (string, error) {
			return s.readFile(ctx, owner, repo, filePath, ref)
		},
	}, nil
}

// listDir recursively lists supported files under dir.
func (s *ContentsStrategy) listDir(ctx context.Context, owner, repo, dir, ref string) ([]driven.FileInfo, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	_, entries, _, err := s.client.Repositories.GetContents(ctx, owner, repo, dir, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var files []driven.FileInfo
	for _, entry := range entries {
		switch entry.GetType() {
		case "dir":
			sub, err := s.listDir(ctx, owner, repo, entry.GetPath(), ref)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		case "file":
			if !isDocFile(entry.GetPath()) {
				continue
			}
			files = append(files, driven.FileInfo{
				Name: entry.GetName(),
				Path: entry.GetPath(),
				Size: int64(entry.GetSize()),
				Kind: "file",
			})
		}
	}
	return files, nil
}

// readFile fetches and decodes one file's content.
func (s *ContentsStrategy) readFile(ctx context.Context, owner, repo, path, ref string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	file, _, _, err := s.client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", path, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s is not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return content, nil
}
