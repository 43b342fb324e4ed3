package github

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/logger"
)

// Ensure ArchiveStrategy implements the interface.
var _ driven.FetchStrategy = (*ArchiveStrategy)(nil)

// maxArchiveFileSize caps individual files extracted from a tarball.
const maxArchiveFileSize = 1024 * 1024

// tagPattern matches version-like refs that can map to a release tag.
var tagPattern = regexp.MustCompile(`^v?\d+(\.\d+)*.*$`)

// ArchiveStrategy downloads the release tarball for a tagged version and
// extracts the documentation directory in one pass. One HTTP request per
// sync, no API quota spent.
type ArchiveStrategy struct {
	client  *http.Client
	baseURL string
}

// NewArchiveStrategy creates an archive strategy using the given HTTP client.
func NewArchiveStrategy(client *http.Client) *ArchiveStrategy {
	if client == nil {
		client = http.DefaultClient
	}
	return &ArchiveStrategy{
		client:  client,
		baseURL: "https://github.com",
	}
}

// Name returns the strategy name.
func (s *ArchiveStrategy) Name() string { return "archive" }

// Priority returns 1; the tarball download is always tried first.
func (s *ArchiveStrategy) Priority() int { return 1 }

// Supports reports whether ref looks like a version that can have a tag.
func (s *ArchiveStrategy) Supports(_, _, ref string) bool {
	return tagPattern.MatchString(ref)
}

// Fetch downloads and extracts the tarball for ref. It tries the
// v-prefixed tag first, then the bare version. A missing tag, an
// unreadable archive or an empty documentation directory all yield a nil
// result so the chain can fall through to the contents strategy.
func (s *ArchiveStrategy) Fetch(ctx context.Context, owner, repo, docsPath, ref string) (*driven.FetchResult, error) {
	for _, tag := range candidateTags(ref) {
		result, err := s.fetchTag(ctx, owner, repo, docsPath, tag)
		if err != nil {
			logger.Debug("Archive %s/%s@%s: %v", owner, repo, tag, err)
			continue
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, nil
}

// candidateTags returns the tag spellings to try for a version ref.
func candidateTags(ref string) []string {
	if strings.HasPrefix(ref, "v") {
		return []string{ref, strings.TrimPrefix(ref, "v")}
	}
	return []string{"v" + ref, ref}
}

// fetchTag downloads one tag's tarball and extracts the docs directory.
func (s *ArchiveStrategy) fetchTag(ctx context.Context, owner, repo, docsPath, tag string) (*driven.FetchResult, error) {
	url := fmt.Sprintf("%s/%s/%s/archive/refs/tags/%s.tar.gz", s.baseURL, owner, repo, tag)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// GitHub tarballs nest everything under "{repo}-{version}/".
	rootPrefix := repo + "-" + strings.TrimPrefix(tag, "v") + "/"
	contents, err := extractDocs(resp.Body, rootPrefix, docsPath)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, nil
	}

	result := &driven.FetchResult{
		Strategy: "archive",
		Contents: contents,
	}
	for filePath, content := range contents {
		result.Files = append(result.Files, driven.FileInfo{
			Name: path.Base(filePath),
			Path: filePath,
			Size: int64(len(content)),
			Kind: "file",
		})
	}
	return result, nil
}

// extractDocs streams the gzipped tarball and keeps supported files under
// the documentation directory. Returned paths are relative to the
// repository root.
func extractDocs(r io.Reader, rootPrefix, docsPath string) (map[string]string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer gz.Close()

	targetPrefix := rootPrefix
	if docsPath != "" {
		targetPrefix = rootPrefix + strings.Trim(docsPath, "/") + "/"
	}

	contents := make(map[string]string)
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if !strings.HasPrefix(header.Name, targetPrefix) {
			continue
		}
		if !isDocFile(header.Name) || header.Size > maxArchiveFileSize {
			continue
		}

		data, err := io.ReadAll(io.LimitReader(tr, maxArchiveFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", header.Name, err)
		}
		if int64(len(data)) > maxArchiveFileSize {
			continue
		}
		contents[strings.TrimPrefix(header.Name, rootPrefix)] = string(data)
	}
	return contents, nil
}
