// Package local reads documentation files from a local directory, used
// when syncing docs that are not published to a remote repository.
package local

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.LocalSource = (*Source)(nil)

// maxFileSize caps individual files read from disk.
const maxFileSize = 1024 * 1024

// supportedExtensions lists the documentation file types worth ingesting.
var supportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".adoc":     true,
	".asciidoc": true,
	".html":     true,
	".htm":      true,
	".txt":      true,
	".rst":      true,
}

// Source reads documentation trees from the local filesystem.
type Source struct{}

// NewSource creates a local documentation source.
func NewSource() *Source {
	return &Source{}
}

// Read walks dir recursively and preloads every supported file.
// Paths in the result are relative to dir with forward slashes.
func (s *Source) Read(ctx context.Context, dir string) (*driven.FetchResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	result := &driven.FetchResult{
		Strategy: "local",
		Contents: make(map[string]string),
	}

	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			// Hidden directories like .git hold nothing worth indexing.
			if entry.Name() != "." && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		fileInfo, err := entry.Info()
		if err != nil || fileInfo.Size() > maxFileSize {
			logger.Debug("Skipping %s: too large or unreadable", path)
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Debug("Skipping %s: %v", path, err)
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		result.Contents[rel] = string(data)
		result.Files = append(result.Files, driven.FileInfo{
			Name: entry.Name(),
			Path: rel,
			Size: fileInfo.Size(),
			Kind: "file",
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	return result, nil
}
