package github

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/logger"
)

// Ensure Chain implements the interface.
var _ driven.ContentFetcher = (*Chain)(nil)

// Chain tries fetch strategies in priority order and returns the first
// non-empty result.
type Chain struct {
	strategies []driven.FetchStrategy
}

// NewChain creates a chain from the given strategies, ordered by priority.
func NewChain(strategies ...driven.FetchStrategy) *Chain {
	sorted := append([]driven.FetchStrategy(nil), strategies...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Chain{strategies: sorted}
}

// Fetch resolves the request through the strategy chain.
// Returns domain.ErrFetchFailed when every strategy is exhausted.
func (c *Chain) Fetch(ctx context.Context, owner, repo, path, ref string) (*driven.FetchResult, error) {
	for _, strategy := range c.strategies {
		if !strategy.Supports(owner, repo, ref) {
			logger.Debug("Strategy %s does not support %s/%s@%s", strategy.Name(), owner, repo, ref)
			continue
		}

		result, err := strategy.Fetch(ctx, owner, repo, path, ref)
		if err != nil {
			logger.Debug("Strategy %s failed for %s/%s@%s: %v", strategy.Name(), owner, repo, ref, err)
			continue
		}
		if result == nil || len(result.Files) == 0 {
			logger.Debug("Strategy %s returned no files for %s/%s@%s", strategy.Name(), owner, repo, ref)
			continue
		}

		logger.Info("Strategy %s fetched %d files from %s/%s@%s",
			strategy.Name(), len(result.Files), owner, repo, ref)
		return result, nil
	}

	return nil, fmt.Errorf("%w: all strategies exhausted for %s/%s@%s", domain.ErrFetchFailed, owner, repo, ref)
}

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

// isDocFile reports whether path has a supported documentation extension.
func isDocFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}
