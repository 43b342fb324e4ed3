package github

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// stubStrategy implements driven.FetchStrategy for chain tests.
type stubStrategy struct {
	name     string
	priority int
	supports bool
	result   *driven.FetchResult
	err      error
	calls    int
}

func (s *stubStrategy) Name() string                { return s.name }
func (s *stubStrategy) Priority() int               { return s.priority }
func (s *stubStrategy) Supports(_, _, _ string) bool { return s.supports }

func (s *stubStrategy) Fetch(_ context.Context, _, _, _, _ string) (*driven.FetchResult, error) {
	s.calls++
	return s.result, s.err
}

func resultWithFiles(strategy string) *driven.FetchResult {
	return &driven.FetchResult{
		Strategy: strategy,
		Files:    []driven.FileInfo{{Name: "a.md", Path: "docs/a.md", Kind: "file"}},
		Contents: map[string]string{"docs/a.md": "# A"},
	}
}

func TestChain_FirstStrategyWins(t *testing.T) {
	first := &stubStrategy{name: "first", priority: 1, supports: true, result: resultWithFiles("first")}
	second := &stubStrategy{name: "second", priority: 2, supports: true, result: resultWithFiles("second")}

	chain := NewChain(first, second)

	result, err := chain.Fetch(context.Background(), "o", "r", "docs", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "first", result.Strategy)
	assert.Equal(t, 0, second.calls)
}

func TestChain_OrdersByPriority(t *testing.T) {
	low := &stubStrategy{name: "low", priority: 5, supports: true, result: resultWithFiles("low")}
	high := &stubStrategy{name: "high", priority: 1, supports: true, result: resultWithFiles("high")}

	// Registration order does not matter.
	chain := NewChain(low, high)

	result, err := chain.Fetch(context.Background(), "o", "r", "docs", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "high", result.Strategy)
}

func TestChain_SkipsUnsupported(t *testing.T) {
	unsupported := &stubStrategy{name: "archive", priority: 1, supports: false}
	fallback := &stubStrategy{name: "contents", priority: 2, supports: true, result: resultWithFiles("contents")}

	chain := NewChain(unsupported, fallback)

	result, err := chain.Fetch(context.Background(), "o", "r", "docs", "main")
	require.NoError(t, err)
	assert.Equal(t, "contents", result.Strategy)
	assert.Equal(t, 0, unsupported.calls)
}

func TestChain_SkipsEmptyAndErrorResults(t *testing.T) {
	empty := &stubStrategy{name: "empty", priority: 1, supports: true, result: nil}
	failing := &stubStrategy{name: "failing", priority: 2, supports: true, err: errors.New("boom")}
	working := &stubStrategy{name: "working", priority: 3, supports: true, result: resultWithFiles("working")}

	chain := NewChain(empty, failing, working)

	result, err := chain.Fetch(context.Background(), "o", "r", "docs", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "working", result.Strategy)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, failing.calls)
}

func TestChain_Exhausted(t *testing.T) {
	empty := &stubStrategy{name: "empty", priority: 1, supports: true}

	chain := NewChain(empty)

	_, err := chain.Fetch(context.Background(), "o", "r", "docs", "1.0.0")
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestChain_NoStrategies(t *testing.T) {
	chain := NewChain()

	_, err := chain.Fetch(context.Background(), "o", "r", "docs", "1.0.0")
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestIsDocFile(t *testing.T) {
	assert.True(t, isDocFile("docs/intro.md"))
	assert.True(t, isDocFile("docs/INTRO.MD"))
	assert.True(t, isDocFile("guide.adoc"))
	assert.True(t, isDocFile("index.html"))
	assert.False(t, isDocFile("logo.png"))
	assert.False(t, isDocFile("main.go"))
	assert.False(t, isDocFile("Makefile"))
}
