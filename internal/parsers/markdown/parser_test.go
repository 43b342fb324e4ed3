package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Supports(t *testing.T) {
	p := New()

	assert.True(t, p.Supports("docs/intro.md"))
	assert.True(t, p.Supports("docs/INTRO.MD"))
	assert.True(t, p.Supports("notes.markdown"))
	assert.False(t, p.Supports("index.html"))
	assert.False(t, p.Supports("readme.txt"))
}

func TestParser_Parse_TitleFromHeading(t *testing.T) {
	p := New()

	doc := p.Parse("# Getting Started\n\nSome intro text.\n", "docs/getting-started.md")
	assert.Equal(t, "Getting Started", doc.Title)
	assert.Contains(t, doc.Content, "Some intro text.")
}

func TestParser_Parse_FirstH1Wins(t *testing.T) {
	p := New()

	doc := p.Parse("## Subheading\n\n# Real Title\n\n# Second Title\n", "docs/a.md")
	assert.Equal(t, "Real Title", doc.Title)
}

func TestParser_Parse_TitleFallsBackToFilename(t *testing.T) {
	p := New()

	doc := p.Parse("Just some text without headings.\n", "docs/getting-started.md")
	assert.Equal(t, "getting started", doc.Title)
}

func TestParser_Parse_CodeBlocks(t *testing.T) {
	p := New()

	content := "# API\n\n```go\nfmt.Println(\"hello\")\n```\n\nand\n\n```\nplain block\n```\n"
	doc := p.Parse(content, "docs/api.md")

	require.Len(t, doc.CodeBlocks, 2)
	assert.Equal(t, "go", doc.CodeBlocks[0].Language)
	assert.Equal(t, "fmt.Println(\"hello\")\n", doc.CodeBlocks[0].Code)
	assert.Empty(t, doc.CodeBlocks[1].Language)
	assert.Equal(t, "plain block\n", doc.CodeBlocks[1].Code)
}

func TestParser_Parse_EmptyContent(t *testing.T) {
	p := New()

	doc := p.Parse("", "docs/empty.md")
	assert.Equal(t, "empty", doc.Title)
	assert.Empty(t, doc.Content)
	assert.Empty(t, doc.CodeBlocks)
}

func TestParser_Parse_FormattedHeading(t *testing.T) {
	p := New()

	doc := p.Parse("# The `useState` Hook\n", "docs/hooks.md")
	assert.Equal(t, "The useState Hook", doc.Title)
}

func TestParser_DocType(t *testing.T) {
	assert.Equal(t, "markdown", New().DocType())
}
