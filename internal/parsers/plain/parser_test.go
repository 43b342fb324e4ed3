package plain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParser_Supports(t *testing.T) {
	p := New()

	assert.True(t, p.Supports("notes.txt"))
	assert.True(t, p.Supports("index.rst"))
	assert.True(t, p.Supports("guide.adoc"))
	assert.True(t, p.Supports("guide.asciidoc"))
	assert.False(t, p.Supports("intro.md"))
}

func TestParser_Parse_TitleFromFirstLine(t *testing.T) {
	p := New()

	doc := p.Parse("Installation Guide\n\nRun the installer.\n", "docs/install.txt")
	assert.Equal(t, "Installation Guide", doc.Title)
	assert.Contains(t, doc.Content, "Run the installer.")
}

func TestParser_Parse_StripsAdocHeadingMarkers(t *testing.T) {
	p := New()

	doc := p.Parse("= Installation\n\nSteps follow.\n", "docs/install.adoc")
	assert.Equal(t, "Installation", doc.Title)
}

func TestParser_Parse_EmptyFallsBackToFilename(t *testing.T) {
	p := New()

	doc := p.Parse("\n\n", "docs/notes.txt")
	assert.Equal(t, "notes", doc.Title)
}
