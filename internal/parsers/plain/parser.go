// Package plain parses plain-text documentation formats that need no
// structural extraction: .txt, .rst, .adoc, .asciidoc.
package plain

import (
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

// Parser stores plain-text content as-is, using the first non-empty line
// as the title.
type Parser struct{}

// New creates a new plain-text parser.
func New() *Parser {
	return &Parser{}
}

// Supports reports whether path is a plain-text documentation file.
func (p *Parser) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".rst", ".adoc", ".asciidoc":
		return true
	}
	return false
}

// DocType returns the document type for plain-text files.
func (p *Parser) DocType() string { return "text" }

// Parse keeps the content untouched and derives a title from the first
// non-empty line, falling back to the file name stem.
func (p *Parser) Parse(content, path string) driven.ParsedDocument {
	var title string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "=# "))
		if line != "" {
			title = line
			break
		}
	}
	if title == "" {
		name := filepath.Base(path)
		title = strings.TrimSuffix(name, filepath.Ext(name))
	}

	return driven.ParsedDocument{
		Title:    title,
		Content:  content,
		Metadata: map[string]any{"format": "text"},
	}
}
