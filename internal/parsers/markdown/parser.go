// Package markdown parses Markdown documentation files.
package markdown

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

// Parser extracts titles and code blocks from Markdown via the goldmark
// AST. The document content is kept as the original markdown text, which
// reads well and indexes well.
type Parser struct {
	parser gparser.Parser
}

// New creates a new Markdown parser with GFM extensions.
func New() *Parser {
	return &Parser{
		parser: goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser(),
	}
}

// Supports reports whether path is a Markdown file.
func (p *Parser) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// DocType returns the document type for Markdown files.
func (p *Parser) DocType() string { return "markdown" }

// Parse extracts the first H1 as title and all fenced code blocks.
// When the document has no H1, the file name stem becomes the title.
func (p *Parser) Parse(content, path string) driven.ParsedDocument {
	source := []byte(content)
	root := p.parser.Parse(text.NewReader(source))

	var title string
	var blocks []driven.CodeBlock

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if title == "" && node.Level == 1 {
				title = strings.TrimSpace(nodeText(node, source))
			}
		case *ast.FencedCodeBlock:
			blocks = append(blocks, driven.CodeBlock{
				Language: string(node.Language(source)),
				Code:     blockText(node, source),
			})
		}
		return ast.WalkContinue, nil
	})

	if title == "" {
		title = titleFromFilename(path)
	}

	return driven.ParsedDocument{
		Title:      title,
		Content:    content,
		CodeBlocks: blocks,
		Metadata:   map[string]any{"format": "markdown"},
	}
}

// nodeText collects the plain text of a node's inline children.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// blockText reads the raw lines of a fenced code block.
func blockText(n *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// titleFromFilename turns "getting-started.md" into "getting started".
func titleFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
