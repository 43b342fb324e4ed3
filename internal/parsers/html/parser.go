// Package html parses HTML documentation files.
package html

import (
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

// Parser extracts titles and code blocks from HTML with goquery and
// converts the body to markdown for storage, so HTML and Markdown sources
// index and read the same way.
type Parser struct {
	converter *md.Converter
}

// New creates a new HTML parser.
func New() *Parser {
	return &Parser{
		converter: md.NewConverter("", true, nil),
	}
}

// Supports reports whether path is an HTML file.
func (p *Parser) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// DocType returns the document type for HTML files.
func (p *Parser) DocType() string { return "html" }

// Parse extracts the title from <title> or the first <h1>, collects
// <pre><code> blocks, and converts the cleaned body to markdown.
// Malformed HTML degrades to stripped text instead of failing.
func (p *Parser) Parse(content, path string) driven.ParsedDocument {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return driven.ParsedDocument{
			Title:    titleFromFilename(path),
			Content:  content,
			Metadata: map[string]any{"format": "html"},
		}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = titleFromFilename(path)
	}

	blocks := extractCodeBlocks(doc)

	// Navigation chrome contributes nothing to searchable content.
	doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

	text, err := p.converter.ConvertString(content)
	if err != nil || strings.TrimSpace(text) == "" {
		text = strings.TrimSpace(doc.Text())
	}

	return driven.ParsedDocument{
		Title:      title,
		Content:    text,
		CodeBlocks: blocks,
		Metadata:   map[string]any{"format": "html"},
	}
}

// extractCodeBlocks collects <pre><code> contents with their declared
// language, read from class names like "language-go" or "lang-go".
func extractCodeBlocks(doc *goquery.Document) []driven.CodeBlock {
	var blocks []driven.CodeBlock
	doc.Find("pre code").Each(func(_ int, sel *goquery.Selection) {
		code := sel.Text()
		if strings.TrimSpace(code) == "" {
			return
		}
		blocks = append(blocks, driven.CodeBlock{
			Language: languageFromClass(sel.AttrOr("class", "")),
			Code:     code,
		})
	})
	return blocks
}

// languageFromClass parses the language out of a code element's class list.
func languageFromClass(class string) string {
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(c, "lang-"); ok {
			return lang
		}
	}
	return ""
}

// titleFromFilename turns "getting-started.html" into "getting started".
func titleFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
