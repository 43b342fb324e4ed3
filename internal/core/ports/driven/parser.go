package driven

// CodeBlock is a fenced or tagged code block found during parsing.
type CodeBlock struct {
	// Language is the declared language identifier, empty when undeclared.
	Language string

	// Code is the block content without fence markers.
	Code string
}

// ParsedDocument is the format-neutral output of a parser.
type ParsedDocument struct {
	// Title is the extracted title, falling back to the file name stem.
	Title string

	// Content is the normalised text content.
	Content string

	// CodeBlocks lists extracted code blocks in document order.
	CodeBlocks []CodeBlock

	// Metadata contains parser-specific key-value pairs.
	Metadata map[string]any
}

// DocumentParser converts one source format into a ParsedDocument.
// Parsers are selected per file by Supports; files no parser supports are
// skipped without error.
type DocumentParser interface {
	// Supports reports whether the parser handles the file at path,
	// judged by extension.
	Supports(path string) bool

	// Parse extracts title, content and code blocks from raw content.
	// Parsing is total: malformed input degrades to best-effort output
	// rather than an error.
	Parse(content, path string) ParsedDocument

	// DocType returns the document type recorded on parsed documents.
	DocType() string
}
