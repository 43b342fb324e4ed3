// Package parsers wires the format-specific document parsers.
package parsers

import (
	"github.com/custodia-labs/docmcp/internal/core/ports/driven"
	"github.com/custodia-labs/docmcp/internal/parsers/html"
	"github.com/custodia-labs/docmcp/internal/parsers/markdown"
	"github.com/custodia-labs/docmcp/internal/parsers/plain"
)

// Default returns the standard parser set in selection order.
// Markdown is checked first as the most common documentation format.
func Default() []driven.DocumentParser {
	return []driven.DocumentParser{
		markdown.New(),
		html.New(),
		plain.New(),
	}
}
