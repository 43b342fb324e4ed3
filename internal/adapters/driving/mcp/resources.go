package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for docmcp resources.
	uriScheme = "docmcp://"
)

// registerResources registers all resource handlers with the MCP server.
// Resources resolve against the latest version of a library; versioned
// access goes through the tools.
func (s *Server) registerResources() {
	// Static resource for listing registered libraries.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "libraries",
		Name:        "libraries",
		Description: "List of all registered libraries",
		MIMEType:    "application/json",
	}, s.handleLibrariesResource)

	// Template for a library's table of contents.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "libraries/{library}/documents",
		Name:        "library-documents",
		Description: "Documents synced for the latest version of a library",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a single document's content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "docs/{library}/{+path}",
		Name:        "document-content",
		Description: "Content of a documentation page in the latest version of a library",
		MIMEType:    "text/markdown",
	}, s.handleDocumentContentResource)
}

// handleLibrariesResource returns a list of all registered libraries.
func (s *Server) handleLibrariesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	libs, err := s.ports.Library.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing libraries: %w", err)
	}

	// Build simplified library list.
	type libraryInfo struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Category    string `json:"category,omitempty"`
	}

	infos := make([]libraryInfo, len(libs))
	for i := range libs {
		infos[i] = libraryInfo{
			ID:          libs[i].ID,
			Name:        libs[i].Name,
			DisplayName: libs[i].DisplayName,
			Category:    libs[i].Category,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling libraries: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentsResource returns the document list for a library.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract library from URI: docmcp://libraries/{library}/documents
	library := extractLibrary(req.Params.URI)
	if library == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Document.List(ctx, library, "")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Build simplified document list.
	type docInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Path  string `json:"path"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:    docs[i].ID,
			Title: docs[i].Title,
			Path:  docs[i].Path,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the content of a specific document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract library and path from URI: docmcp://docs/{library}/{path}
	library, path := extractDocRef(req.Params.URI)
	if library == "" || path == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Document.GetContent(ctx, library, "", path)
	if err != nil {
		return nil, fmt.Errorf("getting document content: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     doc.Content,
		}},
	}, nil
}

// extractLibrary extracts the library name from a URI like
// docmcp://libraries/{library}/documents.
func extractLibrary(uri string) string {
	const prefix = uriScheme + "libraries/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractDocRef extracts the library name and document path from a URI like
// docmcp://docs/{library}/{path}. The path may itself contain slashes.
func extractDocRef(uri string) (library, path string) {
	const prefix = uriScheme + "docs/"

	if !strings.HasPrefix(uri, prefix) {
		return "", ""
	}

	rest := strings.TrimPrefix(uri, prefix)
	library, path, ok := strings.Cut(rest, "/")
	if !ok {
		return "", ""
	}
	return library, path
}
