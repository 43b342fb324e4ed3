package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

// defaultSearchLimit caps result counts when the caller omits a limit.
const defaultSearchLimit = 10

// ResolveLibraryInput is the input schema for the resolve_library tool.
type ResolveLibraryInput struct {
	Name    string `json:"name" jsonschema:"the library name to resolve (e.g. react)"`
	Version string `json:"version,omitempty" jsonschema:"the version to resolve; omit for the latest version"`
}

// ResolveLibraryOutput is the output schema for the resolve_library tool.
type ResolveLibraryOutput struct {
	LibraryID       string `json:"library_id"`
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Description     string `json:"description,omitempty"`
	VersionID       string `json:"version_id"`
	ResolvedVersion string `json:"resolved_version"`
	IsLatest        bool   `json:"is_latest"`
	Status          string `json:"status"`
}

// ListLibrariesInput is the input schema for the list_libraries tool.
type ListLibrariesInput struct {
	Category string `json:"category,omitempty" jsonschema:"filter by category; omit for all libraries"`
}

// LibraryOutput represents a single registered library.
type LibraryOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ListLibrariesOutput is the output schema for the list_libraries tool.
type ListLibrariesOutput struct {
	Libraries []LibraryOutput `json:"libraries"`
	Count     int             `json:"count"`
}

// ListVersionsInput is the input schema for the list_versions tool.
type ListVersionsInput struct {
	Name string `json:"name" jsonschema:"the library name"`
}

// VersionOutput represents a single library version.
type VersionOutput struct {
	ID       string `json:"id"`
	Version  string `json:"version"`
	IsLatest bool   `json:"is_latest"`
	Status   string `json:"status"`
}

// ListVersionsOutput is the output schema for the list_versions tool.
type ListVersionsOutput struct {
	Versions []VersionOutput `json:"versions"`
	Count    int             `json:"count"`
}

// SearchInput is the shared input schema for the search tools.
type SearchInput struct {
	Library   string  `json:"library" jsonschema:"the library name to search in"`
	Version   string  `json:"version,omitempty" jsonschema:"the version to search; omit for the latest version"`
	Query     string  `json:"query" jsonschema:"the search query"`
	Limit     int     `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Threshold float64 `json:"threshold,omitempty" jsonschema:"minimum similarity for semantic results; ignored by keyword search"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	ChunkID    string  `json:"chunk_id,omitempty"`
	Title      string  `json:"title"`
	Path       string  `json:"path"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
	ChunkIndex int     `json:"chunk_index"`
}

// SearchOutput is the output schema for the search tools.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// GetDocContentInput is the input schema for the get_doc_content tool.
type GetDocContentInput struct {
	Library string `json:"library" jsonschema:"the library name"`
	Version string `json:"version,omitempty" jsonschema:"the version; omit for the latest version"`
	Path    string `json:"path" jsonschema:"the document path within the documentation root"`
}

// GetDocContentOutput is the output schema for the get_doc_content tool.
type GetDocContentOutput struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Path       string `json:"path"`
	DocType    string `json:"doc_type"`
	Content    string `json:"content"`
}

// GetCodeExamplesInput is the input schema for the get_code_examples tool.
type GetCodeExamplesInput struct {
	Library  string `json:"library" jsonschema:"the library name"`
	Version  string `json:"version,omitempty" jsonschema:"the version; omit for the latest version"`
	Path     string `json:"path" jsonschema:"the document path to extract examples from"`
	Language string `json:"language,omitempty" jsonschema:"filter by code language; omit for all languages"`
}

// CodeExampleOutput represents a single extracted code example.
type CodeExampleOutput struct {
	ID          string `json:"id"`
	Language    string `json:"language,omitempty"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// GetCodeExamplesOutput is the output schema for the get_code_examples tool.
type GetCodeExamplesOutput struct {
	Examples []CodeExampleOutput `json:"examples"`
	Count    int                 `json:"count"`
}

// GetSyncStatusInput is the input schema for the get_sync_status tool.
type GetSyncStatusInput struct {
	Library string `json:"library" jsonschema:"the library name"`
	Version string `json:"version,omitempty" jsonschema:"the version; omit for the latest version"`
}

// SyncRunOutput represents a single sync run.
type SyncRunOutput struct {
	ID                 string     `json:"id"`
	Status             string     `json:"status"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	DocumentsProcessed int        `json:"documents_processed"`
	ChunksCreated      int        `json:"chunks_created"`
	ErrorMessage       string     `json:"error_message,omitempty"`
}

// GetSyncStatusOutput is the output schema for the get_sync_status tool.
type GetSyncStatusOutput struct {
	IsRunning     bool            `json:"is_running"`
	LatestRun     *SyncRunOutput  `json:"latest_run,omitempty"`
	RecentHistory []SyncRunOutput `json:"recent_history"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_library",
		Description: "Resolve a library name and optional version to a concrete documentation set",
	}, s.handleResolveLibrary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_libraries",
		Description: "List registered libraries, optionally filtered by category",
	}, s.handleListLibraries)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_versions",
		Description: "List all tracked versions of a library, newest first",
	}, s.handleListVersions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Keyword search over a library version's documentation",
	}, s.handleSearchDocs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "semantic_search",
		Description: "Semantic similarity search over a library version's documentation chunks",
	}, s.handleSemanticSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_doc_content",
		Description: "Retrieve the full content of a documentation page",
	}, s.handleGetDocContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_code_examples",
		Description: "Extract code examples from a documentation page, optionally filtered by language",
	}, s.handleGetCodeExamples)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_sync_status",
		Description: "Report sync state and recent sync history for a library version",
	}, s.handleGetSyncStatus)
}

// handleResolveLibrary handles the resolve_library tool invocation.
func (s *Server) handleResolveLibrary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveLibraryInput,
) (*mcp.CallToolResult, ResolveLibraryOutput, error) {
	resolved, err := s.ports.Library.Resolve(ctx, input.Name, input.Version)
	if err != nil {
		return nil, ResolveLibraryOutput{}, err
	}

	return nil, ResolveLibraryOutput{
		LibraryID:       resolved.Library.ID,
		Name:            resolved.Library.Name,
		DisplayName:     resolved.Library.DisplayName,
		Description:     resolved.Library.Description,
		VersionID:       resolved.Version.ID,
		ResolvedVersion: resolved.ResolvedVersion,
		IsLatest:        resolved.Version.IsLatest,
		Status:          string(resolved.Version.Status),
	}, nil
}

// handleListLibraries handles the list_libraries tool invocation.
func (s *Server) handleListLibraries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListLibrariesInput,
) (*mcp.CallToolResult, ListLibrariesOutput, error) {
	libs, err := s.ports.Library.List(ctx, input.Category)
	if err != nil {
		return nil, ListLibrariesOutput{}, err
	}

	output := ListLibrariesOutput{
		Libraries: make([]LibraryOutput, len(libs)),
		Count:     len(libs),
	}
	for i := range libs {
		output.Libraries[i] = LibraryOutput{
			ID:          libs[i].ID,
			Name:        libs[i].Name,
			DisplayName: libs[i].DisplayName,
			Description: libs[i].Description,
			Category:    libs[i].Category,
			Tags:        libs[i].Tags,
		}
	}

	return nil, output, nil
}

// handleListVersions handles the list_versions tool invocation.
func (s *Server) handleListVersions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListVersionsInput,
) (*mcp.CallToolResult, ListVersionsOutput, error) {
	versions, err := s.ports.Library.Versions(ctx, input.Name)
	if err != nil {
		return nil, ListVersionsOutput{}, err
	}

	output := ListVersionsOutput{
		Versions: make([]VersionOutput, len(versions)),
		Count:    len(versions),
	}
	for i := range versions {
		output.Versions[i] = VersionOutput{
			ID:       versions[i].ID,
			Version:  versions[i].Version,
			IsLatest: versions[i].IsLatest,
			Status:   string(versions[i].Status),
		}
	}

	return nil, output, nil
}

// handleSearchDocs handles the search_docs tool invocation.
func (s *Server) handleSearchDocs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	results, err := s.ports.Search.FullText(ctx, input.Library, input.Version, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, searchOutput(results), nil
}

// handleSemanticSearch handles the semantic_search tool invocation.
func (s *Server) handleSemanticSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	results, err := s.ports.Search.Semantic(ctx, input.Library, input.Version,
		input.Query, limit, input.Threshold)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, searchOutput(results), nil
}

// handleGetDocContent handles the get_doc_content tool invocation.
func (s *Server) handleGetDocContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocContentInput,
) (*mcp.CallToolResult, GetDocContentOutput, error) {
	doc, err := s.ports.Document.GetContent(ctx, input.Library, input.Version, input.Path)
	if err != nil {
		return nil, GetDocContentOutput{}, err
	}

	return nil, GetDocContentOutput{
		DocumentID: doc.ID,
		Title:      doc.Title,
		Path:       doc.Path,
		DocType:    doc.DocType,
		Content:    doc.Content,
	}, nil
}

// handleGetCodeExamples handles the get_code_examples tool invocation.
func (s *Server) handleGetCodeExamples(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetCodeExamplesInput,
) (*mcp.CallToolResult, GetCodeExamplesOutput, error) {
	examples, err := s.ports.Document.CodeExamples(ctx, input.Library, input.Version,
		input.Path, input.Language)
	if err != nil {
		return nil, GetCodeExamplesOutput{}, err
	}

	output := GetCodeExamplesOutput{
		Examples: make([]CodeExampleOutput, len(examples)),
		Count:    len(examples),
	}
	for i := range examples {
		output.Examples[i] = CodeExampleOutput{
			ID:          examples[i].ID,
			Language:    examples[i].Language,
			Code:        examples[i].Code,
			Description: examples[i].Description,
		}
	}

	return nil, output, nil
}

// handleGetSyncStatus handles the get_sync_status tool invocation.
func (s *Server) handleGetSyncStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSyncStatusInput,
) (*mcp.CallToolResult, GetSyncStatusOutput, error) {
	if s.ports.Sync == nil {
		return nil, GetSyncStatusOutput{RecentHistory: []SyncRunOutput{}}, nil
	}

	overview, err := s.ports.Sync.Status(ctx, input.Library, input.Version)
	if err != nil {
		return nil, GetSyncStatusOutput{}, err
	}

	output := GetSyncStatusOutput{
		IsRunning:     overview.IsRunning,
		RecentHistory: make([]SyncRunOutput, len(overview.RecentHistory)),
	}
	if overview.LatestRun != nil {
		run := syncRunOutput(*overview.LatestRun)
		output.LatestRun = &run
	}
	for i := range overview.RecentHistory {
		output.RecentHistory[i] = syncRunOutput(overview.RecentHistory[i])
	}

	return nil, output, nil
}

// searchOutput converts domain results into the shared tool output.
func searchOutput(results []domain.SearchResult) SearchOutput {
	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].DocumentID,
			ChunkID:    results[i].ChunkID,
			Title:      results[i].Title,
			Path:       results[i].Path,
			Snippet:    results[i].Snippet,
			Score:      results[i].Score,
			ChunkIndex: results[i].ChunkIndex,
		}
	}
	return output
}

// syncRunOutput converts a domain run into tool output.
func syncRunOutput(run domain.SyncHistory) SyncRunOutput {
	return SyncRunOutput{
		ID:                 run.ID,
		Status:             string(run.Status),
		StartedAt:          run.StartedAt,
		CompletedAt:        run.CompletedAt,
		DocumentsProcessed: run.DocumentsProcessed,
		ChunksCreated:      run.ChunksCreated,
		ErrorMessage:       run.ErrorMessage,
	}
}
