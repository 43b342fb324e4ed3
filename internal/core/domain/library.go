package domain

import (
	"regexp"
	"time"
)

// SourceType identifies where a library's documentation comes from.
type SourceType string

// Supported source types.
const (
	SourceGitHub SourceType = "GITHUB"
	SourceLocal  SourceType = "LOCAL"
)

// VersionStatus describes the lifecycle state of a library version.
type VersionStatus string

// Version lifecycle states.
const (
	VersionActive     VersionStatus = "ACTIVE"
	VersionDeprecated VersionStatus = "DEPRECATED"
	VersionEOL        VersionStatus = "EOL"
)

// Library represents an indexable software library or framework.
// Each library has one or more versions; documents attach to a version.
type Library struct {
	// ID is the unique identifier.
	ID string

	// Name is the unique lookup name used by API callers (e.g. "react").
	Name string

	// DisplayName is the human-readable name.
	DisplayName string

	// Description summarises the library.
	Description string

	// SourceType says where documentation is fetched from.
	SourceType SourceType

	// SourceURL is the source location (e.g. a GitHub repository URL).
	SourceURL string

	// Category groups libraries (e.g. "frontend", "backend").
	Category string

	// Tags are free-form labels.
	Tags []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// githubURLPattern extracts owner and repo from a GitHub repository URL.
var githubURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)

// GitHubRepo parses the owner and repository name from SourceURL.
// Returns empty strings when the URL is not a GitHub repository URL.
func (l Library) GitHubRepo() (owner, repo string) {
	m := githubURLPattern.FindStringSubmatch(l.SourceURL)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

// LibraryVersion is one release of a library.
// At most one version per library carries IsLatest=true.
type LibraryVersion struct {
	// ID is the unique identifier.
	ID string

	// LibraryID is the owning Library.
	LibraryID string

	// Version is the release string (e.g. "18.2.0").
	Version string

	// IsLatest marks the version used when callers omit a version.
	IsLatest bool

	// Status is the lifecycle state.
	Status VersionStatus

	// DocsPath is the documentation directory within the source (e.g. "docs").
	DocsPath string

	// ReleaseDate is when the version was published, if known.
	ReleaseDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResolvedLibrary is the result of resolving a library name and an optional
// version string to concrete entities.
type ResolvedLibrary struct {
	Library Library
	Version LibraryVersion

	// ResolvedVersion is the version string that was actually selected.
	ResolvedVersion string
}
