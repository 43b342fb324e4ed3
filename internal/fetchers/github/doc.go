// Package github fetches documentation files from GitHub repositories.
//
// Retrieval goes through an ordered chain of strategies. The archive
// strategy downloads one release tarball and is tried first; the contents
// strategy walks the repository contents API and serves as the fallback
// for refs that have no matching tag. Strategies signal "no result" with
// a nil result instead of an error so the chain can keep trying.
package github
