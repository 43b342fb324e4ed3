// Package domain contains the core business entities and errors for docmcp.
//
// The domain layer has no dependencies on infrastructure. Entities here are
// plain structs; persistence, fetching and indexing are defined as ports in
// the ports/driven and ports/driving packages and implemented by adapters.
package domain
