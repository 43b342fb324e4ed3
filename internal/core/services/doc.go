// Package services implements the driving port interfaces: library
// registry and version resolution, documentation sync orchestration,
// full-text and semantic search, document retrieval and the cron
// scheduler. Services hold the business rules and delegate persistence,
// fetching, parsing and embedding to driven ports.
package services
