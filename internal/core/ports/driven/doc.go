// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): fetching, parsing, chunking, embedding,
// storage and retrieval indexes.
package driven
