// Package driving defines the interfaces the CLI and MCP adapters use to
// drive the application: library management, sync, search, document
// retrieval and scheduling.
//
// Implementations live in internal/core/services.
package driving
