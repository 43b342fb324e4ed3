// Package migrations embeds the versioned schema files applied by the
// store on open. Files are named "<version>_<name>.up.sql" and run in
// ascending version order.
package migrations

import "embed"

// FS holds the migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
