// Package migrations embeds the versioned SQLite schema files so the
// binary can initialize a database without shipping loose .sql files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
