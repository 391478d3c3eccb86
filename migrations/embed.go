// Package migrations embeds the SQL schema for the database-backed stores.
package migrations

import "embed"

// FS holds one directory of NNN_name.sql files per database dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
