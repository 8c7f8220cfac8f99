// Package migrations embeds the SQL schema for the database-backed storage media.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
