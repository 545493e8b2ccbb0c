package postgres

import "embed"

//go:embed migrations/*.sql
var embedMigrations embed.FS

// EmbeddedMigrations exposes the SQL migrations shipped with the binary.
var EmbeddedMigrations = embedMigrations
