// Package phishguard holds assets shared by the binaries of the module.
package phishguard

import "embed"

// Migrations contains the goose migrations of every supported storage backend,
// one directory per backend under migrations/.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS

const (
	// PostgresMigrationsDir is the directory of the PostgreSQL migrations in Migrations.
	PostgresMigrationsDir = "migrations/postgres"
	// SQLiteMigrationsDir is the directory of the SQLite migrations in Migrations.
	SQLiteMigrationsDir = "migrations/sqlite"
)
