// Package migrations embeds the SQL schema migrations, one directory per
// database driver.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed mysql/*.sql sqlite3/*.sql
var migrationFS embed.FS

// FS provides access to the embedded migration files.
var FS fs.FS = migrationFS
