package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Schema scripts live in migrations/ as NNNN_name.up.sql / NNNN_name.down.sql
// pairs. The initial migration creates the tasks, tags, subtasks and
// focus_queue tables.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp brings the database to the latest schema, applying up scripts in
// ascending order.
func MigrateUp(db *sql.DB) error {
	return runScripts(db, ".up.sql", false)
}

// MigrateDown tears the schema back down, applying down scripts newest first.
func MigrateDown(db *sql.DB) error {
	return runScripts(db, ".down.sql", true)
}

func runScripts(db *sql.DB, suffix string, newestFirst bool) error {
	names, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if newestFirst {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	} else {
		sort.Strings(names)
	}
	for _, name := range names {
		script, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
