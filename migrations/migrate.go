// Package migrations embeds the schema of every supported SQL backend and
// applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// dialects maps a backend name onto the goose dialect and the directory
// holding its migrations.
var dialects = map[string]struct {
	goose string
	dir   string
}{
	"postgres": {goose: "pgx", dir: "postgres"},
	"sqlite3":  {goose: "sqlite3", dir: "sqlite"},
}

// Migrate applies every pending migration of dialect ("postgres" or
// "sqlite3") to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := dialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
