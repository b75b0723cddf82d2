package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

// Client applies the on-device SQLite schema (the kv table).
func Client(db *sql.DB) error {
	return up(db, "sqlite3", "client")
}

// Server applies the PostgreSQL schema (drafts, applied_operations).
func Server(db *sql.DB) error {
	return up(db, "pgx", "server")
}

func up(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
