package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
)

// DB wraps a live database handle together with the error classifier and
// the migrator matching its engine. Both the PostgreSQL draft store and the
// on-device SQLite store are opened into this type.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	migrate            func(*sql.DB) error
}

// Migrate applies the embedded schema migrations for this connection's
// engine.
func (db *DB) Migrate() error {
	if db.migrate == nil {
		return fmt.Errorf("no migrator configured for this connection")
	}

	return db.migrate(db.DB)
}
