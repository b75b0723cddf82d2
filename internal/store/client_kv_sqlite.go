package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
)

// sqliteKV is the primary on-device [KVStore]: a single-table SQLite
// database holding one row per key. SQLite gives the engine transactional
// writes and tolerates payloads far larger than the JSON-file fallback.
type sqliteKV struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteKV opens (creating if necessary) the SQLite database at
// cfg.DSN, applies pending schema migrations and returns a ready
// [KVStore]. Construction fails when the file cannot be created, the
// connection does not ping, or migration fails; the caller is expected to
// fall back to [NewFileKV] in that case.
func NewSQLiteKV(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (KVStore, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open local kv database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate local kv database: %w", err)
	}

	return &sqliteKV{DB: db, logger: log}, nil
}

func (s *sqliteKV) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	var value []byte
	err := s.DB.QueryRowContext(ctx, getKVValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKV.Get").
			Str("key", key).
			Msg("failed to query kv value")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *sqliteKV) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, setKVValue, key, value)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKV.Set").
			Str("key", key).
			Int("value_size", len(value)).
			Msg("failed to upsert kv value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKV) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	// deleting an absent key is a no-op
	_, err := s.DB.ExecContext(ctx, deleteKVValue, key)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKV.Delete").
			Str("key", key).
			Msg("failed to delete kv value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteKV) Close() error {
	return s.DB.Close()
}
