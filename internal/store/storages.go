package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
)

// Storages aggregates the server-side repositories over one database
// connection.
type Storages struct {
	DraftRepository DraftRepository
}

// NewStorages opens the PostgreSQL connection, applies the embedded
// migrations, and builds the repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to draft database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating draft database: %w", err)
	}

	return &Storages{
		DraftRepository: NewDraftRepository(db, log),
	}, nil
}
