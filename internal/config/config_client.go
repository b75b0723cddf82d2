package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the register's transport
// layer.
type ClientAdapter struct {
	// HTTPAddress is the draft service endpoint used by the register.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// Token is the bearer token presented on authenticated requests.
	// Empty is allowed: the register keeps queueing locally and fails
	// only when it tries to drain.
	Token string
}

// ClientDB contains the on-device SQLite settings for the register.
type ClientDB struct {
	// DSN is the SQLite database path used as the primary local store.
	DSN string
}

// ClientStorage groups the register's storage backend settings.
type ClientStorage struct {
	// DB holds the SQLite primary store settings.
	DB ClientDB
	// FilePath is the JSON fallback store location.
	FilePath string
}

// ClientEngine contains the sync engine tuning for the register.
type ClientEngine struct {
	// RegisterID is the human-assigned register number.
	RegisterID string
	// UserID is the clerk the register's drafts belong to. Zero means the
	// id is resolved from the adapter token's subject.
	UserID int64
	// DraftType is "sale_draft" or "quote_draft"; empty means sale.
	DraftType string
	// MaxRetries is the per-operation retry budget for batch sync.
	MaxRetries int
	// RetryDelay is the fixed delay before a failed drain is retried.
	RetryDelay time.Duration
	// AutoSaveInterval is the periodic save cadence.
	AutoSaveInterval time.Duration
	// DebounceDelay is the quiet period after an edit before saving.
	DebounceDelay time.Duration
	// PingInterval is the connectivity probe cadence.
	PingInterval time.Duration
}

// ClientConfig is the top-level register configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the draft service address and timeouts.
	Adapter ClientAdapter
	// Storage contains the on-device storage settings.
	Storage ClientStorage
	// Engine contains the sync engine tuning.
	Engine ClientEngine
}

// GetClientConfig builds and validates a register-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the register runtime, and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.KV.SQLiteDSN,
			},
			FilePath: cfg.Storage.KV.FilePath,
		},
		Engine: ClientEngine{
			RegisterID:       cfg.Engine.RegisterID,
			UserID:           cfg.Engine.UserID,
			DraftType:        cfg.Engine.DraftType,
			MaxRetries:       cfg.Engine.MaxRetries,
			RetryDelay:       cfg.Engine.RetryDelay,
			AutoSaveInterval: cfg.Engine.AutoSaveInterval,
			DebounceDelay:    cfg.Engine.DebounceDelay,
			PingInterval:     cfg.Engine.PingInterval,
		},
	}

	return clientCfg, clientCfg.validate()
}
