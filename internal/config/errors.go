package config

import "errors"

// Validation errors returned by config validation when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid draft service connection
	// settings (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid on-device storage settings
	// (for example, a missing fallback file path or an in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidEngineConfigs indicates invalid sync engine settings
	// (for example, a non-positive user id or an unknown draft type).
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
	// ErrInvalidDraftConfigs indicates invalid draft lifecycle settings
	// (for example, a negative TTL).
	ErrInvalidDraftConfigs = errors.New("invalid drafts configuration")
)
