package config

import "strings"

// draftTypeNames are the values Engine.DraftType may carry, besides empty
// (which the engine defaults to a sale draft).
var draftTypeNames = []string{"sale_draft", "quote_draft"}

// validate checks the final merged [StructuredConfig] for shape errors that
// no runtime could accept. Requiredness is runtime-specific (the draft
// service needs a database, the register does not), so required-field checks
// live in the per-runtime views; see [ClientConfig.validate].
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Engine.MaxRetries < 0 {
		return ErrInvalidEngineConfigs
	}

	if cfg.Engine.DraftType != "" && !isKnownDraftType(cfg.Engine.DraftType) {
		return ErrInvalidEngineConfigs
	}

	if cfg.Engine.RetryDelay < 0 || cfg.Engine.AutoSaveInterval < 0 ||
		cfg.Engine.DebounceDelay < 0 || cfg.Engine.PingInterval < 0 {
		return ErrInvalidEngineConfigs
	}

	if cfg.Drafts.TTL < 0 || cfg.Drafts.JournalRetention < 0 {
		return ErrInvalidDraftConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	// The JSON fallback is the tier assumed to always be writable; without
	// it a broken SQLite installation would leave the register with no
	// durable storage at all.
	if cfg.Storage.FilePath == "" {
		return ErrInvalidStorageConfigs
	}

	// An in-memory SQLite database defeats the whole point of the local
	// store: it does not survive a register restart.
	if strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	// A register without an explicit user id can still resolve one from the
	// adapter token's subject at assembly time.
	if cfg.Engine.UserID < 0 || (cfg.Engine.UserID == 0 && cfg.Adapter.Token == "") {
		return ErrInvalidEngineConfigs
	}

	if cfg.Engine.DraftType != "" && !isKnownDraftType(cfg.Engine.DraftType) {
		return ErrInvalidEngineConfigs
	}

	return nil
}

func isKnownDraftType(name string) bool {
	for _, known := range draftTypeNames {
		if name == known {
			return true
		}
	}
	return false
}
