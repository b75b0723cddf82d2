package models

// SaveDraftRequest is the upsert body sent to POST /drafts and the payload
// of an OpSaveDraft pending operation. The server resolves the target row
// by DraftKey, so replays overwrite rather than duplicate.
type SaveDraftRequest struct {
	// DraftKey is the stable identity the server upserts by.
	DraftKey string `json:"draft_key"`

	// DraftType is the draft's purpose; must match the key's third
	// component.
	DraftType DraftType `json:"draft_type"`

	// DeviceID is the originating register device.
	DeviceID string `json:"device_id"`

	// RegisterID is the optional human-assigned register number.
	RegisterID string `json:"register_id,omitempty"`

	// UserID is the clerk saving the draft.
	UserID int64 `json:"user_id"`

	// Payload is the full cart state to persist.
	Payload DraftPayload `json:"payload"`
}

// ListDraftsFilter narrows and paginates GET /drafts.
// Zero values mean "no constraint" except Limit, which the server caps
// with a default when zero.
type ListDraftsFilter struct {
	// DraftType filters by purpose.
	DraftType DraftType `json:"draft_type,omitempty"`

	// DeviceID filters by owning device.
	DeviceID string `json:"device_id,omitempty"`

	// RegisterID filters by register number.
	RegisterID string `json:"register_id,omitempty"`

	// IncludeExpired keeps drafts whose ExpiresAt has passed; excluded
	// by default.
	IncludeExpired bool `json:"include_expired,omitempty"`

	// Limit caps the page size.
	Limit int `json:"limit,omitempty"`

	// Offset skips rows for pagination.
	Offset int `json:"offset,omitempty"`
}

// CompleteDraftRequest is the body of POST /drafts/:id/complete, the
// idempotent terminal transition marking a draft consumed.
type CompleteDraftRequest struct {
	// Notes records why/how the draft was consumed ("converted to
	// transaction 4182").
	Notes string `json:"notes,omitempty"`
}

// DeleteDraftRequest is the payload of an OpDeleteDraft pending operation.
// The draft is addressed by key, not id: a clerk can discard a cart that
// was never acknowledged by the server and so has no server id yet.
type DeleteDraftRequest struct {
	// DraftKey identifies the draft to remove.
	DraftKey string `json:"draft_key"`
}
