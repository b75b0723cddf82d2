package models

import (
	"encoding/json"
	"time"
)

// OperationType is the enumerated kind of a queued mutation.
type OperationType string

const (
	// OpSaveDraft upserts a draft on the server.
	OpSaveDraft OperationType = "save_draft"

	// OpDeleteDraft removes a draft on the server. Queued when a clerk
	// discards a cart while offline.
	OpDeleteDraft OperationType = "delete_draft"
)

// PendingOperation is a single not-yet-confirmed mutation destined for the
// draft service. Operations are durably queued on the device and replayed
// until the server acknowledges them or the retry budget is exhausted.
type PendingOperation struct {
	// ID is a locally generated identifier, stable across retries.
	// The server uses it as the idempotency key: replaying an already
	// applied operation has no additional effect.
	ID string `json:"id"`

	// Type is the operation kind.
	Type OperationType `json:"type"`

	// Payload is the operation's data: for OpSaveDraft, a serialized
	// SaveDraftRequest. Opaque to the queue itself.
	Payload json.RawMessage `json:"payload"`

	// DeviceID scopes the operation to the originating register.
	DeviceID string `json:"device_id"`

	// CreatedAt is when the operation was first queued.
	CreatedAt time.Time `json:"created_at"`

	// RetryCount is the number of failed drain attempts so far. An
	// operation whose RetryCount exceeds the configured maximum is
	// dropped and reported as a permanent failure.
	RetryCount int `json:"retry_count"`
}
