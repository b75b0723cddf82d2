package models

import "time"

// BatchSyncRequest carries the device's entire pending-operation queue to
// the server for one drain attempt.
type BatchSyncRequest struct {
	// Operations is the queue contents in original queue order.
	Operations []PendingOperation `json:"operations"`

	// DeviceID identifies the register submitting the batch.
	DeviceID string `json:"device_id"`
}

// BatchSyncResponse is the server's per-operation verdict for one batch.
// The server processes each operation independently; the batch has no
// all-or-nothing semantics.
type BatchSyncResponse struct {
	// Results holds one entry per submitted operation, addressable by ID.
	// Order is not guaranteed to match the request.
	Results []OperationResult `json:"results"`
}

// OperationResult is the outcome of a single operation within a batch.
type OperationResult struct {
	// ID echoes the PendingOperation's idempotency key.
	ID string `json:"id"`

	// Success reports that the server applied (or had already applied)
	// the operation.
	Success bool `json:"success"`

	// Retryable distinguishes failures worth retrying (storage hiccup,
	// timeout) from ones the server will never accept (validation).
	// Meaningful only when Success is false.
	Retryable bool `json:"retryable,omitempty"`

	// Message is a human-readable explanation for failures and
	// duplicate-replay acknowledgements.
	Message string `json:"message,omitempty"`
}

// SyncState is a point-in-time snapshot of the sync manager's status,
// exposed for status indicators. It is a copy; mutating it has no effect
// on the manager.
type SyncState struct {
	// Online reports the connectivity notifier's last known status.
	Online bool `json:"online"`

	// SyncInProgress reports that a drain is currently running.
	SyncInProgress bool `json:"sync_in_progress"`

	// PendingCount is the durable queue length at snapshot time.
	PendingCount int `json:"pending_count"`

	// LastSyncAt is the completion time of the last fully successful
	// drain, nil if none has succeeded yet.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`

	// LastError is the message of the most recent drain error, empty
	// when the last drain succeeded.
	LastError string `json:"last_error,omitempty"`
}
