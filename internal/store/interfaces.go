package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cart-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DraftRepository is the server-side persistence layer for drafts and the
// batch-sync idempotency journal.
//
// UpsertDraft resolves the target row by draft_key, so saving the same key
// twice overwrites rather than duplicates. ApplySaveDraft and
// ApplyDeleteDraft additionally record the operation's id in the
// applied-operations journal inside the same transaction; a replayed id
// yields [ErrOperationAlreadyApplied] without touching the drafts table.
type DraftRepository interface {
	UpsertDraft(ctx context.Context, draft models.Draft) (models.Draft, error)
	GetDraftByID(ctx context.Context, draftID int64) (models.Draft, error)
	GetDraftByKey(ctx context.Context, draftKey string) (models.Draft, error)
	ListDrafts(ctx context.Context, filter models.ListDraftsFilter) ([]models.Draft, error)
	DeleteDraft(ctx context.Context, draftID int64) error
	CompleteDraft(ctx context.Context, draftID int64, notes string) error
	ApplySaveDraft(ctx context.Context, op models.PendingOperation, draft models.Draft) (models.Draft, error)
	ApplyDeleteDraft(ctx context.Context, op models.PendingOperation, draftKey string) error
	DeviceOperations(ctx context.Context, deviceID string, limit int) ([]models.PendingOperation, error)
	PurgeExpired(ctx context.Context, journalRetention time.Duration) (int64, error)

	// Retryable reports whether a previously returned error is worth
	// retrying: transient by driver classification, or an error that never
	// reached the database at all.
	Retryable(err error) bool
}

// ErrorClassificator decides whether a failed database operation should be
// retried or abandoned.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
