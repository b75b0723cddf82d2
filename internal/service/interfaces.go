package service

import (
	"context"

	"github.com/MKhiriev/go-cart-keeper/models"
)

// DraftService is the server-side application layer over the draft
// repository. It owns request validation (via the validation wrapper),
// expiry stamping, and batch-sync processing; persistence details stay in
// the store package.
type DraftService interface {
	SaveDraft(ctx context.Context, request models.SaveDraftRequest) (models.Draft, error)
	GetDraftByID(ctx context.Context, draftID int64) (models.Draft, error)
	GetDraftByKey(ctx context.Context, draftKey string) (models.Draft, error)
	ListDrafts(ctx context.Context, filter models.ListDraftsFilter) ([]models.Draft, error)
	DeleteDraft(ctx context.Context, draftID int64) error
	CompleteDraft(ctx context.Context, draftID int64, notes string) error

	// ProcessBatch applies a device's queued operations one by one and
	// reports a per-operation verdict. The batch itself never fails
	// half-way: every operation gets exactly one result.
	ProcessBatch(ctx context.Context, request models.BatchSyncRequest) (models.BatchSyncResponse, error)

	// PendingOperations returns the journal entries recorded for a device,
	// newest first. Diagnostic surface for register troubleshooting.
	PendingOperations(ctx context.Context, deviceID string, limit int) ([]models.PendingOperation, error)
}

// TokenService validates bearer tokens presented by registers. Token
// issuance happens outside this service; it only needs to recognise tokens
// signed with the shared key.
type TokenService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// DraftServiceWrapper defines middleware composition for DraftService.
// Implementations wrap an existing DraftService to add behavior such as
// logging or validating.
type DraftServiceWrapper interface {
	Wrap(DraftService) DraftService // returns a decorated DraftService applying additional behavior
}
