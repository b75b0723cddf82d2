// Package adapter provides transport-layer abstractions for communicating with
// the remote draft service.
//
// The primary abstraction is [DraftAPI], which decouples the sync engine from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPDraftAPI]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrValidation] for a rejected payload, [ErrUnauthorized] for
// 401). Absence of a draft on fetch-by-id/key is not an error: those methods
// return (nil, nil) on 404, matching the engine's "no draft to recover"
// semantics.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-cart-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/draft_api_mock.go -package=mock

// DraftAPI defines transport-agnostic communication with the remote draft
// service. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type DraftAPI interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests. Token issuance is external to the engine; the
	// register obtains it out of band and hands it to the adapter.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// SetDeviceID stores the durable device identity that will be attached
	// to all subsequent requests in the X-Device-ID header. The server uses
	// it as the fallback device scope when a request does not name one
	// explicitly.
	SetDeviceID(deviceID string)

	// SaveDraft upserts a draft by the draft key carried in req and returns
	// the canonical server-side record, including the server-assigned
	// DraftID. Retrying the same request overwrites rather than duplicates.
	SaveDraft(ctx context.Context, req models.SaveDraftRequest) (models.Draft, error)

	// GetDraft fetches a draft by its server-assigned id. Returns
	// (nil, nil) when the server has no such draft.
	GetDraft(ctx context.Context, draftID int64) (*models.Draft, error)

	// GetDraftByKey fetches a draft by its stable draft key. Returns
	// (nil, nil) when the server has no such draft.
	GetDraftByKey(ctx context.Context, draftKey string) (*models.Draft, error)

	// ListDrafts returns the server's live drafts matching the filter.
	ListDrafts(ctx context.Context, filter models.ListDraftsFilter) ([]models.Draft, error)

	// DeleteDraft removes a draft by id. Returns [ErrNotFound] (wrapped)
	// when the draft does not exist.
	DeleteDraft(ctx context.Context, draftID int64) error

	// CompleteDraft marks a draft consumed (e.g. converted into a
	// transaction). The transition is idempotent: completing an already
	// completed draft succeeds.
	CompleteDraft(ctx context.Context, draftID int64, notes string) error

	// BatchSync submits the device's pending-operation queue in one request.
	// The server processes each operation independently; the response holds
	// one result per operation, addressable by id, in any order.
	BatchSync(ctx context.Context, req models.BatchSyncRequest) (models.BatchSyncResponse, error)

	// PendingOperations fetches the server-side journal of recently applied
	// operations for a device. Diagnostic surface for reconciliation.
	PendingOperations(ctx context.Context, deviceID string, limit int) ([]models.PendingOperation, error)

	// Ping probes connectivity to the draft service. A nil return means the
	// service answered; any error means it is unreachable.
	Ping(ctx context.Context) error
}
