package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/internal/validators"
	"github.com/MKhiriev/go-cart-keeper/models"
)

// draftValidationService decorates a DraftService with request validation
// and ownership checks. It rejects malformed requests before they reach the
// core service, so the inner implementation can assume its inputs are sane.
type draftValidationService struct {
	inner     DraftService
	validator validators.Validator
}

// NewDraftValidationService returns a wrapper that validates requests
// before delegating to the wrapped DraftService.
func NewDraftValidationService() DraftServiceWrapper {
	return &draftValidationService{
		validator: validators.NewDraftValidator(),
	}
}

// SaveDraft validates the upsert request and requires the authenticated
// user to match the draft's owner. The clerk behind the token is the only
// one allowed to write that clerk's working cart.
func (v *draftValidationService) SaveDraft(ctx context.Context, request models.SaveDraftRequest) (models.Draft, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return models.Draft{}, ErrValidationNoUserID
	}
	if request.UserID != userID {
		return models.Draft{}, ErrUnauthorizedAccessToDifferentUserData
	}

	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Draft{}, fmt.Errorf("error during draft validation before saving: %w", err)
	}

	return v.inner.SaveDraft(ctx, request)
}

func (v *draftValidationService) GetDraftByID(ctx context.Context, draftID int64) (models.Draft, error) {
	if draftID <= 0 {
		return models.Draft{}, fmt.Errorf("%w: draft id must be positive", ErrInvalidDataProvided)
	}

	return v.inner.GetDraftByID(ctx, draftID)
}

func (v *draftValidationService) GetDraftByKey(ctx context.Context, draftKey string) (models.Draft, error) {
	if draftKey == "" {
		return models.Draft{}, validators.ErrNoDraftKey
	}
	if _, _, _, err := models.ParseDraftKey(draftKey); err != nil {
		return models.Draft{}, validators.ErrMalformedDraftKey
	}

	return v.inner.GetDraftByKey(ctx, draftKey)
}

func (v *draftValidationService) ListDrafts(ctx context.Context, filter models.ListDraftsFilter) ([]models.Draft, error) {
	if err := v.validator.Validate(ctx, filter); err != nil {
		return nil, fmt.Errorf("error during list filter validation: %w", err)
	}

	return v.inner.ListDrafts(ctx, filter)
}

func (v *draftValidationService) DeleteDraft(ctx context.Context, draftID int64) error {
	if draftID <= 0 {
		return fmt.Errorf("%w: draft id must be positive", ErrInvalidDataProvided)
	}

	return v.inner.DeleteDraft(ctx, draftID)
}

func (v *draftValidationService) CompleteDraft(ctx context.Context, draftID int64, notes string) error {
	if draftID <= 0 {
		return fmt.Errorf("%w: draft id must be positive", ErrInvalidDataProvided)
	}

	return v.inner.CompleteDraft(ctx, draftID, notes)
}

// ProcessBatch validates the batch envelope only. Per-operation payloads
// are deliberately left to the core service: a bad payload must fail its
// own operation with a per-operation result, not reject the whole batch.
func (v *draftValidationService) ProcessBatch(ctx context.Context, request models.BatchSyncRequest) (models.BatchSyncResponse, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.BatchSyncResponse{}, fmt.Errorf("error during batch sync validation: %w", err)
	}

	return v.inner.ProcessBatch(ctx, request)
}

func (v *draftValidationService) PendingOperations(ctx context.Context, deviceID string, limit int) ([]models.PendingOperation, error) {
	if deviceID == "" {
		return nil, validators.ErrNoDeviceID
	}
	if limit < 0 {
		return nil, validators.ErrInvalidLimit
	}

	return v.inner.PendingOperations(ctx, deviceID, limit)
}

func (v *draftValidationService) Wrap(inner DraftService) DraftService {
	v.inner = inner
	return v
}
