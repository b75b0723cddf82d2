package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
	"github.com/MKhiriev/go-cart-keeper/internal/validators"
	"github.com/MKhiriev/go-cart-keeper/models"
)

const (
	// defaultListLimit is applied when a list request does not name a page
	// size.
	defaultListLimit = 50

	// maxListLimit caps the page size a single list request may ask for.
	maxListLimit = 500
)

// draftService is the concrete implementation of DraftService.
// It composes drafts from save requests (denormalized summary fields,
// expiry stamp), delegates persistence to a DraftRepository, and processes
// batch-sync queues operation by operation.
type draftService struct {
	// draftRepository is the data-access layer for drafts and the
	// applied-operations journal.
	draftRepository store.DraftRepository

	// validator checks decoded operation payloads during batch processing.
	// Request-level validation of the REST surface lives in the validation
	// wrapper; this one exists because a payload failing validation must
	// fail its own operation, not the whole batch.
	validator validators.Validator

	// draftTTL is how long a saved draft stays retrievable. Zero disables
	// expiry stamping entirely.
	draftTTL time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewDraftService constructs a DraftService wired to the given repository
// and populated with draft lifecycle parameters from cfg.
func NewDraftService(draftRepository store.DraftRepository, cfg config.Drafts, logger *logger.Logger) DraftService {
	return &draftService{
		draftRepository: draftRepository,
		validator:       validators.NewDraftValidator(),
		draftTTL:        cfg.TTL,
		logger:          logger,
	}
}

// SaveDraft upserts a draft addressed by its draft key. Saving the same key
// twice overwrites the previous state; the denormalized summary columns and
// the expiry stamp are recomputed on every save.
func (s *draftService) SaveDraft(ctx context.Context, request models.SaveDraftRequest) (models.Draft, error) {
	log := logger.FromContext(ctx)

	draft, err := s.draftRepository.UpsertDraft(ctx, s.composeDraft(request, time.Now()))
	if err != nil {
		log.Err(err).Str("draft_key", request.DraftKey).Msg("draft upsert ended with error")
		return models.Draft{}, fmt.Errorf("draft upsert ended with error: %w", err)
	}

	return draft, nil
}

func (s *draftService) GetDraftByID(ctx context.Context, draftID int64) (models.Draft, error) {
	return s.draftRepository.GetDraftByID(ctx, draftID)
}

func (s *draftService) GetDraftByKey(ctx context.Context, draftKey string) (models.Draft, error) {
	return s.draftRepository.GetDraftByKey(ctx, draftKey)
}

// ListDrafts returns drafts matching the filter. A missing page size falls
// back to defaultListLimit; oversized requests are clamped to maxListLimit.
func (s *draftService) ListDrafts(ctx context.Context, filter models.ListDraftsFilter) ([]models.Draft, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	return s.draftRepository.ListDrafts(ctx, filter)
}

func (s *draftService) DeleteDraft(ctx context.Context, draftID int64) error {
	return s.draftRepository.DeleteDraft(ctx, draftID)
}

func (s *draftService) CompleteDraft(ctx context.Context, draftID int64, notes string) error {
	return s.draftRepository.CompleteDraft(ctx, draftID, notes)
}

// ProcessBatch replays a device's queued operations against storage.
//
// Every operation is handled independently and gets exactly one result:
//   - applied cleanly → Success.
//   - idempotency key already journaled → Success with "already applied";
//     replaying a confirmed operation must not produce a second effect.
//   - validation failure (wrong device, unknown type, malformed or invalid
//     payload) → failure with Retryable=false; the server will never accept
//     it, so the device should stop resending.
//   - storage failure → failure with Retryable set by the repository's
//     error classification.
func (s *draftService) ProcessBatch(ctx context.Context, request models.BatchSyncRequest) (models.BatchSyncResponse, error) {
	log := logger.FromContext(ctx)

	results := make([]models.OperationResult, 0, len(request.Operations))
	for _, op := range request.Operations {
		results = append(results, s.processOperation(ctx, request.DeviceID, op))
	}

	log.Debug().
		Str("device_id", request.DeviceID).
		Int("operations", len(request.Operations)).
		Msg("batch processed")

	return models.BatchSyncResponse{Results: results}, nil
}

// PendingOperations returns the applied-operations journal entries recorded
// for a device, newest first.
func (s *draftService) PendingOperations(ctx context.Context, deviceID string, limit int) ([]models.PendingOperation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return s.draftRepository.DeviceOperations(ctx, deviceID, limit)
}

// processOperation applies one queued operation and renders its verdict.
// The device scope check comes first: a batch may only carry operations
// queued by the device submitting it.
func (s *draftService) processOperation(ctx context.Context, batchDeviceID string, op models.PendingOperation) models.OperationResult {
	log := logger.FromContext(ctx)

	if op.DeviceID != batchDeviceID {
		log.Warn().
			Str("operation_id", op.ID).
			Str("operation_device", op.DeviceID).
			Str("batch_device", batchDeviceID).
			Msg("operation rejected: wrong device")
		return opFailure(op.ID, false, ErrValidationWrongDevice)
	}

	switch op.Type {
	case models.OpSaveDraft:
		return s.applySaveOperation(ctx, op)
	case models.OpDeleteDraft:
		return s.applyDeleteOperation(ctx, op)
	default:
		log.Warn().Str("operation_id", op.ID).Str("type", string(op.Type)).Msg("operation rejected: unknown type")
		return opFailure(op.ID, false, ErrValidationUnknownOperation)
	}
}

// applySaveOperation decodes and applies a queued draft save. The write and
// the journal insert share one transaction in the repository, so a replayed
// operation surfaces as ErrOperationAlreadyApplied and is acknowledged
// without touching the draft row again.
func (s *draftService) applySaveOperation(ctx context.Context, op models.PendingOperation) models.OperationResult {
	log := logger.FromContext(ctx)

	var request models.SaveDraftRequest
	if err := json.Unmarshal(op.Payload, &request); err != nil {
		log.Err(err).Str("operation_id", op.ID).Msg("malformed save_draft payload")
		return opFailure(op.ID, false, fmt.Errorf("malformed save_draft payload: %w", err))
	}

	if request.DeviceID != op.DeviceID {
		log.Warn().
			Str("operation_id", op.ID).
			Str("payload_device", request.DeviceID).
			Str("operation_device", op.DeviceID).
			Msg("save_draft payload names another device")
		return opFailure(op.ID, false, ErrValidationWrongDevice)
	}

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("operation_id", op.ID).Msg("save_draft operation failed validation")
		return opFailure(op.ID, false, err)
	}

	if _, err := s.draftRepository.ApplySaveDraft(ctx, op, s.composeDraft(request, time.Now())); err != nil {
		if errors.Is(err, store.ErrOperationAlreadyApplied) {
			return opSuccess(op.ID, "already applied")
		}
		log.Err(err).Str("operation_id", op.ID).Msg("save_draft operation failed in storage")
		return opFailure(op.ID, s.draftRepository.Retryable(err), err)
	}

	return opSuccess(op.ID, "")
}

// applyDeleteOperation decodes and applies a queued draft removal. Deleting
// a draft the server never stored still succeeds: the device's goal is the
// draft's absence, and that is already true.
func (s *draftService) applyDeleteOperation(ctx context.Context, op models.PendingOperation) models.OperationResult {
	log := logger.FromContext(ctx)

	var request models.DeleteDraftRequest
	if err := json.Unmarshal(op.Payload, &request); err != nil {
		log.Err(err).Str("operation_id", op.ID).Msg("malformed delete_draft payload")
		return opFailure(op.ID, false, fmt.Errorf("malformed delete_draft payload: %w", err))
	}

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("operation_id", op.ID).Msg("delete_draft operation failed validation")
		return opFailure(op.ID, false, err)
	}

	deviceID, _, _, err := models.ParseDraftKey(request.DraftKey)
	if err != nil {
		return opFailure(op.ID, false, validators.ErrMalformedDraftKey)
	}
	if deviceID != op.DeviceID {
		log.Warn().
			Str("operation_id", op.ID).
			Str("key_device", deviceID).
			Str("operation_device", op.DeviceID).
			Msg("delete_draft key names another device")
		return opFailure(op.ID, false, ErrValidationWrongDevice)
	}

	if err := s.draftRepository.ApplyDeleteDraft(ctx, op, request.DraftKey); err != nil {
		if errors.Is(err, store.ErrOperationAlreadyApplied) {
			return opSuccess(op.ID, "already applied")
		}
		log.Err(err).Str("operation_id", op.ID).Msg("delete_draft operation failed in storage")
		return opFailure(op.ID, s.draftRepository.Retryable(err), err)
	}

	return opSuccess(op.ID, "")
}

// composeDraft builds the persistence model for a save request: summary
// columns denormalized from the payload, save timestamp, and the expiry
// stamp when a TTL is configured.
func (s *draftService) composeDraft(request models.SaveDraftRequest, now time.Time) models.Draft {
	itemCount, totalCents, customerName := request.Payload.Summary()

	draft := models.Draft{
		DraftKey:     request.DraftKey,
		DraftType:    request.DraftType,
		DeviceID:     request.DeviceID,
		RegisterID:   request.RegisterID,
		UserID:       request.UserID,
		Payload:      request.Payload,
		ItemCount:    itemCount,
		TotalCents:   totalCents,
		CustomerName: customerName,
		SavedAt:      now,
	}

	if s.draftTTL > 0 {
		expiresAt := now.Add(s.draftTTL)
		draft.ExpiresAt = &expiresAt
	}

	return draft
}

func opSuccess(opID, message string) models.OperationResult {
	return models.OperationResult{ID: opID, Success: true, Message: message}
}

func opFailure(opID string, retryable bool, err error) models.OperationResult {
	return models.OperationResult{ID: opID, Success: false, Retryable: retryable, Message: err.Error()}
}
