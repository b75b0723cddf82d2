package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-cart-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldDraftKey targets the stable draft identity "<device>:<user>:<type>".
	FieldDraftKey = "draft_key"

	// FieldDraftType targets the semantic draft purpose (sale or quote).
	FieldDraftType = "draft_type"

	// FieldDeviceID targets the durable register device identifier.
	FieldDeviceID = "device_id"

	// FieldUserID targets the clerk identifier of a draft or request.
	FieldUserID = "user_id"

	// FieldPayload targets the serialized cart payload and enforces the
	// size ceiling on its JSON form.
	FieldPayload = "payload"

	// FieldKeyConsistency enforces that the draft key parses and that its
	// components agree with the request's device, user, and type fields.
	FieldKeyConsistency = "draft key consistency"

	// FieldOperations targets the pending-operation list of a batch
	// sync request.
	FieldOperations = "operations"

	// FieldLimit targets the page-size field of a list filter.
	FieldLimit = "limit"

	// FieldOffset targets the pagination offset field of a list filter.
	FieldOffset = "offset"
)

// maxDraftPayloadBytes caps the serialized payload accepted for one draft.
// A register cart that does not fit here is corrupt, not large.
const maxDraftPayloadBytes = 1 << 20

// allowedDraftTypes is the exhaustive set of DraftType values accepted by
// the validator. Any DraftType not present in this slice is considered
// invalid.
var allowedDraftTypes = []models.DraftType{
	models.DraftTypeSale,
	models.DraftTypeQuote,
}

// DraftValidator implements the Validator interface for all draft-related
// request models: SaveDraftRequest, ListDraftsFilter, BatchSyncRequest,
// and DeleteDraftRequest.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type DraftValidator struct {
}

// NewDraftValidator constructs a new DraftValidator
// and returns it as the Validator interface.
func NewDraftValidator() Validator {
	return &DraftValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.SaveDraftRequest / *models.SaveDraftRequest
//   - models.ListDraftsFilter / *models.ListDraftsFilter
//   - models.BatchSyncRequest / *models.BatchSyncRequest
//   - models.DeleteDraftRequest / *models.DeleteDraftRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *DraftValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SaveDraftRequest:
		return v.validateSaveDraftRequest(ctx, value, fields...)
	case *models.SaveDraftRequest:
		return v.validateSaveDraftRequest(ctx, *value, fields...)

	case models.ListDraftsFilter:
		return v.validateListDraftsFilter(ctx, value, fields...)
	case *models.ListDraftsFilter:
		return v.validateListDraftsFilter(ctx, *value, fields...)

	case models.BatchSyncRequest:
		return v.validateBatchSyncRequest(ctx, value, fields...)
	case *models.BatchSyncRequest:
		return v.validateBatchSyncRequest(ctx, *value, fields...)

	case models.DeleteDraftRequest:
		return v.validateDeleteDraftRequest(ctx, value, fields...)
	case *models.DeleteDraftRequest:
		return v.validateDeleteDraftRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// isValidDraftType reports whether dt is one of the recognized DraftType
// values defined in allowedDraftTypes.
func isValidDraftType(dt models.DraftType) bool {
	for _, t := range allowedDraftTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// validateSaveDraftRequest validates a draft upsert request.
//
// Default validated fields (when none specified):
// DraftKey, DraftType, DeviceID, UserID, KeyConsistency, Payload.
//
// FieldKeyConsistency parses the draft key and requires its components to
// equal the request's DeviceID, UserID, and DraftType, so a register cannot
// write a row under another device's identity by lying in the key.
//
// FieldPayload measures the payload in its serialized form, the same bytes
// the draft row stores.
//
// Returns the first encountered validation error or nil.
func (v *DraftValidator) validateSaveDraftRequest(ctx context.Context, request models.SaveDraftRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDraftKey, FieldDraftType, FieldDeviceID, FieldUserID, FieldKeyConsistency, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldDraftKey:
			if request.DraftKey == "" {
				return ErrNoDraftKey
			}
		case FieldDraftType:
			if !isValidDraftType(request.DraftType) {
				return ErrInvalidDraftType
			}
		case FieldDeviceID:
			if request.DeviceID == "" {
				return ErrNoDeviceID
			}
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldKeyConsistency:
			deviceID, userID, draftType, err := models.ParseDraftKey(request.DraftKey)
			if err != nil {
				return ErrMalformedDraftKey
			}
			if deviceID != request.DeviceID || userID != request.UserID || draftType != request.DraftType {
				return ErrKeyMismatch
			}
		case FieldPayload:
			if raw, err := json.Marshal(request.Payload); err != nil || len(raw) > maxDraftPayloadBytes {
				return ErrPayloadTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateListDraftsFilter validates the filter of a draft listing request.
//
// Default validated fields: DraftType, Limit, Offset.
//
// An empty DraftType means "no constraint" and passes; a non-empty value
// must be one of the allowed draft types. Limit zero means "server default"
// and passes; negative values are rejected.
func (v *DraftValidator) validateListDraftsFilter(ctx context.Context, filter models.ListDraftsFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDraftType, FieldLimit, FieldOffset}
	}

	for _, f := range fields {
		switch f {
		case FieldDraftType:
			if filter.DraftType != "" && !isValidDraftType(filter.DraftType) {
				return ErrInvalidDraftType
			}
		case FieldLimit:
			if filter.Limit < 0 {
				return ErrInvalidLimit
			}
		case FieldOffset:
			if filter.Offset < 0 {
				return ErrInvalidOffset
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateBatchSyncRequest validates the envelope of a batch sync request.
//
// Default validated fields: DeviceID, Operations.
//
// When FieldOperations is validated, every queued operation must carry a
// non-empty ID: results are addressed back to the device by operation id,
// so an operation without one could never be acknowledged. Whether each
// operation's payload is acceptable is deliberately not checked here; a bad
// payload fails that one operation, not the whole batch.
//
// Returns a wrapped error indicating the index of the first invalid
// operation.
func (v *DraftValidator) validateBatchSyncRequest(ctx context.Context, request models.BatchSyncRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDeviceID, FieldOperations}
	}

	for _, f := range fields {
		switch f {
		case FieldDeviceID:
			if request.DeviceID == "" {
				return ErrNoDeviceID
			}
		case FieldOperations:
			if len(request.Operations) == 0 {
				return ErrNoOperations
			}
			for i, op := range request.Operations {
				if op.ID == "" {
					return fmt.Errorf("validation error at index %d: %w", i, ErrNoOperationID)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateDeleteDraftRequest validates a queued draft removal request.
//
// Default validated fields: DraftKey, KeyConsistency.
//
// The delete payload addresses the draft by key rather than server id, so
// KeyConsistency here only requires the key to parse; there are no envelope
// components to compare against.
func (v *DraftValidator) validateDeleteDraftRequest(ctx context.Context, request models.DeleteDraftRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDraftKey, FieldKeyConsistency}
	}

	for _, f := range fields {
		switch f {
		case FieldDraftKey:
			if request.DraftKey == "" {
				return ErrNoDraftKey
			}
		case FieldKeyConsistency:
			if _, _, _, err := models.ParseDraftKey(request.DraftKey); err != nil {
				return ErrMalformedDraftKey
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
