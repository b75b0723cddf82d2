package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrNoDraftKey        = errors.New("draft key is required")
	ErrMalformedDraftKey = errors.New("malformed draft key")
	ErrKeyMismatch       = errors.New("draft key does not match its components")
	ErrNoDeviceID        = errors.New("device id is required")
	ErrInvalidDraftType  = errors.New("invalid draft type")
	ErrPayloadTooLarge   = errors.New("draft payload exceeds size limit")
	ErrNoOperations      = errors.New("operations list cannot be empty")
	ErrNoOperationID     = errors.New("operation id is required")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrInvalidOffset     = errors.New("invalid offset")
)
