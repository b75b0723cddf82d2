package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenIsExpiredOrInvalid is the normalised verdict for any token
	// that fails signature, issuer, or expiry checks.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrVersionIsNotSpecified is returned when the app info service is
	// constructed without a build version to report.
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrEmptyCart is returned when a hold is requested for a cart that
	// carries no items and no customer.
	ErrEmptyCart = errors.New("cannot hold an empty cart")

	// ErrCartNotEmpty is returned when a hold release would overwrite a
	// working cart that still has content.
	ErrCartNotEmpty = errors.New("working cart is not empty")

	// ErrHoldNotFound is returned when a hold id does not match any parked
	// transaction.
	ErrHoldNotFound = errors.New("held transaction not found")
)

// Validation sentinels of the server-side draft service. Handlers map them
// to 4xx responses; batch-sync marks operations failing validation as
// non-retryable.
var (
	ErrValidationNoUserID                    = errors.New("no user id in request context")
	ErrUnauthorizedAccessToDifferentUserData = errors.New("unauthorized access to another user's data")
	ErrValidationWrongDevice                 = errors.New("operation belongs to another device")
	ErrValidationUnknownOperation            = errors.New("unknown operation type")
)
