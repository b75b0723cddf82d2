package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cart-keeper/internal/service"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
	"github.com/MKhiriev/go-cart-keeper/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:                   http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid:               http.StatusUnauthorized,
	service.ErrValidationNoUserID:                    http.StatusBadRequest,
	service.ErrUnauthorizedAccessToDifferentUserData: http.StatusForbidden,
	service.ErrValidationWrongDevice:                 http.StatusForbidden,
	service.ErrValidationUnknownOperation:            http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:                 http.StatusBadRequest,

	validators.ErrInvalidUserID:     http.StatusBadRequest,
	validators.ErrNoDraftKey:        http.StatusBadRequest,
	validators.ErrMalformedDraftKey: http.StatusBadRequest,
	validators.ErrKeyMismatch:       http.StatusBadRequest,
	validators.ErrNoDeviceID:        http.StatusBadRequest,
	validators.ErrInvalidDraftType:  http.StatusBadRequest,
	validators.ErrPayloadTooLarge:   http.StatusRequestEntityTooLarge,
	validators.ErrNoOperations:      http.StatusBadRequest,
	validators.ErrNoOperationID:     http.StatusBadRequest,
	validators.ErrInvalidLimit:      http.StatusBadRequest,
	validators.ErrInvalidOffset:     http.StatusBadRequest,

	store.ErrDraftNotFound:           http.StatusNotFound,
	store.ErrDraftNotSaved:           http.StatusInternalServerError,
	store.ErrOperationAlreadyApplied: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
