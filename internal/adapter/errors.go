package adapter

import "errors"

var (
	// ErrUnauthorized maps HTTP 401: the bearer token is missing, expired
	// or rejected.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound maps HTTP 404 for operations where absence is an error.
	// Fetch-by-id and fetch-by-key convert 404 to a nil draft instead.
	ErrNotFound = errors.New("draft not found")

	// ErrValidation maps the remaining 4xx family: the server understood
	// the request and will never accept it. Not retryable.
	ErrValidation = errors.New("request rejected by server")

	// ErrConflict maps HTTP 409.
	ErrConflict = errors.New("draft conflict")

	// ErrServerUnavailable maps the 5xx family: the draft service is
	// temporarily unable to answer. Retryable.
	ErrServerUnavailable = errors.New("draft service unavailable")
)
