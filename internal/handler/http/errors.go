package http

import "errors"

// Errors the auth middleware reports when a register's request carries a
// broken "Authorization" header. They surface in the 401 body, so a tech
// looking at the register log can tell a missing token from a mangled one.
var (
	// ErrEmptyAuthorizationHeader — header absent from the request.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader — header present but not two
	// space-separated parts, so there is no token value to extract.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken — scheme prefix present, token value blank.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
