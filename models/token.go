package models

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token is the bearer credential a register presents on every request.
//
// It doubles as the JWT claims object: embedding jwt.RegisteredClaims lets
// jwt.ParseWithClaims decode straight into it, and the embedded *jwt.Token
// keeps the low-level handle around for signing. Only SignedString ever
// leaves the process; everything else is server-side state.
type Token struct {
	// Token is the underlying JWT handle used for signing and inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims carries the standard RFC 7519 claim set. The "sub"
	// claim holds the owning user's id in decimal form.
	jwt.RegisteredClaims

	// SignedString is the compact JWS form (header.payload.signature)
	// handed to registers at provisioning time.
	SignedString string `json:"-"`

	// UserID caches the parsed "sub" claim so handlers do not re-parse
	// it on every request.
	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a decimal int64 user id.
func (t *Token) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("token has no subject: %w", err)
	}
	if sub == "" {
		return 0, errors.New("token subject is empty")
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token subject %q is not a user id: %w", sub, err)
	}
	return id, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
