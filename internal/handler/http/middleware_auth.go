package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
)

// deviceIDHeader carries the register's device identifier on authenticated
// requests. The auth middleware copies it into the request context so
// handlers can scope queries per device without extra parameters.
const deviceIDHeader = "X-Device-ID"

// auth guards the draft routes. The register presents its provisioned JWT in
// the "Authorization" header; the middleware extracts the bearer token, has
// [service.TokenService] verify it and puts the clerk id into the request
// context under [utils.UserIDCtxKey]. An X-Device-ID header, when present,
// lands under [utils.DeviceIDCtxKey] the same way.
//
// Any failure — missing header, mangled value, expired or forged token —
// answers 401. The register treats a 401 as "keep queueing offline, ask for
// re-provisioning", so the body carries the sentinel error text to make the
// reason visible in the register's log.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.ParseToken(ctx, tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
				log.Err(err).Msg("token expired or invalid")
				http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
				return
			}
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// downstream handlers read the clerk id from the context instead of
		// re-parsing the token
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		if deviceID := strings.TrimSpace(r.Header.Get(deviceIDHeader)); deviceID != "" {
			ctx = context.WithValue(ctx, utils.DeviceIDCtxKey, deviceID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader pulls the token out of an "Authorization: <scheme>
// <token>" value. The scheme prefix itself is not enforced — provisioning
// only ever issues Bearer tokens. Returns [ErrInvalidAuthorizationHeader]
// when there is no second part and [ErrEmptyToken] when it is blank.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
