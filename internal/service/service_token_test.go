package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTokenIssuer  = "draft-service"
	testTokenSignKey = "test-sign-key"
)

func newTestTokenService() TokenService {
	cfg := config.App{
		TokenSignKey: testTokenSignKey,
		TokenIssuer:  testTokenIssuer,
	}
	return NewTokenService(cfg, logger.Nop())
}

func mintToken(t *testing.T, issuer, signKey string, userID int64, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(issuer, userID, ttl, signKey)
	require.NoError(t, err)
	return token.SignedString
}

// ─────────────────────────────────────────────
// ParseToken
// ─────────────────────────────────────────────

func TestTokenService_ParseToken_Success(t *testing.T) {
	svc := newTestTokenService()
	raw := mintToken(t, testTokenIssuer, testTokenSignKey, 42, time.Hour)

	token, err := svc.ParseToken(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
}

func TestTokenService_ParseToken_WrongSignKey(t *testing.T) {
	svc := newTestTokenService()
	raw := mintToken(t, testTokenIssuer, "another-sign-key", 42, time.Hour)

	_, err := svc.ParseToken(context.Background(), raw)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_ParseToken_WrongIssuer(t *testing.T) {
	svc := newTestTokenService()
	raw := mintToken(t, "some-other-service", testTokenSignKey, 42, time.Hour)

	_, err := svc.ParseToken(context.Background(), raw)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_ParseToken_Expired(t *testing.T) {
	svc := newTestTokenService()
	raw := mintToken(t, testTokenIssuer, testTokenSignKey, 42, -time.Minute)

	_, err := svc.ParseToken(context.Background(), raw)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestTokenService_ParseToken_Garbage(t *testing.T) {
	svc := newTestTokenService()

	_, err := svc.ParseToken(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
