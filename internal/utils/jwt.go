package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-cart-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken issues the HMAC-SHA256 bearer token a register is
// provisioned with. The subject claim carries userID in decimal form,
// "iat" is the current time and "exp" is tokenDuration from now.
//
// The ops tooling that prepares registers calls this; the draft service
// itself never issues tokens, it only verifies them.
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("issuer, token duration and sign key are all required")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("sign token: %w", err)
	}

	return models.Token{Token: token, SignedString: signed}, nil
}

// ValidateAndParseJWTToken verifies the signature, issuer and expiry of a raw
// bearer token and resolves the owning user id from the subject claim.
//
// Expired tokens, wrong issuers and bad signatures all surface as parse
// errors; callers normally collapse them into a single "invalid token"
// response rather than leaking which check failed.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(*jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("validate token: %w", err)
	}

	claims, ok := parsed.Claims.(*models.Token)
	if !ok {
		return models.Token{}, errors.New("unexpected claims type in parsed token")
	}

	userID, err := claims.GetUserID()
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Token: parsed, UserID: userID}, nil
}

// ParseUserIDFromJWT extracts the user id from the token's subject claim
// without verifying the signature. The register uses it to learn whose
// drafts it keeps from its own provisioned token; verification is the
// server's job on every request.
func ParseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
