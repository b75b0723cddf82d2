package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/models"
)

type mockTokenService struct {
	parseTokenFn func(ctx context.Context, s string) (models.Token, error)
}

func (m *mockTokenService) ParseToken(ctx context.Context, s string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, s)
	}
	return models.Token{}, nil
}

func authHandler(parse func(ctx context.Context, s string) (models.Token, error)) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: &service.Services{TokenService: &mockTokenService{parseTokenFn: parse}},
	}
}

// acceptClerk возвращает ParseToken-заглушку, пропускающую любой токен
// от имени заданного кассира.
func acceptClerk(userID int64) func(ctx context.Context, s string) (models.Token, error) {
	return func(_ context.Context, _ string) (models.Token, error) {
		return models.Token{UserID: userID}, nil
	}
}

// authRequest прогоняет запрос через auth middleware. Заголовки задаются
// парами ключ-значение, nop-логгер кладётся в контекст как это делает
// withTraceID в боевой цепочке.
func authRequest(h *Handler, next http.Handler, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/drafts", nil)
	req = req.WithContext(logger.Nop().Logger.WithContext(req.Context()))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func okNext() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "bearer token", header: "Bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "scheme without token", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty value", header: "", wantErr: ErrInvalidAuthorizationHeader},
		{name: "trailing space only", header: "Bearer ", wantErr: ErrEmptyToken},
		{name: "single space", header: " ", wantErr: ErrEmptyToken},
		// Схема не проверяется: извлекается вторая часть как есть.
		{name: "non-bearer scheme", header: "Basic dXNlcjpwYXNz", wantToken: "dXNlcjpwYXNz"},
		{name: "extra parts ignored", header: "Bearer token extra-part", wantToken: "token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// TestAuth_RejectsBeforeParse: сломанный заголовок отбрасывается до обращения
// к TokenService, и тело 401 называет причину.
func TestAuth_RejectsBeforeParse(t *testing.T) {
	h := authHandler(func(_ context.Context, _ string) (models.Token, error) {
		t.Fatal("ParseToken must not be called")
		return models.Token{}, nil
	})

	tests := []struct {
		name     string
		headers  []string
		wantBody string
	}{
		{"no header", nil, ErrEmptyAuthorizationHeader.Error()},
		{"no space in value", []string{"Authorization", "BearerTokenWithoutSpace"}, ErrInvalidAuthorizationHeader.Error()},
		{"blank token", []string{"Authorization", "Bearer "}, ErrEmptyToken.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := authRequest(h, okNext(), tt.headers...)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestAuth_ValidTokenPutsClerkInContext(t *testing.T) {
	h := authHandler(acceptClerk(42))

	var gotUserID int64
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, found = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := authRequest(h, next, "Authorization", "Bearer valid-token")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, found)
	assert.EqualValues(t, 42, gotUserID)
}

func TestAuth_ExpiredToken(t *testing.T) {
	h := authHandler(func(_ context.Context, _ string) (models.Token, error) {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	})

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		nextCalled = true
	})

	rr := authRequest(h, next, "Authorization", "Bearer expired-token")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), service.ErrTokenIsExpiredOrInvalid.Error())
	assert.False(t, nextCalled)
}

// TestAuth_UnexpectedParseError: не-sentinel ошибка парсинга не протекает в
// тело ответа — регистр видит голый 401.
func TestAuth_UnexpectedParseError(t *testing.T) {
	h := authHandler(func(_ context.Context, _ string) (models.Token, error) {
		return models.Token{}, assert.AnError
	})

	rr := authRequest(h, okNext(), "Authorization", "Bearer strange-token")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotContains(t, rr.Body.String(), assert.AnError.Error())
	assert.Contains(t, rr.Body.String(), http.StatusText(http.StatusUnauthorized))
}

func TestAuth_DeviceIDInContext(t *testing.T) {
	h := authHandler(acceptClerk(1))

	capture := func(dst *string, found *bool) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*dst, *found = utils.GetDeviceIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("header present", func(t *testing.T) {
		var deviceID string
		var found bool

		rr := authRequest(h, capture(&deviceID, &found),
			"Authorization", "Bearer token",
			"X-Device-ID", "reg-42-device",
		)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, found)
		assert.Equal(t, "reg-42-device", deviceID)
	})

	t.Run("header absent", func(t *testing.T) {
		var deviceID string
		var found bool

		rr := authRequest(h, capture(&deviceID, &found), "Authorization", "Bearer token")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, found)
	})

	t.Run("whitespace header treated as absent", func(t *testing.T) {
		var deviceID string
		var found bool

		rr := authRequest(h, capture(&deviceID, &found),
			"Authorization", "Bearer token",
			"X-Device-ID", "   ",
		)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, found)
	})
}

func TestAuth_OriginalRequestNotMutated(t *testing.T) {
	h := authHandler(acceptClerk(1))

	req := httptest.NewRequest(http.MethodGet, "/drafts", nil)
	req = req.WithContext(logger.Nop().Logger.WithContext(req.Context()))
	req.Header.Set("Authorization", "Bearer token")
	originalCtx := req.Context()

	rr := httptest.NewRecorder()
	h.auth(okNext()).ServeHTTP(rr, req)

	// Кассирский id живёт в производном контексте — исходный запрос не трогаем.
	assert.Equal(t, originalCtx, req.Context())
}

func TestAuth_ConcurrentRequests(t *testing.T) {
	h := authHandler(acceptClerk(7))
	middleware := h.auth(okNext())

	const n = 50
	done := make(chan int, n)

	for i := 0; i < n; i++ {
		go func() {
			req := httptest.NewRequest(http.MethodGet, "/drafts", nil)
			req = req.WithContext(logger.Nop().Logger.WithContext(req.Context()))
			req.Header.Set("Authorization", "Bearer concurrent-token")
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)
			done <- rr.Code
		}()
	}

	for i := 0; i < n; i++ {
		assert.Equal(t, http.StatusOK, <-done)
	}
}
