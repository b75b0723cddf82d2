package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
	"github.com/MKhiriev/go-cart-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func newIntegrityMiddleware(next http.Handler) http.Handler {
	h := &Handler{
		logger:   logger.Nop(),
		services: &service.Services{},
	}
	return h.batchIntegrity(next)
}

func makeBatchBody(t *testing.T, deviceID string, opID string) []byte {
	t.Helper()
	body, err := json.Marshal(models.BatchSyncRequest{
		DeviceID: deviceID,
		Operations: []models.PendingOperation{
			{ID: opID, Type: models.OpSaveDraft, DeviceID: deviceID, Payload: json.RawMessage(`{}`)},
		},
	})
	require.NoError(t, err)
	return body
}

// --- batchIntegrity tests ---

func TestBatchIntegrity_TableTest(t *testing.T) {
	validBody := makeBatchBody(t, "reg-7", "op-1")
	validHash := utils.HashHex(validBody)

	tests := []struct {
		name           string
		body           []byte
		hash           string // значение X-Content-Hash; пустая строка — заголовок не ставится
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "matching hash",
			body:           validBody,
			hash:           validHash,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "matching hash in uppercase hex",
			body:           validBody,
			hash:           strings.ToUpper(validHash),
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "no header passes through unchecked",
			body:           validBody,
			hash:           "",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "wrong hash value",
			body:           validBody,
			hash:           "0000000000000000000000000000000000000000000000000000000000000000",
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
		{
			name:           "hash of a different body",
			body:           validBody,
			hash:           utils.HashHex(makeBatchBody(t, "reg-7", "op-2")),
			expectedStatus: http.StatusBadRequest,
			expectNext:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			middleware := newIntegrityMiddleware(next)
			req := httptest.NewRequest(http.MethodPost, "/drafts/sync", bytes.NewReader(tt.body))
			if tt.hash != "" {
				req.Header.Set("X-Content-Hash", tt.hash)
			}
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			if tt.expectedStatus == http.StatusBadRequest {
				assert.Contains(t, rr.Body.String(), "Integrity check failed")
			}
		})
	}
}

func TestBatchIntegrity_MultipleSequentialRequests(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := newIntegrityMiddleware(next)

	for i := 0; i < 5; i++ {
		body := makeBatchBody(t, "reg-7", "op-"+string(rune('a'+i)))
		req := httptest.NewRequest(http.MethodPost, "/drafts/sync", bytes.NewReader(body))
		req.Header.Set("X-Content-Hash", utils.HashHex(body))
		rr := httptest.NewRecorder()
		middleware.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "request %d failed", i)
	}
}

func TestBatchIntegrity_ConcurrentRequests(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := newIntegrityMiddleware(next)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			body := makeBatchBody(t, "reg-7", "op-"+string(rune('a'+i%26)))
			req := httptest.NewRequest(http.MethodPost, "/drafts/sync", bytes.NewReader(body))
			req.Header.Set("X-Content-Hash", utils.HashHex(body))
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code, "goroutine %d failed", i)
		}(i)
	}

	wg.Wait()
}

func TestBatchIntegrity_BodyRestoredForNextHandler(t *testing.T) {
	originalBody := makeBatchBody(t, "reg-7", "op-1")

	var bodyReadByNext []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Middleware must restore the body; read it twice.
		b1, err := io.ReadAll(r.Body)
		require.NoError(t, err, "first read failed")

		// Second read should be empty (NopCloser does not rewind).
		b2, err := io.ReadAll(r.Body)
		require.NoError(t, err, "second read failed")
		assert.Empty(t, b2, "second read should be empty")

		bodyReadByNext = b1
		w.WriteHeader(http.StatusOK)
	})

	middleware := newIntegrityMiddleware(next)
	req := httptest.NewRequest(http.MethodPost, "/drafts/sync", bytes.NewReader(originalBody))
	req.Header.Set("X-Content-Hash", utils.HashHex(originalBody))
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, originalBody, bodyReadByNext, "next handler should receive full original body")
}
