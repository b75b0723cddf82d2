package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
)

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
	assert.NotSame(t, h, NewHandler(svc, log))
}

// testRouter собирает полный роутер с заглушкой версии, чтобы
// GET /api/version не падал на пустом сервисном слое.
func testRouter(t *testing.T) *chi.Mux {
	t.Helper()

	h := NewHandler(&service.Services{
		AppInfoService: &mockAppInfoService{version: "test-version"},
	}, logger.Nop())

	router := h.Init()
	require.NotNil(t, router)
	return router
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := testRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		// открытые маршруты — обрабатываются сразу
		{http.MethodGet, "/ping"},
		{http.MethodGet, "/api/version"},
		// маршруты черновиков: auth вернёт 401, но не 404/405 —
		// этого достаточно, чтобы убедиться, что маршрут зарегистрирован
		{http.MethodPost, "/drafts"},
		{http.MethodGet, "/drafts"},
		{http.MethodGet, "/drafts/1"},
		{http.MethodDelete, "/drafts/1"},
		{http.MethodPost, "/drafts/1/complete"},
		{http.MethodGet, "/drafts/key/device-1:42:sale_draft"},
		{http.MethodPost, "/drafts/sync"},
		{http.MethodGet, "/drafts/sync/pending"},
	}

	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.NotEqual(t, http.StatusNotFound, rec.Code,
				"route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code,
				"method not allowed: %s %s", tc.method, tc.path)
		})
	}
}

// TestInit_UnknownLooksLikeWrongMethod: снаружи не отличить несуществующий
// маршрут от существующего с неверным методом — оба отвечают 404.
func TestInit_UnknownLooksLikeWrongMethod(t *testing.T) {
	router := testRouter(t)

	probes := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown path", http.MethodGet, "/api/nonexistent"},
		{"wrong method on open route", http.MethodPost, "/api/version"},
		{"wrong method on draft route", http.MethodPatch, "/drafts"},
	}

	for _, tc := range probes {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}
