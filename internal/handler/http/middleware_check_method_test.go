package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// draftRouter мини-копия маршрутов сервиса без Handler.Init(),
// чтобы не тянуть сервисы и логгер в тесты одной middleware.
func draftRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/drafts", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[]"))
	})
	router.Post("/drafts", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Post("/drafts/sync", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Delete("/purge", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	return router
}

func probe(t *testing.T, router *chi.Mux, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestCheckHTTPMethod_RouteVisibility(t *testing.T) {
	router := draftRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		// Зарегистрированные комбинации проходят к обработчику.
		{"GET /drafts passes", http.MethodGet, "/drafts", http.StatusOK},
		{"POST /drafts passes", http.MethodPost, "/drafts", http.StatusCreated},
		{"POST /drafts/sync passes", http.MethodPost, "/drafts/sync", http.StatusOK},
		{"GET /ping passes", http.MethodGet, "/ping", http.StatusOK},
		{"DELETE /purge passes", http.MethodDelete, "/purge", http.StatusNoContent},

		// Существующий путь + чужой метод: 404, маршрут не раскрываем.
		{"DELETE /drafts hidden", http.MethodDelete, "/drafts", http.StatusNotFound},
		{"PATCH /drafts hidden", http.MethodPatch, "/drafts", http.StatusNotFound},
		{"GET /drafts/sync hidden", http.MethodGet, "/drafts/sync", http.StatusNotFound},
		{"POST /ping hidden", http.MethodPost, "/ping", http.StatusNotFound},
		{"GET /purge hidden", http.MethodGet, "/purge", http.StatusNotFound},

		// Несуществующий путь: chi отвечает 404 сам, до MethodNotAllowed.
		{"unknown path", http.MethodGet, "/drafts/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, probe(t, router, tt.method, tt.path).Code)
		})
	}
}

func TestCheckHTTPMethod_PassThroughKeepsBody(t *testing.T) {
	rr := probe(t, draftRouter(), http.MethodGet, "/drafts")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestCheckHTTPMethod_Never405(t *testing.T) {
	router := draftRouter()

	for _, method := range []string{
		http.MethodDelete,
		http.MethodPatch,
		http.MethodOptions,
		http.MethodHead,
	} {
		t.Run(method+" /drafts", func(t *testing.T) {
			rr := probe(t, router, method, "/drafts")

			assert.Equal(t, http.StatusNotFound, rr.Code,
				"wrong verb must get 404, not 405")
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_ParameterisedRouteHidden(t *testing.T) {
	router := chi.NewRouter()
	router.Delete("/drafts/{draftId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	// Правильный метод обслуживается обычным конвейером chi.
	assert.Equal(t, http.StatusNoContent, probe(t, router, http.MethodDelete, "/drafts/7").Code)

	// Чужой метод: паттерн с {draftId} не равен конкретному пути — 404.
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPost} {
		t.Run("wrong: "+method, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, probe(t, router, method, "/drafts/7").Code)
		})
	}
}

func TestCheckHTTPMethod_SingleMethodRoute(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/drafts/pending/reg-1", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	assert.Equal(t, http.StatusOK, probe(t, router, http.MethodGet, "/drafts/pending/reg-1").Code)

	for _, method := range []string{
		http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodOptions,
	} {
		t.Run("wrong: "+method, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, probe(t, router, method, "/drafts/pending/reg-1").Code)
		})
	}
}

func TestCheckHTTPMethod_MultiMethodRoute(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/drafts", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Post("/drafts", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })
	router.Delete("/drafts", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	router.MethodNotAllowed(CheckHTTPMethod(router))

	registered := map[string]int{
		http.MethodGet:    http.StatusOK,
		http.MethodPost:   http.StatusCreated,
		http.MethodDelete: http.StatusNoContent,
	}
	for method, wantStatus := range registered {
		t.Run("registered: "+method, func(t *testing.T) {
			assert.Equal(t, wantStatus, probe(t, router, method, "/drafts").Code)
		})
	}

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodOptions} {
		t.Run("unregistered: "+method, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, probe(t, router, method, "/drafts").Code)
		})
	}
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := draftRouter()
	const n = 50
	got := make(chan int, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			method := http.MethodGet
			if i%2 == 1 {
				method = http.MethodDelete // не зарегистрирован на /drafts
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(method, "/drafts", nil))
			got <- rr.Code
		}(i)
	}

	for i := 0; i < n; i++ {
		code := <-got
		assert.True(t, code == http.StatusOK || code == http.StatusNotFound,
			"unexpected status code: %d", code)
	}
}
