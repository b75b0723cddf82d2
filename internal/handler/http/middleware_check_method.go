package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod builds the handler installed via [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a request path matches a registered route but the
// method does not. The draft service answers 404 instead: probing an endpoint
// with the wrong verb must not confirm the endpoint exists. If the method
// turns out to be registered after all, the request is handed back to the
// router's normal pipeline.
//
// Install it after all routes are registered:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if !methodRegistered(router, r.Method, r.URL.Path) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		router.ServeHTTP(w, r)
	}
}

// methodRegistered reports whether the route whose pattern literally equals
// path handles method. Parameterised patterns never compare equal to a
// concrete path, so wrong-verb probes of those routes land on 404 as well.
func methodRegistered(router *chi.Mux, method, path string) bool {
	for _, route := range router.Routes() {
		if route.Pattern == path {
			_, ok := route.Handlers[method]
			return ok
		}
	}
	return false
}
