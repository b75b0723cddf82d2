package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router with the full middleware chain and route tree.
//
// MethodNotAllowed is installed before any route group: chi propagates the
// handler into subrouters at mount time, so it has to be in place before
// Route("/drafts") runs. CheckHTTPMethod turns 405 into 404 so unsupported
// methods do not leak which routes exist.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(withGZip)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/ping", h.ping)
		r.Get("/api/version", h.getServerVersion)
	})

	// draft routes, register token required. Auth is attached per endpoint
	// with With, not with a group-level Use: a group would bake auth into
	// the /drafts mount and run it before the subrouter resolves the
	// method, turning a wrong-verb probe into a revealing 401. The {id}
	// segment is constrained to digits so a path like /drafts/sync can
	// never fall back onto the id routes under another verb.
	router.Route("/drafts", func(r chi.Router) {
		authed := r.With(h.auth)

		authed.Post("/", h.saveDraft)
		authed.Get("/", h.listDrafts)
		authed.Get("/{id:[0-9]+}", h.getDraftByID)
		authed.Delete("/{id:[0-9]+}", h.deleteDraft)
		authed.Post("/{id:[0-9]+}/complete", h.completeDraft)
		authed.Get("/key/{key}", h.getDraftByKey)

		authed.With(h.batchIntegrity).Post("/sync", h.batchSync)
		authed.Get("/sync/pending", h.pendingOperations)
	})

	return router
}
