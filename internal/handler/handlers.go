package handler

import (
	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/handler/http"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
)

// Handlers groups the transports the draft service exposes. Today that is
// the HTTP REST surface the registers sync through.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds a handler for every transport with a configured listen
// address. A config that yields none is a deployment mistake — a draft
// service nothing can reach strands the whole fleet — so construction fails
// instead of starting silently.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
