package http

import (
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
)

// Handler is the HTTP surface of the draft service. Every route is a method
// on it; draft semantics live in the service layer behind it.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

// NewHandler wires the service layer into an HTTP handler. Routes are not
// live until [Handler.Init] builds the router.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
