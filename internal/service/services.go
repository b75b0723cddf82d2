package service

import (
	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
)

type Services struct {
	DraftService   DraftService
	TokenService   TokenService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	draftService := NewDraftService(storages.DraftRepository, cfg.Drafts, logger)

	return &Services{
		DraftService:   NewDraftValidationService().Wrap(draftService),
		TokenService:   NewTokenService(cfg.App, logger),
		AppInfoService: appInfoService,
	}, nil
}
