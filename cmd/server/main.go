package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cart-keeper/internal/config"
	"github.com/MKhiriev/go-cart-keeper/internal/handler"
	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/server"
	"github.com/MKhiriev/go-cart-keeper/internal/service"
	"github.com/MKhiriev/go-cart-keeper/internal/store"
	"github.com/MKhiriev/go-cart-keeper/internal/workers"
	"github.com/MKhiriev/go-cart-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-cart-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	sweeper := service.NewDraftSweeper(storages.DraftRepository, cfg.Drafts, log)
	background := workers.NewWorkers(workers.NewSweepWorker(sweeper, cfg.Workers.SweepInterval))
	background.Run()
	defer background.Stop()

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
}
