package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/crypto"
	"github.com/MKhiriev/go-bank-registry/internal/handler"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/server"
	"github.com/MKhiriev/go-bank-registry/internal/service"
	"github.com/MKhiriev/go-bank-registry/internal/store"
	"github.com/MKhiriev/go-bank-registry/internal/store/memory"
	"github.com/MKhiriev/go-bank-registry/internal/workers"
	"github.com/MKhiriev/go-bank-registry/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	storages, closeStorages, err := newStorages(cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer closeStorages()

	hashPool := workers.NewPool("password-hashing", cfg.Workers.HashWorkers, log)
	backgroundWorkers := workers.NewWorkers(hashPool)
	backgroundWorkers.Run()
	defer backgroundWorkers.Stop()

	hasher := crypto.NewPooledHasher(crypto.NewPasswordHasher(cfg.App.Argon2), hashPool)

	services, err := service.NewServices(storages, hasher, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

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

// newStorages opens the configured backend. The SQL pool is created once
// here and shared by every repository; migrations run before it is used.
func newStorages(cfg config.DB, log *logger.Logger) (*store.Storages, func(), error) {
	if store.IsMemoryDSN(cfg.DSN) {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return memory.NewStorages(), func() {}, nil
	}

	db, err := store.NewDB(context.Background(), cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return store.NewStorages(db), func() { db.Close() }, nil
}
