package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/store"
	"github.com/MKhiriev/go-bank-registry/models"
)

const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

type appInfoService struct {
	appVersion string
	health     store.HealthChecker

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, health store.HealthChecker, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		health:     health,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Health pings the store. The returned Health is filled in either case; the
// error is non-nil when the store is unreachable.
func (s *appInfoService) Health(ctx context.Context) (models.Health, error) {
	if err := s.health.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("health check failed")
		return models.Health{
			Status:  HealthStatusUnavailable,
			Message: "Database is unreachable",
			Version: s.appVersion,
		}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return models.Health{
		Status:  HealthStatusOK,
		Message: "Server is running",
		Version: s.appVersion,
	}, nil
}
