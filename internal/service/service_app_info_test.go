package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/mock"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, mock.NewMockHealthChecker(ctrl), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc, err := NewAppInfoService(config.App{Version: ""}, mock.NewMockHealthChecker(ctrl), logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, err := NewAppInfoService(config.App{Version: "v1.2.3-beta+build.42"}, mock.NewMockHealthChecker(ctrl), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3-beta+build.42", svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, mock.NewMockHealthChecker(ctrl), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}

// ─────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────

func TestHealth_StoreReachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	health.EXPECT().Ping(gomock.Any()).Return(nil)

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, health, logger.Nop())
	require.NoError(t, err)

	got, err := svc.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, HealthStatusOK, got.Status)
	assert.Equal(t, "Server is running", got.Message)
	assert.Equal(t, "1.0.0", got.Version)
}

func TestHealth_StoreUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	health.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, health, logger.Nop())
	require.NoError(t, err)

	got, err := svc.Health(context.Background())

	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, HealthStatusUnavailable, got.Status)
	assert.Equal(t, "1.0.0", got.Version)
}
