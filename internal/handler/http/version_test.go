package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bank-registry/internal/service"
	"github.com/MKhiriev/go-bank-registry/models"
)

func TestGetServerVersion(t *testing.T) {
	svcs := &service.Services{AppInfoService: &mockAppInfoSvc{version: "v1.2.3"}}

	rec := serve(t, svcs, http.MethodGet, "/api/version", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "v1.2.3", rec.Body.String())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		healthErr  error
		wantStatus int
		wantState  string
	}{
		{name: "up", wantStatus: http.StatusOK, wantState: service.HealthStatusOK},
		{name: "store down", healthErr: errors.New("ping failed"), wantStatus: http.StatusServiceUnavailable, wantState: service.HealthStatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := &service.Services{AppInfoService: &mockAppInfoSvc{version: "1.0.0", healthErr: tt.healthErr}}

			rec := serve(t, svcs, http.MethodGet, "/health", "")

			require.Equal(t, tt.wantStatus, rec.Code)
			var got models.Health
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantState, got.Status)
			assert.Equal(t, "1.0.0", got.Version)
		})
	}
}
