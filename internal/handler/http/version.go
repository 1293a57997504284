package http

import (
	"net/http"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// health answers 200 when the store is reachable and 503 otherwise. The
// body is the same Health document in both cases.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	health, err := h.services.AppInfoService.Health(r.Context())

	status := http.StatusOK
	if err != nil {
		status = http.StatusServiceUnavailable
	}

	if _, err = utils.WriteJSON(w, health, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing health response failed")
	}
}
