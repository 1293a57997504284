package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/internal/service"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:      http.StatusBadRequest,
	ErrInvalidPathParam: http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusBadRequest,
	service.ErrPasswordMismatch:    http.StatusBadRequest,
	service.ErrNotFound:            http.StatusNotFound,
	service.ErrDuplicateUsername:   http.StatusConflict,
	service.ErrConcurrentUpdate:    http.StatusConflict,

	service.ErrStoreUnavailable: http.StatusInternalServerError,
	service.ErrHashingFailure:   http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// clientMessage is the text sent to the caller for a 4xx error. Only the
// sentinel text is exposed, except for validation failures whose detail
// names the offending field.
func clientMessage(err error) string {
	if errors.Is(err, service.ErrInvalidDataProvided) {
		return err.Error()
	}
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(http.StatusBadRequest)
}

// writeError answers with the status mapped from err. Server errors get a
// generic body and are logged with their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Debug().Err(err).Int("status", status).Msg("request rejected")
	http.Error(w, clientMessage(err), status)
}
