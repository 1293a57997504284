package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
)

// ---- withTraceID ----

func executeWithTraceID(h *Handler, traceID string) (*httptest.ResponseRecorder, *http.Request) {
	var capturedReq *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceID != "" {
		req.Header.Set(traceIDHeader, traceID)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, capturedReq
}

func TestWithTraceID_ReusesHeader(t *testing.T) {
	rr, req := executeWithTraceID(newTestHandler(nil), "my-custom-trace-id")

	require.NotNil(t, req)
	assert.Equal(t, "my-custom-trace-id", rr.Header().Get(traceIDHeader))
}

func TestWithTraceID_GeneratesUUID(t *testing.T) {
	rr, _ := executeWithTraceID(newTestHandler(nil), "")

	_, err := uuid.Parse(rr.Header().Get(traceIDHeader))
	assert.NoError(t, err)
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(traceIDHeader, "trace-42")

	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-42", entry["trace_id"])
}

// ---- withLogging ----

func TestWithLogging_RecordsStatusAndSize(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hello"))
	})
	req := httptest.NewRequest(http.MethodPost, "/api/banks", nil)
	req = req.WithContext(h.logger.WithContext(req.Context()))
	rr := httptest.NewRecorder()

	h.withLogging(next).ServeHTTP(rr, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, float64(5), entry["size"])
	assert.Equal(t, http.MethodPost, entry["method"])
	assert.Equal(t, "/api/banks", entry["uri"])
}

// ---- responseWriter ----

func TestResponseWriter_ImplicitOKAndSingleWriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	n, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("de"))

	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 5, w.size)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, rr, w.Unwrap())
}
