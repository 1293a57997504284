// Package utils provides small helpers shared by the transport layer:
// JSON response writing and trace ID generation.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data and writes it with the given status code and a
// JSON content type. The body is marshalled before anything is written, so
// a marshalling failure still produces a clean 500 response.
//
// It returns the number of body bytes written.
//
//	WriteJSON(w, bank, http.StatusCreated)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
