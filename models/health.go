package models

// Health is the body of the /health endpoint.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}
