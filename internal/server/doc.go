// Package server runs the HTTP transport of the bank registry.
//
// It owns the server lifecycle: startup, signal handling, and graceful
// shutdown bounded by the configured deadline.
package server
