// Package http implements the REST transport of the bank registry.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as request tracing, access logging, request timeouts and
// panic recovery are handled here before requests are delegated to the
// service layer.
package http
