// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while decoding a request, before the service
// layer is reached. Callers can match against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when the request body is not a JSON
	// document of the expected shape.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidPathParam is returned when a numeric path segment such as
	// {bank_id} cannot be parsed as a positive integer.
	ErrInvalidPathParam = errors.New("invalid path parameter")
)
