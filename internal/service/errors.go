package service

import "errors"

// Caller-input errors. The HTTP layer maps them onto 4xx statuses.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordMismatch    = errors.New("new password and its confirmation do not match")
	ErrDuplicateUsername   = errors.New("username is already taken")
	ErrConcurrentUpdate    = errors.New("account was modified concurrently, retry the request")
)

// Infrastructure errors. The HTTP layer maps them onto 5xx statuses.
var (
	ErrStoreUnavailable = errors.New("store is unavailable")
	ErrHashingFailure   = errors.New("password hashing failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
