package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. zero earnings, tax rate outside (0,1]).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when no verified user identity is available.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrPersistence wraps a storage failure during an import commit.
// The wrapped repository error is surfaced to the caller verbatim.
var ErrPersistence = errors.New("persistence error")

// ErrConflict is returned when a write collides with an existing record,
// e.g. an edited imported trip taking the fingerprint of another one.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
