// Package apperr defines the error kinds shared across the registry core.
// Every service and storage call resolves to one of these sentinels so the
// API layer can map outcomes to status codes without inspecting messages.
package apperr

import "errors"

var (
	// ErrInvalidFormat marks a malformed identifier or enum value.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidPayload marks a semantically invalid request body.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrInvalidMask marks an empty field mask or one naming an unknown
	// or immutable field.
	ErrInvalidMask = errors.New("invalid field mask")

	// ErrNotFound marks a missing entity or operator.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an authorization failure, e.g. a non-owner
	// attempting to delegate a group.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks a uniqueness or concurrent-modification violation
	// reported by storage.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable marks a storage backend that is unreachable or timed
	// out. Transient; callers may retry with backoff. The registry never
	// retries writes itself.
	ErrUnavailable = errors.New("storage unavailable")
)
