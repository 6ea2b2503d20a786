package domain

import "errors"

var (
	// ErrValidation marks malformed caller input, surfaced before any
	// network attempt.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a lookup for a record that is not in the
	// collection or the backing resource.
	ErrNotFound = errors.New("not found")
)
