package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when the request is invalid (e.g. end before start).
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyMember is returned when inviting or adding a user who already has a
	// membership row for the event.
	ErrAlreadyMember = errors.New("already a member")

	// ErrNotMember is returned when an operation requires an existing membership.
	ErrNotMember = errors.New("not a member")
)
