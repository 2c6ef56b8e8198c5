package domain

import "errors"

// Sentinel errors surfaced across package boundaries.
var (
	// ErrInvalidGoals rejects a goal set where a shorter period exceeds a
	// longer one (e.g. daily > weekly). Callers show this as a validation
	// message; it never reaches the derivation engine.
	ErrInvalidGoals = errors.New("invalid goal configuration: shorter-period goal exceeds longer-period goal")

	// ErrSessionNotFound is returned when a session ID does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownBadge is returned for a badge ID outside the catalog.
	ErrUnknownBadge = errors.New("unknown badge id")
)
