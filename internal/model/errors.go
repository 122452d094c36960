package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")

	// ErrCapacityExceeded signals a bounded collection refusing growth
	// (full inner circle). The original app swallowed these silently; the
	// engine surfaces them so callers can tell the user.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrEligibility blocks registration or a DOB edit that would make the
	// account younger than the minimum age.
	ErrEligibility = errors.New("eligibility requirement not met")

	// ErrChatClosed rejects writes to a chat that expired or hit a
	// message quota. Reads stay permitted.
	ErrChatClosed = errors.New("chat closed")
)
