package workflow

import "errors"

// Sentinel errors for transition outcomes. Callers match with errors.Is and map
// them to HTTP responses; the engine never returns a partially built field-set
// alongside an error.
var (
	// ErrUnauthorized means the actor's role or ownership does not permit the
	// requested transition.
	ErrUnauthorized = errors.New("actor not authorized for this transition")

	// ErrInvalidTransition means the (current, target) status pair is not in
	// the transition table. Stale-state races surface as this error too.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrValidationFailed means the transition payload is missing or malformed
	// (e.g. rejection comments too short).
	ErrValidationFailed = errors.New("transition payload validation failed")

	// ErrNotFound means the solicitud id does not resolve to a record.
	ErrNotFound = errors.New("solicitud not found")

	// ErrStaleState means the stored status changed between read and write.
	// The orchestration layer re-surfaces it as ErrInvalidTransition.
	ErrStaleState = errors.New("solicitud status changed concurrently")
)
