package engine

import "errors"

var (
	// ErrInvalidTerms: malformed or contradictory loan terms (non-positive
	// principal, unknown payment frequency). The caller is responsible for
	// never constructing such terms; this is the last line of defense.
	ErrInvalidTerms = errors.New("invalid loan terms")

	// ErrIllegalTransition: a lifecycle guard was violated (bad status
	// transition, mutation outside pending, payment outside active, ...).
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrStatusUnchanged: the loan is already in the requested status.
	// Surfaced as a conflict rather than silently accepted, so duplicate
	// transition requests racing each other cannot both "succeed".
	ErrStatusUnchanged = errors.New("loan already in requested status")
)
