package harness

import "errors"

var (
	// ErrInvariant marks a scenario whose checked property was violated.
	ErrInvariant = errors.New("harness: invariant violated")

	// ErrInterrupted marks a scenario abandoned because control.Shutdown
	// was called.
	ErrInterrupted = errors.New("harness: interrupted")
)
