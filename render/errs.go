package render

import "errors"

var (
	// ErrTypeMismatch marks a traversal that addressed into a scalar.
	// It is fatal for direct lookups; scope probes and nested-key
	// target resolution absorb it and continue.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCycle marks a substitution or template lookup that re-entered
	// a path whose evaluation is still in progress.
	ErrCycle = errors.New("reference cycle")
)
