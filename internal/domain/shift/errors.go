package shift

import "errors"

// Shift domain errors
var (
	// ErrShiftNotFound covers both a code missing from the directory and a
	// definition without a usable start/end time. Callers treat the day as
	// unresolvable: no late/early evaluation is possible.
	ErrShiftNotFound = errors.New("shift definition not found or has no valid window")
)
