package attendance

import "errors"

// Attendance domain errors
var (
	ErrDayRecordNotFound = errors.New("day record not found")
)
