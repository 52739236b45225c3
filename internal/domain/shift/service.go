package shift

import (
	"context"
	"time"
)

// Service defines read access to the shift catalog and window resolution.
type Service interface {
	// List retrieves the active shift definitions.
	List(ctx context.Context) ([]Definition, error)

	// WindowFor resolves a shift's window against a concrete date, applying
	// the Saturday substitution rule.
	WindowFor(ctx context.Context, code string, date time.Time) (Window, error)
}
