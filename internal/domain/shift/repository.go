package shift

import "context"

// ShiftRepository defines data access for shift definitions.
type ShiftRepository interface {
	// GetByCode retrieves the active definition for a shift code.
	GetByCode(ctx context.Context, code string) (Definition, error)

	// ListActive retrieves all active shift definitions.
	ListActive(ctx context.Context) ([]Definition, error)
}
