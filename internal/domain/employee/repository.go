package employee

import "context"

// Repository reads employee master data. The engine never writes it; master
// data is synced from the HR system of record.
type Repository interface {
	// GetByCode retrieves one employee, ErrEmployeeNotFound when absent.
	GetByCode(ctx context.Context, code string) (Employee, error)

	// ListActive retrieves all active employees ascending by code.
	ListActive(ctx context.Context) ([]Employee, error)
}
