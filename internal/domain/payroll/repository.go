package payroll

import "context"

// RulesRepository manages versioned violation rules configs.
type RulesRepository interface {
	// GetActive retrieves the single active config.
	GetActive(ctx context.Context) (ViolationRulesConfig, error)

	// Activate inserts the config as the new active version and deactivates
	// the previous one in the same transaction.
	Activate(ctx context.Context, cfg ViolationRulesConfig) (ViolationRulesConfig, error)
}
