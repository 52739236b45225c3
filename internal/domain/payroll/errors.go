package payroll

import "errors"

// Payroll domain errors
var (
	ErrNoActiveRules = errors.New("no active violation rules config")
	ErrRulesNotFound = errors.New("violation rules config not found")
)
