package calculation

import "errors"

// Sentinel errors returned (wrapped) by the calculation engine. Match with errors.Is.
var (
	// ErrDataFormat marks a malformed return table.
	ErrDataFormat = errors.New("return table data format error")
	// ErrEmptyRange marks a return table with no rows at or above the start age.
	ErrEmptyRange = errors.New("no return table rows in range")
	// ErrNoConvergence marks an IRR that could not be found.
	ErrNoConvergence = errors.New("irr did not converge")
	// ErrInvalidScenario marks inconsistent scenario input.
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrZeroVolatility marks a breakeven probability that is undefined.
	ErrZeroVolatility = errors.New("mean volatility is zero")
)
