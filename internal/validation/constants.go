package validation

const (
	// Funding limits
	MinRequestedAmount = 1000.00
	MaxRequestedAmount = 5000000.00

	// Business name bounds
	MinBusinessNameLength = 2
	MaxBusinessNameLength = 200

	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxUseOfFundsLength = 500
)
