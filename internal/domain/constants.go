package domain

// Default configuration values
const (
	DefaultTimezone         = "Asia/Seoul"
	DefaultHorizonMonths    = 3  // rolling window for the reservation form
	DefaultAccountTTLMonths = 12 // non-admin accounts expire after this
)

// Business validation constants
const (
	MinLoginIDLength  = 3
	MinPasswordLength = 8
	MaxPurposeLength  = 200
	MaxNameLength     = 50
	MaxDeptLength     = 50
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)
