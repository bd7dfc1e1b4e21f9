// Package error defines domain-specific errors for the StayMetrics application.
package error

import "errors"

// Revenue domain errors.
var (
	// ErrMissingPropertyID is returned when property_id is not provided.
	ErrMissingPropertyID = errors.New("property_id is required")

	// ErrInvalidMonth is returned when month is outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidAmount is returned when a stored monetary value cannot be
	// parsed as an exact decimal.
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrStoreUnavailable is returned when the reservation store cannot be
	// reached. Recoverable through the fallback policy.
	ErrStoreUnavailable = errors.New("reservation store unavailable")

	// ErrStoreTimeout is returned when a store query exceeds its deadline.
	// Recoverable through the fallback policy.
	ErrStoreTimeout = errors.New("reservation store query timed out")

	// ErrCrossTenantScope is returned when the store hands back a row whose
	// tenant does not match the requested tenant. Always fatal.
	ErrCrossTenantScope = errors.New("aggregate row belongs to a different tenant")

	// ErrPropertyNotFound is returned when a property id cannot be resolved
	// within the requested tenant.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrUnknownTimezone is returned when a property's configured timezone
	// is not a valid IANA zone.
	ErrUnknownTimezone = errors.New("property timezone is not a valid IANA zone")
)

// RevenueErrorCode defines error codes for revenue aggregation errors.
// Format: REV-XXYYYY where XX is category and YYYY is specific error.
type RevenueErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingPropertyID RevenueErrorCode = "REV-010001"
	ErrCodeInvalidMonth      RevenueErrorCode = "REV-010002"
	ErrCodeInvalidYear       RevenueErrorCode = "REV-010003"
	ErrCodePropertyNotFound  RevenueErrorCode = "REV-010004"

	// Transient store errors (02XXXX) - the only codes eligible for the
	// fallback policy.
	ErrCodeStoreUnavailable RevenueErrorCode = "REV-020001"
	ErrCodeStoreTimeout     RevenueErrorCode = "REV-020002"

	// Data integrity errors (03XXXX)
	ErrCodeInvalidAmount    RevenueErrorCode = "REV-030001"
	ErrCodeCrossTenantScope RevenueErrorCode = "REV-030002"
	ErrCodeUnknownTimezone  RevenueErrorCode = "REV-030003"

	// Internal errors (99XXXX)
	ErrCodeRevenueInternalError RevenueErrorCode = "REV-990001"
)

// RevenueError represents a revenue aggregation error with code and message.
type RevenueError struct {
	Code    RevenueErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RevenueError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RevenueError) Unwrap() error {
	return e.Err
}

// NewRevenueError creates a new RevenueError with the given code and message.
func NewRevenueError(code RevenueErrorCode, message string, err error) *RevenueError {
	return &RevenueError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsStoreFailure reports whether err is one of the transient infrastructure
// failures the fallback policy may absorb. Everything else, including
// programming errors and data integrity violations, must propagate.
func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrStoreTimeout)
}
