// Package error defines domain-specific errors for the StayMetrics application.
package error

import "errors"

// Reservation domain errors.
var (
	// ErrMissingGuestName is returned when guest_name is not provided.
	ErrMissingGuestName = errors.New("guest_name is required")

	// ErrMissingCheckIn is returned when check_in is not provided.
	ErrMissingCheckIn = errors.New("check_in is required")

	// ErrNegativeAmount is returned when a reservation amount is negative.
	ErrNegativeAmount = errors.New("total_amount must not be negative")
)

// ReservationErrorCode defines error codes for reservation errors.
// Format: RSV-XXYYYY where XX is category and YYYY is specific error.
type ReservationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingGuestName ReservationErrorCode = "RSV-010001"
	ErrCodeMissingCheckIn   ReservationErrorCode = "RSV-010002"
	ErrCodeNegativeAmount   ReservationErrorCode = "RSV-010003"
	ErrCodeBadAmount        ReservationErrorCode = "RSV-010004"

	// Internal errors (99XXXX)
	ErrCodeReservationInternalError ReservationErrorCode = "RSV-990001"
)

// ReservationError represents a reservation error with code and message.
type ReservationError struct {
	Code    ReservationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReservationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReservationError) Unwrap() error {
	return e.Err
}

// NewReservationError creates a new ReservationError with the given code and message.
func NewReservationError(code ReservationErrorCode, message string, err error) *ReservationError {
	return &ReservationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
