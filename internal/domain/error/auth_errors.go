// Package error defines domain-specific errors for the StayMetrics application.
package error

import "errors"

// Tenant-context errors.
var (
	// ErrInvalidToken is returned when a bearer token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a bearer token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// AuthErrorCode defines error codes for tenant-context errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"

	// Rate limiting (02XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-020003"
)
