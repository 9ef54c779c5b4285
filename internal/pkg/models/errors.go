package models

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors. Their messages double as the wire error codes.
var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInvalidOTP     = errors.New("invalid_otp")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid_token")
	ErrForbidden      = errors.New("forbidden")
	ErrRateLimited    = errors.New("rate_limited")
	ErrNotFound       = errors.New("not_found")
	ErrOTPDelivery    = errors.New("otp_delivery_failed")
)

// ValidationError describes a single rejected request field
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidRequest
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// RateLimitError carries how long the caller should wait
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
