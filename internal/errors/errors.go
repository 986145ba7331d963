package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// MissingOrNonInteger indicates the count parameter is absent or not an integer
	MissingOrNonInteger ErrorCode = "MISSING_OR_NON_INTEGER"
	// NegativeValue indicates the count parameter is below zero
	NegativeValue ErrorCode = "NEGATIVE_VALUE"
	// TooLarge indicates the count parameter exceeds the configured maximum
	TooLarge ErrorCode = "TOO_LARGE"
	// NotFound indicates an unknown route or sequence
	NotFound ErrorCode = "NOT_FOUND"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// SeqError represents a seqapi error with a stable code and a client-safe message
type SeqError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error     // Underlying error (not exported to JSON)
}

// NewSeqError creates a new SeqError
func NewSeqError(code ErrorCode, message string, cause error) *SeqError {
	return &SeqError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *SeqError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *SeqError) Unwrap() error {
	return e.cause
}

// IsClientError reports whether the code describes bad client input.
func (c ErrorCode) IsClientError() bool {
	switch c {
	case MissingOrNonInteger, NegativeValue, TooLarge:
		return true
	default:
		return false
	}
}

// CodeOf extracts the ErrorCode from err, or InternalError when err is not a SeqError.
func CodeOf(err error) ErrorCode {
	var seqErr *SeqError
	if errors.As(err, &seqErr) {
		return seqErr.Code
	}
	return InternalError
}

// MissingCount builds the error returned when no usable integer was supplied.
func MissingCount(cause error) *SeqError {
	return NewSeqError(MissingOrNonInteger, "Parameter `n` (integer) is required.", cause)
}

// NegativeCount builds the error returned for counts below zero.
func NegativeCount() *SeqError {
	return NewSeqError(NegativeValue, "Parameter `n` must be a non-negative integer.", nil)
}

// CountTooLarge builds the error returned for counts above max.
func CountTooLarge(max int) *SeqError {
	return NewSeqError(TooLarge, fmt.Sprintf("Parameter `n` must be <= %d.", max), nil)
}
