package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a transport-tier failure
type ErrorCategory string

const (
	CategorySystemError    ErrorCategory = "system_error"
	CategoryNetworkError   ErrorCategory = "network_error"
	CategoryInvalidRequest ErrorCategory = "invalid_request"
	CategoryAuthentication ErrorCategory = "authentication"
)

var (
	// ErrMalformedResponse is returned when the processor body is not valid JSON
	ErrMalformedResponse = errors.New("malformed gateway response")

	// ErrAuthentication is returned when an access token could not be obtained
	ErrAuthentication = errors.New("gateway authentication failed")
)

// PaymentError is an infrastructure failure talking to the payment gateway.
// Business declines are never PaymentErrors; they are returned as outcomes.
type PaymentError struct {
	Code        string
	Message     string
	IsRetriable bool
	Category    ErrorCategory
	StatusCode  int
	Err         error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new payment error
func NewPaymentError(code, message string, category ErrorCategory, retriable bool) *PaymentError {
	return &PaymentError{
		Code:        code,
		Message:     message,
		Category:    category,
		IsRetriable: retriable,
	}
}

// WithCause attaches the underlying error
func (e *PaymentError) WithCause(err error) *PaymentError {
	e.Err = err
	return e
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
