// Package apperrors defines the structured error types of the bigcalc
// application and the process exit codes derived from them.
//
// Arithmetic failures come from pkg/biguint as values carrying a
// biguint.Kind; this package classifies them next to configuration,
// validation, server and context errors. All wrapper types implement
// Unwrap so that errors.Is and errors.As see through them.
package apperrors

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/pkg/biguint"
)

// Application exit codes.
const (
	ExitSuccess         = 0   // Successful execution.
	ExitErrorGeneric    = 1   // Unclassified failure.
	ExitErrorTimeout    = 2   // The execution limit was reached.
	ExitErrorMismatch   = 3   // Calculators disagreed on a result.
	ExitErrorConfig     = 4   // Invalid flags or environment.
	ExitErrorArithmetic = 5   // InvalidFormat, Underflow or DivisionByZero.
	ExitErrorCanceled   = 130 // Interrupted (SIGINT convention).
)

// ConfigError represents a user configuration error, such as an invalid flag
// value. The application cannot proceed when one is returned.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError records which operation failed while preserving the
// original cause, typically a *biguint.Error or a context error.
type CalculationError struct {
	// Op names the failed operation ("div", "catalan", ...). May be empty.
	Op string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the cause's message, prefixed with the operation if known.
func (e CalculationError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// NewCalculationError wraps cause as a CalculationError for op. It returns
// nil when cause is nil.
func NewCalculationError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return CalculationError{Op: op, Cause: cause}
}

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the descriptive message and the underlying cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsArithmeticError reports whether err carries a biguint error kind.
func IsArithmeticError(err error) bool {
	_, ok := biguint.KindOf(err)
	return ok
}

// ValidationError represents an error due to invalid input, such as an
// operand that is too long or an index above the configured maximum.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
//
// Parameters:
//   - field: The name of the field that failed validation.
//   - message: A description of why validation failed.
//   - value: The invalid value (optional).
//
// Returns:
//   - error: A new ValidationError instance.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// ExitCodeFor maps an error to the process exit code without printing.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case IsArithmeticError(err):
		return ExitErrorArithmetic
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
