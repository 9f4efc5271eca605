package apperrors

import (
	"context"
	"errors"
	"testing"

	"github.com/agbru/bigcalc/pkg/biguint"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid value %d for flag %s", 42, "-max-n")
	if err.Error() != "invalid value 42 for flag -max-n" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var configErr ConfigError
	if !errors.As(err, &configErr) {
		t.Error("expected error to be ConfigError type")
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	_, divErr := biguint.New(1).Div(biguint.New(0))
	tests := []struct {
		name        string
		op          string
		cause       error
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "Without operation",
			cause:       errors.New("original error"),
			expectedMsg: "original error",
		},
		{
			name:        "With operation",
			op:          "catalan",
			cause:       context.Canceled,
			expectedMsg: "catalan: context canceled",
			checkIs:     context.Canceled,
		},
		{
			name:        "Arithmetic kind survives wrapping",
			op:          "div",
			cause:       divErr,
			expectedMsg: "div: biguint: div: division by zero",
			checkIs:     biguint.ErrDivisionByZero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewCalculationError(tt.op, tt.cause)
			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if errors.Unwrap(err) != tt.cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}

	if NewCalculationError("add", nil) != nil {
		t.Error("NewCalculationError with nil cause should return nil")
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()
	err := NewServerError("cannot listen on port 8080", errors.New("bind failed"))
	if err.Error() != "cannot listen on port 8080: bind failed" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var serverErr ServerError
	if !errors.As(err, &serverErr) {
		t.Fatal("expected error to be ServerError type")
	}
	if serverErr.Unwrap() == nil {
		t.Error("Unwrap should return the cause")
	}
	if got := (ServerError{Message: "server stopped"}).Error(); got != "server stopped" {
		t.Errorf("unexpected message %q", got)
	}
	if (ServerError{Message: "x"}).Unwrap() != nil {
		t.Error("Unwrap should return nil when there's no cause")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "Error with field",
			field:       "n",
			message:     "exceeds maximum 100000",
			expectedMsg: "validation error for 'n': exceeds maximum 100000",
		},
		{
			name:        "Error without field",
			message:     "invalid input",
			expectedMsg: "validation error: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewValidationError(tt.field, tt.message, nil)
			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			var valErr ValidationError
			if !errors.As(err, &valErr) || valErr.Field != tt.field {
				t.Errorf("unexpected validation error: %+v", valErr)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "some context") != nil {
		t.Error("WrapError(nil, ...) should return nil")
	}
	wrapped := WrapError(context.DeadlineExceeded, "operand %s", "a")
	if wrapped.Error() != "operand a: context deadline exceeded" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Error("wrapped error should preserve the chain")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	_, parseErr := biguint.Parse("12a3")
	_, subErr := biguint.New(5).Sub(biguint.New(10))
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"timeout", WrapError(context.DeadlineExceeded, "fibonacci"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"invalid format", parseErr, ExitErrorArithmetic},
		{"underflow", NewCalculationError("sub", subErr), ExitErrorArithmetic},
		{"bare kind", biguint.ErrDivisionByZero, ExitErrorArithmetic},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor(%v) = %d, expected %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":         ExitSuccess,
		"ExitErrorGeneric":    ExitErrorGeneric,
		"ExitErrorTimeout":    ExitErrorTimeout,
		"ExitErrorMismatch":   ExitErrorMismatch,
		"ExitErrorConfig":     ExitErrorConfig,
		"ExitErrorArithmetic": ExitErrorArithmetic,
		"ExitErrorCanceled":   ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
