package biguint

import (
	"errors"
	"fmt"
)

// Kind identifies why an operation failed. Each Kind is itself an error so
// that errors.Is(err, ErrUnderflow) works on any error returned by this
// package.
type Kind uint8

const (
	// ErrInvalidFormat reports decimal text that is empty or contains a byte
	// other than '0'..'9'.
	ErrInvalidFormat Kind = iota + 1
	// ErrUnderflow reports an operation whose result would be negative.
	ErrUnderflow
	// ErrDivisionByZero reports a zero divisor.
	ErrDivisionByZero
)

// Error implements the error interface.
func (k Kind) Error() string {
	switch k {
	case ErrInvalidFormat:
		return "invalid decimal format"
	case ErrUnderflow:
		return "unsigned underflow"
	case ErrDivisionByZero:
		return "division by zero"
	default:
		return fmt.Sprintf("unknown error kind %d", uint8(k))
	}
}

// String returns the kind's identifier, e.g. "Underflow".
func (k Kind) String() string {
	switch k {
	case ErrInvalidFormat:
		return "InvalidFormat"
	case ErrUnderflow:
		return "Underflow"
	case ErrDivisionByZero:
		return "DivisionByZero"
	default:
		return "Unknown"
	}
}

const (
	opParse   = "parse"
	opConvert = "convert"
	opSub     = "sub"
	opDiv     = "div"
)

// Error describes a failed operation. It unwraps to its Kind.
type Error struct {
	// Op is the failing operation: "parse", "convert", "sub" or "div".
	Op string
	// Kind classifies the failure.
	Kind Kind
	// Input is the offending text for parse and convert failures.
	Input string
	// Pos is the byte offset of the first invalid character in Input,
	// or -1 when not applicable.
	Pos int
}

func (e *Error) Error() string {
	msg := "biguint: " + e.Op
	if e.Op == opParse || e.Op == opConvert {
		msg += fmt.Sprintf(" %q", e.Input)
	}
	msg += ": " + e.Kind.Error()
	if e.Pos >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Pos)
	}
	return msg
}

// Unwrap returns the Kind of the failure.
func (e *Error) Unwrap() error { return e.Kind }

func newError(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind, Pos: -1}
}

func parseError(s string, pos int) *Error {
	return &Error{Op: opParse, Kind: ErrInvalidFormat, Input: s, Pos: pos}
}

// KindOf returns the Kind carried anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var k Kind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}
