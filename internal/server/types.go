package server

import "github.com/agbru/bigcalc/pkg/biguint"

// ArithResponse is the body of a successful /arith request. Result holds
// the decimal value, or -1, 0 or 1 for cmp.
type ArithResponse struct {
	Op       string      `json:"op"`
	A        biguint.Int `json:"a"`
	B        biguint.Int `json:"b"`
	Result   string      `json:"result"`
	Duration string      `json:"duration"`
}

// SequenceResponse is the body of a successful /sequence request.
type SequenceResponse struct {
	Name      string      `json:"name"`
	N         uint64      `json:"n"`
	Algorithm string      `json:"algorithm"`
	Result    biguint.Int `json:"result"`
	Duration  string      `json:"duration"`
}

// ErrorResponse is the body of every failed request. Kind is set for
// arithmetic failures: InvalidFormat, Underflow or DivisionByZero.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// paramError is a query parameter validation failure.
type paramError struct {
	Message string
}

func (e paramError) Error() string {
	return e.Message
}
