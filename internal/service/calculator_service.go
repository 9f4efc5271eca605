// Package service validates requests and dispatches them to the arithmetic
// engine or to a sequence calculator. The CLI and the HTTP server both go
// through it, so limits are enforced in one place.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/sequence"
	"github.com/agbru/bigcalc/pkg/biguint"
)

var (
	// ErrMaxValueExceeded is returned when n exceeds the configured maximum.
	ErrMaxValueExceeded = errors.New("maximum n value exceeded")
	// ErrOperandTooLong is returned when an operand has more digits than
	// allowed.
	ErrOperandTooLong = errors.New("operand too long")
	// ErrUnknownOperation is returned for an operation name outside
	// config.ArithmeticOps.
	ErrUnknownOperation = errors.New("unknown operation")
)

// Service is the calculation API shared by the CLI and the HTTP server.
type Service interface {
	// Arithmetic parses a and b and applies op to them.
	Arithmetic(ctx context.Context, op, a, b string) (ArithmeticResult, error)

	// Calculate computes term n of seq with the calculator named algo.
	Calculate(ctx context.Context, seq sequence.Sequence, algo string, n uint64) (biguint.Int, error)
}

// ArithmeticResult is the outcome of a binary operation. Value holds the
// result of add, sub, mul and div; Cmp holds the sign for cmp.
type ArithmeticResult struct {
	Op       string
	A, B     biguint.Int
	Value    biguint.Int
	Cmp      int
	Duration time.Duration
}

// Text renders the result: the decimal value, or -1, 0 or 1 for cmp.
func (r ArithmeticResult) Text() string {
	if r.Op == config.OpCmp {
		return fmt.Sprintf("%d", r.Cmp)
	}
	return r.Value.String()
}

// Symbol returns the infix operator used when printing the operation.
func (r ArithmeticResult) Symbol() string {
	return OperatorSymbol(r.Op)
}

// OperatorSymbol maps an operation name to its infix symbol.
func OperatorSymbol(op string) string {
	switch op {
	case config.OpAdd:
		return "+"
	case config.OpSub:
		return "-"
	case config.OpMul:
		return "*"
	case config.OpDiv:
		return "/"
	case config.OpCmp:
		return "<=>"
	default:
		return op
	}
}

// CalculatorService implements Service.
type CalculatorService struct {
	factory   sequence.CalculatorFactory
	maxN      uint64
	maxDigits int
}

var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a service. A zero maxN or maxDigits disables
// the corresponding limit.
func NewCalculatorService(factory sequence.CalculatorFactory, maxN uint64, maxDigits int) *CalculatorService {
	return &CalculatorService{
		factory:   factory,
		maxN:      maxN,
		maxDigits: maxDigits,
	}
}

// ParseOperand checks the length of text and parses it. name identifies the
// operand in error messages.
func (s *CalculatorService) ParseOperand(name, text string) (biguint.Int, error) {
	if s.maxDigits > 0 && len(text) > s.maxDigits {
		return biguint.Int{}, fmt.Errorf("%w: operand %s has %d digits, limit is %d", ErrOperandTooLong, name, len(text), s.maxDigits)
	}
	v, err := biguint.Parse(text)
	if err != nil {
		return biguint.Int{}, apperrors.WrapError(err, "operand %s", name)
	}
	return v, nil
}

func (s *CalculatorService) Arithmetic(ctx context.Context, op, a, b string) (result ArithmeticResult, err error) {
	ctx, span := otel.Tracer("bigcalc/service").Start(ctx, "Arithmetic")
	defer span.End()
	span.SetAttributes(attribute.String("op", op), attribute.Int("a.len", len(a)), attribute.Int("b.len", len(b)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err := ctx.Err(); err != nil {
		return ArithmeticResult{}, err
	}

	x, err := s.ParseOperand("a", a)
	if err != nil {
		return ArithmeticResult{}, err
	}
	y, err := s.ParseOperand("b", b)
	if err != nil {
		return ArithmeticResult{}, err
	}

	start := time.Now()
	result, err = awaitResult(ctx, func() (ArithmeticResult, error) {
		return apply(op, x, y)
	})
	if err != nil {
		return ArithmeticResult{}, err
	}
	result.Duration = time.Since(start)
	span.SetAttributes(attribute.Int("result.len", result.Value.Len()))
	return result, nil
}

// apply runs op on x and y. Arithmetic failures are wrapped with the
// operation name.
func apply(op string, x, y biguint.Int) (ArithmeticResult, error) {
	result := ArithmeticResult{Op: op, A: x, B: y}
	var err error
	switch op {
	case config.OpAdd:
		result.Value = x.Add(y)
	case config.OpSub:
		result.Value, err = x.Sub(y)
	case config.OpMul:
		result.Value = x.Mul(y)
	case config.OpDiv:
		result.Value, err = x.Div(y)
	case config.OpCmp:
		result.Cmp = x.Cmp(y)
	default:
		return ArithmeticResult{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	if err != nil {
		return ArithmeticResult{}, apperrors.NewCalculationError(op, err)
	}
	return result, nil
}

// awaitResult runs compute in its own goroutine and returns ctx.Err() as
// soon as ctx is done. The biguint operations take no context, so an
// abandoned computation finishes in the background and its result is
// dropped.
func awaitResult[T any](ctx context.Context, compute func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := compute()
		done <- outcome{value: v, err: err}
	}()

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case o := <-done:
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return o.value, o.err
	}
}

func (s *CalculatorService) Calculate(ctx context.Context, seq sequence.Sequence, algo string, n uint64) (result biguint.Int, err error) {
	ctx, span := otel.Tracer("bigcalc/service").Start(ctx, "Calculate")
	defer span.End()
	span.SetAttributes(attribute.String("sequence", string(seq)), attribute.String("algorithm", algo), attribute.Int64("n", int64(min(n, 1<<62))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if s.maxN > 0 && n > s.maxN {
		return biguint.Int{}, ErrMaxValueExceeded
	}

	calc, err := s.factory.Get(seq, algo)
	if err != nil {
		return biguint.Int{}, err
	}

	// Progress is not reported for synchronous service calls.
	result, err = calc.Calculate(ctx, nil, 0, n)
	if err != nil {
		return biguint.Int{}, err
	}
	span.SetAttributes(attribute.Int("result.len", result.Len()))
	return result, nil
}
