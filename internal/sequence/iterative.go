package sequence

import (
	"context"
	"errors"
	"math"
	"math/bits"

	"github.com/agbru/bigcalc/pkg/biguint"
)

// ErrIndexTooLarge is returned when an index would overflow the internal
// loop bounds of an algorithm.
var ErrIndexTooLarge = errors.New("sequence: index too large")

// checkCancel polls ctx every CancelCheckInterval steps.
func checkCancel(ctx context.Context, step uint64) error {
	if step%CancelCheckInterval != 0 {
		return nil
	}
	return ctx.Err()
}

// IterativeFactorial multiplies 2·3·…·n into an accumulator, one
// biguint.FactorialSteps step at a time.
type IterativeFactorial struct{}

func (IterativeFactorial) Name() string       { return "Iterative product" }
func (IterativeFactorial) Sequence() Sequence { return Factorial }

func (IterativeFactorial) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	acc := biguint.New(1)
	var lastReported float64
	for i, v := range biguint.FactorialSteps(n) {
		if err := checkCancel(ctx, i); err != nil {
			return biguint.Int{}, err
		}
		acc = v
		stepProgress(reporter, &lastReported, i, n)
	}
	return acc, nil
}

// IterativeFibonacci walks the recurrence F(k+2) = F(k+1) + F(k) through
// biguint.FibonacciSteps.
type IterativeFibonacci struct{}

func (IterativeFibonacci) Name() string       { return "Iterative addition" }
func (IterativeFibonacci) Sequence() Sequence { return Fibonacci }

func (IterativeFibonacci) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	acc := biguint.New(0)
	var lastReported float64
	for i, v := range biguint.FibonacciSteps(n) {
		if err := checkCancel(ctx, i); err != nil {
			return biguint.Int{}, err
		}
		acc = v
		stepProgress(reporter, &lastReported, i, n)
	}
	return acc, nil
}

// DoublingFibonacci scans the bits of n from the most significant one,
// applying
//
//	F(2k)   = F(k) · (2·F(k+1) − F(k))
//	F(2k+1) = F(k)² + F(k+1)²
//
// and advancing by one when the bit is set.
type DoublingFibonacci struct{}

func (DoublingFibonacci) Name() string       { return "Fast doubling" }
func (DoublingFibonacci) Sequence() Sequence { return Fibonacci }

func (DoublingFibonacci) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	a, b := biguint.New(0), biguint.New(1)
	numBits := bits.Len64(n)
	var lastReported float64
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return biguint.Int{}, err
		}
		// 2·F(k+1) ≥ F(k) for every k, so the subtraction cannot underflow.
		t, err := b.Add(b).Sub(a)
		if err != nil {
			return biguint.Int{}, err
		}
		a, b = a.Mul(t), a.Mul(a).Add(b.Mul(b))
		if (n>>uint(i))&1 == 1 {
			a, b = b, a.Add(b)
		}
		// Each step roughly doubles the operand length, so the work of
		// step j is proportional to 4^j.
		stepProgress(reporter, &lastReported, doublingWork(numBits-i), doublingWork(numBits))
	}
	return a, nil
}

// doublingWork approximates the cumulative cost of the first steps doubling
// steps as 4^steps, saturating at the top of the uint64 range.
func doublingWork(steps int) uint64 {
	if steps >= 32 {
		return math.MaxUint64
	}
	return uint64(1) << (2 * uint(steps))
}

// FactorialRatioCatalan evaluates C(n) = (2n)! / ((n+1)! · n!), collecting
// n! on the way to (2n)! with biguint.FactorialSteps.
type FactorialRatioCatalan struct{}

func (FactorialRatioCatalan) Name() string       { return "Factorial ratio" }
func (FactorialRatioCatalan) Sequence() Sequence { return Catalan }

func (FactorialRatioCatalan) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	if n > math.MaxUint64/2 {
		return biguint.Int{}, ErrIndexTooLarge
	}
	total := 2 * n
	twoNFact := biguint.New(1)
	nFact := biguint.New(1)
	var lastReported float64
	for i, v := range biguint.FactorialSteps(total) {
		if err := checkCancel(ctx, i); err != nil {
			return biguint.Int{}, err
		}
		twoNFact = v
		if i == n {
			nFact = v
		}
		stepProgress(reporter, &lastReported, i, total+1)
	}
	return biguint.CatalanFromFactorials(n, nFact, twoNFact), nil
}

// RecurrenceCatalan applies C(k+1) = C(k) · 2(2k+1) / (k+2). Every
// intermediate quotient is exact.
type RecurrenceCatalan struct{}

func (RecurrenceCatalan) Name() string       { return "Recurrence" }
func (RecurrenceCatalan) Sequence() Sequence { return Catalan }

func (RecurrenceCatalan) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	if n > (math.MaxUint64-2)/4 {
		return biguint.Int{}, ErrIndexTooLarge
	}
	c := biguint.New(1)
	var lastReported float64
	for k := uint64(0); k < n; k++ {
		if err := checkCancel(ctx, k); err != nil {
			return biguint.Int{}, err
		}
		next, err := c.Mul(biguint.New(4*k + 2)).Div(biguint.New(k + 2))
		if err != nil {
			return biguint.Int{}, err
		}
		c = next
		stepProgress(reporter, &lastReported, k+1, n)
	}
	return c, nil
}
