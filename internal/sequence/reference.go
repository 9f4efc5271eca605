package sequence

import (
	"context"
	"math"
	"math/big"

	"fortio.org/safecast"

	"github.com/agbru/bigcalc/pkg/biguint"
)

// The calculators in this file compute with math/big and convert the result
// through its decimal text. They serve as an independent reference when
// several algorithms are compared.

// fromBig converts a non-negative big.Int.
func fromBig(x *big.Int) (biguint.Int, error) {
	return biguint.Parse(x.String())
}

// BigFactorial uses big.Int.MulRange.
type BigFactorial struct{}

func (BigFactorial) Name() string       { return "math/big MulRange" }
func (BigFactorial) Sequence() Sequence { return Factorial }

func (BigFactorial) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	k, err := safecast.Conv[int64](n)
	if err != nil {
		return biguint.Int{}, ErrIndexTooLarge
	}
	if k < 2 {
		return biguint.New(1), nil
	}
	return fromBig(new(big.Int).MulRange(2, k))
}

// BigFibonacci iterates the additive recurrence on big.Int.
type BigFibonacci struct{}

func (BigFibonacci) Name() string       { return "math/big iterative" }
func (BigFibonacci) Sequence() Sequence { return Fibonacci }

func (BigFibonacci) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	a, b := big.NewInt(0), big.NewInt(1)
	var lastReported float64
	for i := uint64(1); i <= n; i++ {
		if err := checkCancel(ctx, i); err != nil {
			return biguint.Int{}, err
		}
		a.Add(a, b)
		a, b = b, a
		stepProgress(reporter, &lastReported, i, n)
	}
	return fromBig(a)
}

// BigCatalan computes binomial(2n, n) / (n+1).
type BigCatalan struct{}

func (BigCatalan) Name() string       { return "math/big binomial" }
func (BigCatalan) Sequence() Sequence { return Catalan }

func (BigCatalan) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	k, err := safecast.Conv[int64](n)
	if err != nil || k > math.MaxInt64/2-1 {
		return biguint.Int{}, ErrIndexTooLarge
	}
	c := new(big.Int).Binomial(2*k, k)
	c.Quo(c, big.NewInt(k+1))
	return fromBig(c)
}
