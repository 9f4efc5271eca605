//go:build gmp

// GMP reference calculators, compiled only with -tags=gmp and libgmp
// installed (libgmp-dev on Debian/Ubuntu, gmp on Homebrew).

package sequence

import (
	"context"
	"math/bits"

	"fortio.org/safecast"
	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/pkg/biguint"
)

func init() {
	_ = RegisterCalculator(Factorial, "gmp", func() coreCalculator { return &GMPFactorial{} })
	_ = RegisterCalculator(Fibonacci, "gmp", func() coreCalculator { return &GMPFibonacci{} })
}

func fromGMP(x *gmp.Int) (biguint.Int, error) {
	return biguint.Parse(x.String())
}

// GMPFactorial multiplies 2·3·…·n with GMP integers.
type GMPFactorial struct{}

func (c *GMPFactorial) Name() string       { return "GMP product" }
func (c *GMPFactorial) Sequence() Sequence { return Factorial }

func (c *GMPFactorial) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	acc := gmp.NewInt(1)
	factor := gmp.NewInt(0)
	var lastReported float64
	for i := uint64(2); i <= n; i++ {
		if err := checkCancel(ctx, i); err != nil {
			return biguint.Int{}, err
		}
		v, err := safecast.Conv[int64](i)
		if err != nil {
			return biguint.Int{}, ErrIndexTooLarge
		}
		factor.SetInt64(v)
		acc.Mul(acc, factor)
		stepProgress(reporter, &lastReported, i, n)
	}
	return fromGMP(acc)
}

// GMPFibonacci runs fast doubling on GMP integers.
type GMPFibonacci struct{}

func (c *GMPFibonacci) Name() string       { return "GMP fast doubling" }
func (c *GMPFibonacci) Sequence() Sequence { return Fibonacci }

// gmpDoublingStep maps (F(k), F(k+1)) in a, b to (F(2k), F(2k+1)) using t1
// and t2 as scratch space.
func gmpDoublingStep(a, b, t1, t2 *gmp.Int) {
	t1.MulUint32(b, 2)
	t1.Sub(t1, a)
	t1.Mul(a, t1)

	t2.Mul(a, a)
	a.Mul(b, b)
	t2.Add(t2, a)

	a.Set(t1)
	b.Set(t2)
}

func (c *GMPFibonacci) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error) {
	a := gmp.NewInt(0)
	b := gmp.NewInt(1)
	t1 := gmp.NewInt(0)
	t2 := gmp.NewInt(0)

	numBits := bits.Len64(n)
	var lastReported float64
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return biguint.Int{}, err
		}
		gmpDoublingStep(a, b, t1, t2)
		if (n>>uint(i))&1 == 1 {
			t1.Add(a, b)
			a.Set(b)
			b.Set(t1)
		}
		stepProgress(reporter, &lastReported, doublingWork(numBits-i), doublingWork(numBits))
	}
	return fromGMP(a)
}
