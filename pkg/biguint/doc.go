// Package biguint implements arbitrary-precision non-negative integers
// stored as decimal digits.
//
// An [Int] is an immutable value: every arithmetic method returns a new Int
// and never modifies its receiver or arguments, so a single value may be
// shared freely between goroutines. The zero value of Int is 0.
//
// Internally an Int holds its decimal digits least-significant first and is
// always normalized: there are no most-significant zero digits except for
// the single digit of the value 0. Normalization is what allows [Int.Cmp] to
// order values by digit count first and makes [Int.String] round-trip with
// [Parse] exactly.
//
// Operations that can fail return an error whose [Kind] identifies the
// failure:
//
//   - [ErrInvalidFormat]: [Parse] met a byte that is not an ASCII digit.
//   - [ErrUnderflow]: [Int.Sub] with a minuend smaller than the subtrahend,
//     or [FromInt64] with a negative input.
//   - [ErrDivisionByZero]: [Int.Div] with a zero divisor.
//
// Callers test for a kind with errors.Is:
//
//	d, err := a.Sub(b)
//	if errors.Is(err, biguint.ErrUnderflow) {
//	    // a < b
//	}
//
// The package also provides the classical sequences [Factorial],
// [Fibonacci] and [Catalan] computed exactly on top of this arithmetic.
package biguint
