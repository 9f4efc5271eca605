package biguint

import "iter"

// FactorialSteps yields (i, i!) for i = 2..n. Callers that need 0! or 1!
// start from 1.
func FactorialSteps(n uint64) iter.Seq2[uint64, Int] {
	return func(yield func(uint64, Int) bool) {
		acc := New(1)
		for i := uint64(2); i <= n; i++ {
			acc = acc.Mul(New(i))
			if !yield(i, acc) {
				return
			}
		}
	}
}

// FibonacciSteps yields (i, F(i)) for i = 1..n.
func FibonacciSteps(n uint64) iter.Seq2[uint64, Int] {
	return func(yield func(uint64, Int) bool) {
		if n == 0 {
			return
		}
		a, b := New(0), New(1)
		for i := uint64(1); ; i++ {
			if !yield(i, b) || i == n {
				return
			}
			a, b = b, a.Add(b)
		}
	}
}

// Factorial returns n!. Factorial(0) and Factorial(1) are 1.
func Factorial(n uint64) Int {
	res := New(1)
	for _, v := range FactorialSteps(n) {
		res = v
	}
	return res
}

// Fibonacci returns the n-th Fibonacci number with F(0) = 0 and F(1) = 1.
func Fibonacci(n uint64) Int {
	res := New(0)
	for _, v := range FibonacciSteps(n) {
		res = v
	}
	return res
}

// Catalan returns the n-th Catalan number (2n)! / ((n+1)! n!).
// The division is exact; no remainder check is made.
func Catalan(n uint64) Int {
	nFact, twoNFact := New(1), New(1)
	for i, v := range FactorialSteps(2 * n) {
		if i == n {
			nFact = v
		}
		twoNFact = v
	}
	return CatalanFromFactorials(n, nFact, twoNFact)
}

// CatalanFromFactorials returns (2n)! / ((n+1) · n! · n!) given n! and (2n)!.
func CatalanFromFactorials(n uint64, nFact, twoNFact Int) Int {
	return quo(twoNFact, nFact.Mul(New(n+1)).Mul(nFact))
}
