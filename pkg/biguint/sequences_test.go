package biguint

import (
	"math/big"
	"slices"
	"testing"
)

func TestFactorial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n        uint64
		expected string
	}{
		{n: 0, expected: "1"},
		{n: 1, expected: "1"},
		{n: 2, expected: "2"},
		{n: 5, expected: "120"},
		{n: 20, expected: "2432902008176640000"},
		{n: 25, expected: "15511210043330985984000000"},
		{n: 50, expected: "30414093201713378043612608166064768844377641568960512000000000000"},
	}
	for _, tt := range tests {
		if got := Factorial(tt.n).String(); got != tt.expected {
			t.Errorf("Factorial(%d): expected %s, got %s", tt.n, tt.expected, got)
		}
	}
}

func TestFibonacci(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n        uint64
		expected string
	}{
		{n: 0, expected: "0"},
		{n: 1, expected: "1"},
		{n: 2, expected: "1"},
		{n: 10, expected: "55"},
		{n: 50, expected: "12586269025"},
		{n: 93, expected: "12200160415121876738"},
		{n: 94, expected: "19740274219868223167"},
		{n: 100, expected: "354224848179261915075"},
	}
	for _, tt := range tests {
		if got := Fibonacci(tt.n).String(); got != tt.expected {
			t.Errorf("Fibonacci(%d): expected %s, got %s", tt.n, tt.expected, got)
		}
	}
}

func TestCatalan(t *testing.T) {
	t.Parallel()
	first := []string{"1", "1", "2", "5", "14", "42", "132", "429", "1430", "4862", "16796"}
	for n, expected := range first {
		if got := Catalan(uint64(n)).String(); got != expected {
			t.Errorf("Catalan(%d): expected %s, got %s", n, expected, got)
		}
	}
	if got := Catalan(30).String(); got != "3814986502092304" {
		t.Errorf("Catalan(30): expected 3814986502092304, got %s", got)
	}
	if got := Catalan(50).String(); got != "1978261657756160653623774456" {
		t.Errorf("Catalan(50): expected 1978261657756160653623774456, got %s", got)
	}
}

func TestFactorialSteps(t *testing.T) {
	t.Parallel()
	var got []string
	var indices []uint64
	for i, v := range FactorialSteps(6) {
		indices = append(indices, i)
		got = append(got, v.String())
	}
	if !slices.Equal(indices, []uint64{2, 3, 4, 5, 6}) || !slices.Equal(got, []string{"2", "6", "24", "120", "720"}) {
		t.Errorf("FactorialSteps(6) yielded %v %v", indices, got)
	}
	for range FactorialSteps(1) {
		t.Error("FactorialSteps(1) should yield nothing")
	}
}

func TestFibonacciSteps(t *testing.T) {
	t.Parallel()
	var got []string
	for i, v := range FibonacciSteps(8) {
		if uint64(len(got))+1 != i {
			t.Fatalf("unexpected index %d", i)
		}
		got = append(got, v.String())
	}
	if !slices.Equal(got, []string{"1", "1", "2", "3", "5", "8", "13", "21"}) {
		t.Errorf("FibonacciSteps(8) yielded %v", got)
	}
	for range FibonacciSteps(0) {
		t.Error("FibonacciSteps(0) should yield nothing")
	}

	// Stopping early must not run the loop further.
	count := 0
	for range FibonacciSteps(1000) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("break after 3 steps, counted %d", count)
	}
}

func TestCatalanFromFactorials(t *testing.T) {
	t.Parallel()
	if got := CatalanFromFactorials(10, Factorial(10), Factorial(20)); !got.Equal(Catalan(10)) {
		t.Errorf("CatalanFromFactorials(10) = %s, want %s", got, Catalan(10))
	}
}

func TestSequencesAgainstMathBig(t *testing.T) {
	t.Parallel()
	fact := big.NewInt(1)
	a, b := big.NewInt(0), big.NewInt(1)
	for n := uint64(0); n <= 120; n++ {
		if n >= 2 {
			fact.Mul(fact, new(big.Int).SetUint64(n))
		}
		if got := Factorial(n).String(); got != fact.String() {
			t.Fatalf("Factorial(%d): expected %s, got %s", n, fact, got)
		}
		if got := Fibonacci(n).String(); got != a.String() {
			t.Fatalf("Fibonacci(%d): expected %s, got %s", n, a, got)
		}
		a.Add(a, b)
		a, b = b, a
	}
	for n := int64(0); n <= 40; n++ {
		expected := new(big.Int).Binomial(2*n, n)
		expected.Quo(expected, big.NewInt(n+1))
		if got := Catalan(uint64(n)).String(); got != expected.String() {
			t.Fatalf("Catalan(%d): expected %s, got %s", n, expected, got)
		}
	}
}
