package sequence

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/agbru/bigcalc/pkg/biguint"
)

type stubCore struct {
	seq Sequence
}

func (s stubCore) Name() string       { return "stub" }
func (s stubCore) Sequence() Sequence { return s.seq }
func (s stubCore) CalculateCore(context.Context, ProgressReporter, uint64) (biguint.Int, error) {
	return biguint.New(42), nil
}

func mustGet(tb testing.TB, f CalculatorFactory, seq Sequence, algo string) Calculator {
	tb.Helper()
	calc, err := f.Get(seq, algo)
	if err != nil {
		tb.Fatalf("Get(%s, %s): %v", seq, algo, err)
	}
	return calc
}

func TestDefaultFactoryBuiltins(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	want := map[Sequence][]string{
		Catalan:   {"bigint", "factorial", "recurrence"},
		Factorial: {"bigint", "iterative"},
		Fibonacci: {"bigint", "doubling", "iterative"},
	}
	for seq, names := range want {
		if got := f.List(seq); !slices.Equal(got, names) {
			t.Errorf("List(%s) = %v, want %v", seq, got, names)
		}
	}
	if got := f.Algorithms(); len(got) != 3 || !slices.Equal(got[Catalan], want[Catalan]) {
		t.Errorf("Algorithms() = %v", got)
	}
	if got := AlgorithmNames(f); !slices.Equal(got, []string{"bigint", "doubling", "factorial", "iterative", "recurrence"}) {
		t.Errorf("AlgorithmNames() = %v", got)
	}
}

func TestDefaultFactoryRegister(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	t.Run("RegisterAndHas", func(t *testing.T) {
		if err := f.Register(Fibonacci, "stub", func() coreCalculator { return stubCore{seq: Fibonacci} }); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if !f.Has(Fibonacci, "stub") {
			t.Error("factory should have fibonacci/stub")
		}
		if f.Has(Factorial, "stub") {
			t.Error("registration must be scoped to its sequence")
		}
	})

	t.Run("SequenceMismatch", func(t *testing.T) {
		err := f.Register(Catalan, "wrong", func() coreCalculator { return stubCore{seq: Factorial} })
		if err == nil {
			t.Error("registering a factorial calculator under catalan should fail")
		}
		if f.Has(Catalan, "wrong") {
			t.Error("rejected calculator must not be registered")
		}
	})

	t.Run("NilCreator", func(t *testing.T) {
		if err := f.Register(Catalan, "nil", nil); err == nil {
			t.Error("nil creator should be rejected")
		}
	})

	t.Run("GetCaches", func(t *testing.T) {
		first, err := f.Get(Fibonacci, "stub")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		second, _ := f.Get(Fibonacci, "stub")
		if first != second {
			t.Error("Get should return the cached instance")
		}
		got, err := first.Calculate(context.Background(), nil, 0, 1)
		if err != nil || !got.Equal(biguint.New(42)) {
			t.Errorf("stub returned %v, %v", got, err)
		}
	})

	t.Run("ReRegisterInvalidatesCache", func(t *testing.T) {
		before := mustGet(t, f, Fibonacci, "stub")
		_ = f.Register(Fibonacci, "stub", func() coreCalculator { return stubCore{seq: Fibonacci} })
		if after := mustGet(t, f, Fibonacci, "stub"); after == before {
			t.Error("re-registering should drop the cached calculator")
		}
	})

	t.Run("GetAll", func(t *testing.T) {
		all := f.GetAll(Fibonacci)
		if _, ok := all["stub"]; !ok {
			t.Error("GetAll should contain the stub")
		}
		for name, calc := range all {
			if calc.Sequence() != Fibonacci {
				t.Errorf("%s belongs to %s", name, calc.Sequence())
			}
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := f.Get(Catalan, "doubling")
		var unknown *UnknownCalculatorError
		if !errors.As(err, &unknown) || unknown.Name != "doubling" || unknown.Sequence != Catalan {
			t.Errorf("expected UnknownCalculatorError, got %v", err)
		}
	})
}

func TestDefaultFactoryConcurrentGet(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	var wg sync.WaitGroup
	results := make([]Calculator, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = f.Get(Catalan, "recurrence")
		}(i)
	}
	wg.Wait()
	for _, calc := range results[1:] {
		if calc != results[0] {
			t.Fatal("concurrent Get returned different instances")
		}
	}
}

func TestTestFactory(t *testing.T) {
	t.Parallel()
	mock := &MockCalculator{Seq: Catalan, Label: "canned", Result: biguint.New(5)}
	f := NewTestFactory(map[string]Calculator{"canned": mock})

	if got := f.List(Catalan); !slices.Equal(got, []string{"canned"}) {
		t.Errorf("List = %v", got)
	}
	if len(f.List(Factorial)) != 0 {
		t.Error("mock should only be filed under catalan")
	}
	calc, err := f.Get(Catalan, "canned")
	if err != nil || calc != mock {
		t.Fatalf("Get = %v, %v", calc, err)
	}
	if _, err := f.Get(Fibonacci, "canned"); err == nil {
		t.Error("Get for another sequence should fail")
	}

	progress := make(chan ProgressUpdate, 1)
	got, err := calc.Calculate(context.Background(), progress, 3, 3)
	if err != nil || !got.Equal(biguint.New(5)) {
		t.Errorf("Calculate = %v, %v", got, err)
	}
	if update := <-progress; update.CalculatorIndex != 3 || update.Value != 1.0 {
		t.Errorf("unexpected progress %+v", update)
	}
}
