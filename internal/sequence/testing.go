package sequence

import (
	"context"
	"sort"

	"github.com/agbru/bigcalc/pkg/biguint"
)

// MockCalculator is a Calculator with canned behavior, exported for tests
// in other packages.
type MockCalculator struct {
	Seq    Sequence
	Label  string
	Result biguint.Int
	Err    error
	Fn     func(ctx context.Context, n uint64) (biguint.Int, error)
}

func (m *MockCalculator) Name() string {
	if m.Label != "" {
		return m.Label
	}
	return "mock"
}

func (m *MockCalculator) Sequence() Sequence {
	if m.Seq == "" {
		return Fibonacci
	}
	return m.Seq
}

// Calculate calls Fn when set; otherwise it reports completion and returns
// Result and Err.
func (m *MockCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64) (biguint.Int, error) {
	if m.Fn != nil {
		return m.Fn(ctx, n)
	}
	if progressChan != nil {
		select {
		case progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: 1.0}:
		default:
		}
	}
	return m.Result, m.Err
}

// TestFactory is a CalculatorFactory over a fixed set of calculators. Each
// calculator is filed under its own Sequence().
type TestFactory struct {
	calculators map[Sequence]map[string]Calculator
}

// NewTestFactory builds a factory from algorithm names to calculators.
func NewTestFactory(calculators map[string]Calculator) *TestFactory {
	f := &TestFactory{calculators: make(map[Sequence]map[string]Calculator)}
	for name, calc := range calculators {
		seq := calc.Sequence()
		if f.calculators[seq] == nil {
			f.calculators[seq] = make(map[string]Calculator)
		}
		f.calculators[seq][name] = calc
	}
	return f
}

func (f *TestFactory) Get(seq Sequence, algo string) (Calculator, error) {
	calc, ok := f.calculators[seq][algo]
	if !ok {
		return nil, &UnknownCalculatorError{Sequence: seq, Name: algo}
	}
	return calc, nil
}

func (f *TestFactory) Has(seq Sequence, algo string) bool {
	_, ok := f.calculators[seq][algo]
	return ok
}

func (f *TestFactory) List(seq Sequence) []string {
	names := make([]string, 0, len(f.calculators[seq]))
	for name := range f.calculators[seq] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *TestFactory) Algorithms() map[Sequence][]string {
	out := make(map[Sequence][]string)
	for _, seq := range allSequences {
		out[seq] = f.List(seq)
	}
	return out
}

func (f *TestFactory) GetAll(seq Sequence) map[string]Calculator {
	result := make(map[string]Calculator, len(f.calculators[seq]))
	for k, v := range f.calculators[seq] {
		result[k] = v
	}
	return result
}
