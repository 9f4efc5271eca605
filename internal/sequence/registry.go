package sequence

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// CalculatorFactory creates and caches calculators keyed by sequence and
// algorithm name.
type CalculatorFactory interface {
	// Get returns the cached calculator for seq and algo, creating it on
	// first use.
	Get(seq Sequence, algo string) (Calculator, error)

	// List returns the sorted algorithm names registered for seq.
	List(seq Sequence) []string

	// Algorithms returns List for every sequence.
	Algorithms() map[Sequence][]string

	// GetAll returns every calculator registered for seq, keyed by
	// algorithm name.
	GetAll(seq Sequence) map[string]Calculator

	// Has reports whether algo is registered for seq.
	Has(seq Sequence, algo string) bool
}

// UnknownCalculatorError is returned when no calculator is registered under
// the requested name.
type UnknownCalculatorError struct {
	Sequence Sequence
	Name     string
}

func (e *UnknownCalculatorError) Error() string {
	return "unknown calculator for " + string(e.Sequence) + ": " + e.Name
}

type registryKey struct {
	seq  Sequence
	algo string
}

// DefaultFactory is the thread-safe CalculatorFactory used by the
// application.
type DefaultFactory struct {
	mu          sync.RWMutex
	creators    map[registryKey]func() coreCalculator
	calculators map[registryKey]Calculator
}

// NewDefaultFactory returns a factory with the built-in calculators:
//
//   - factorial: "iterative", "bigint"
//   - fibonacci: "iterative", "doubling", "bigint"
//   - catalan: "factorial", "recurrence", "bigint"
//
// Builds with the gmp tag add "gmp" for factorial and fibonacci to the
// global factory.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:    make(map[registryKey]func() coreCalculator),
		calculators: make(map[registryKey]Calculator),
	}

	_ = f.Register(Factorial, "iterative", func() coreCalculator { return IterativeFactorial{} })
	_ = f.Register(Factorial, "bigint", func() coreCalculator { return BigFactorial{} })
	_ = f.Register(Fibonacci, "iterative", func() coreCalculator { return IterativeFibonacci{} })
	_ = f.Register(Fibonacci, "doubling", func() coreCalculator { return DoublingFibonacci{} })
	_ = f.Register(Fibonacci, "bigint", func() coreCalculator { return BigFibonacci{} })
	_ = f.Register(Catalan, "factorial", func() coreCalculator { return FactorialRatioCatalan{} })
	_ = f.Register(Catalan, "recurrence", func() coreCalculator { return RecurrenceCatalan{} })
	_ = f.Register(Catalan, "bigint", func() coreCalculator { return BigCatalan{} })

	return f
}

// Register adds or replaces the creator for seq and algo. The creator is
// called lazily on first Get. It fails when the creator's sequence does not
// match seq.
func (f *DefaultFactory) Register(seq Sequence, algo string, creator func() coreCalculator) error {
	if creator == nil {
		return fmt.Errorf("nil creator for %s/%s", seq, algo)
	}
	if got := creator().Sequence(); got != seq {
		return fmt.Errorf("calculator %q produces %s, not %s", algo, got, seq)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := registryKey{seq: seq, algo: algo}
	f.creators[key] = creator
	delete(f.calculators, key)
	return nil
}

func (f *DefaultFactory) Get(seq Sequence, algo string) (Calculator, error) {
	key := registryKey{seq: seq, algo: algo}

	f.mu.RLock()
	if calc, exists := f.calculators[key]; exists {
		f.mu.RUnlock()
		return calc, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if calc, exists := f.calculators[key]; exists {
		return calc, nil
	}
	creator, ok := f.creators[key]
	if !ok {
		return nil, &UnknownCalculatorError{Sequence: seq, Name: algo}
	}
	calc := NewCalculator(creator())
	f.calculators[key] = calc
	return calc, nil
}

func (f *DefaultFactory) Has(seq Sequence, algo string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[registryKey{seq: seq, algo: algo}]
	return exists
}

func (f *DefaultFactory) List(seq Sequence) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for key := range f.creators {
		if key.seq == seq {
			names = append(names, key.algo)
		}
	}
	sort.Strings(names)
	return names
}

func (f *DefaultFactory) Algorithms() map[Sequence][]string {
	out := make(map[Sequence][]string, len(allSequences))
	for _, seq := range allSequences {
		out[seq] = f.List(seq)
	}
	return out
}

func (f *DefaultFactory) GetAll(seq Sequence) map[string]Calculator {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make(map[string]Calculator)
	for key, creator := range f.creators {
		if key.seq != seq {
			continue
		}
		calc, exists := f.calculators[key]
		if !exists {
			calc = NewCalculator(creator())
			f.calculators[key] = calc
		}
		result[key.algo] = calc
	}
	return result
}

// AlgorithmNames returns the distinct algorithm names registered for any
// sequence, sorted. Configuration validates -algo against this list.
func AlgorithmNames(f CalculatorFactory) []string {
	var names []string
	for _, list := range f.Algorithms() {
		for _, name := range list {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterCalculator registers a calculator in the global factory.
func RegisterCalculator(seq Sequence, algo string, creator func() coreCalculator) error {
	return globalFactory.Register(seq, algo, creator)
}
