package sequence

import (
	"fmt"
	"strings"
)

// Sequence identifies one of the integer sequences the calculators produce.
type Sequence string

const (
	Factorial Sequence = "factorial"
	Fibonacci Sequence = "fibonacci"
	Catalan   Sequence = "catalan"
)

var allSequences = []Sequence{Catalan, Factorial, Fibonacci}

// All returns every supported sequence in alphabetical order.
func All() []Sequence {
	out := make([]Sequence, len(allSequences))
	copy(out, allSequences)
	return out
}

// Names returns the names of All.
func Names() []string {
	names := make([]string, len(allSequences))
	for i, s := range allSequences {
		names[i] = string(s)
	}
	return names
}

// ParseSequence resolves a case-insensitive sequence name.
func ParseSequence(name string) (Sequence, error) {
	s := Sequence(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range allSequences {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown sequence: %q", name)
}

// Symbol is the short mathematical notation used when printing a term,
// e.g. "F" for F(n).
func (s Sequence) Symbol() string {
	switch s {
	case Factorial:
		return "!"
	case Fibonacci:
		return "F"
	case Catalan:
		return "C"
	default:
		return "?"
	}
}

// Term formats the n-th term label, "20!" for factorials and "F(50)" for
// the others.
func (s Sequence) Term(n uint64) string {
	if s == Factorial {
		return fmt.Sprintf("%d!", n)
	}
	return fmt.Sprintf("%s(%d)", s.Symbol(), n)
}
