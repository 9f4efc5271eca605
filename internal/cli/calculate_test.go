package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/sequence"
	"github.com/agbru/bigcalc/internal/testutil"
)

func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := sequence.GlobalFactory()

	tests := []struct {
		name string
		seq  sequence.Sequence
		algo string
		want int
	}{
		{"all fibonacci", sequence.Fibonacci, "all", len(factory.List(sequence.Fibonacci))},
		{"all catalan", sequence.Catalan, "all", len(factory.List(sequence.Catalan))},
		{"single", sequence.Fibonacci, "doubling", 1},
		{"not registered for sequence", sequence.Factorial, "doubling", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			calcs := GetCalculatorsToRun(config.AppConfig{Algo: tt.algo}, factory, tt.seq)
			if len(calcs) != tt.want {
				t.Fatalf("got %d calculators, want %d", len(calcs), tt.want)
			}
			for _, c := range calcs {
				if c.Sequence() != tt.seq {
					t.Errorf("%s computes %s, want %s", c.Name(), c.Sequence(), tt.seq)
				}
			}
		})
	}
}

func TestGetCalculatorsToRunTestFactory(t *testing.T) {
	t.Parallel()
	factory := sequence.NewTestFactory(map[string]sequence.Calculator{
		"fast": &sequence.MockCalculator{Seq: sequence.Catalan, Label: "fast"},
	})
	if got := GetCalculatorsToRun(config.AppConfig{Algo: "fast"}, factory, sequence.Catalan); len(got) != 1 || got[0].Name() != "fast" {
		t.Errorf("expected the fast calculator, got %v", got)
	}
	if got := GetCalculatorsToRun(config.AppConfig{Algo: "fast"}, factory, sequence.Factorial); got != nil {
		t.Errorf("fast is not registered for factorial, got %v", got)
	}
}

func TestPrintExecution(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{N: 20, Timeout: time.Minute}
	PrintExecutionConfig(cfg, sequence.Factorial, &buf)
	PrintExecutionMode([]sequence.Calculator{
		&sequence.MockCalculator{Seq: sequence.Factorial, Label: "one"},
		&sequence.MockCalculator{Seq: sequence.Factorial, Label: "two"},
	}, &buf)

	out := testutil.StripAnsiCodes(buf.String())
	for _, want := range []string{"Calculating 20! with a timeout of 1m0s", "logical processors", "Parallel comparison of 2 algorithms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintExecutionMode([]sequence.Calculator{&sequence.MockCalculator{Label: "solo"}}, &buf)
	if !strings.Contains(testutil.StripAnsiCodes(buf.String()), "Single calculation with the solo algorithm") {
		t.Errorf("unexpected mode line: %q", buf.String())
	}
}
