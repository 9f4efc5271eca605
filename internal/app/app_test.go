package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sequence"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/internal/testutil"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/biguint"
)

// runWithStderr builds and runs the application with args and returns the
// exit code with both outputs. New installs global logger and theme state,
// so callers must not be parallel.
func runWithStderr(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	original := ui.GetCurrentTheme()
	t.Cleanup(func() { ui.SetCurrentTheme(original) })

	var stdout, stderr bytes.Buffer
	application, err := New(append([]string{"bigcalc", "-no-color"}, args...), &stderr)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", args, err)
	}
	code := application.Run(context.Background(), &stdout)
	return code, testutil.StripAnsiCodes(stdout.String()), testutil.StripAnsiCodes(stderr.String())
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	code, out, _ := runWithStderr(t, args...)
	return code, out
}

func TestNew(t *testing.T) {
	application, err := New([]string{"bigcalc", "-op", "fibonacci", "-n", "30", "-algo", "doubling"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if application.Config.Op != "fibonacci" || application.Config.N != 30 {
		t.Errorf("config = %+v", application.Config)
	}
	if application.Factory == nil || application.Service == nil || application.Logger == nil {
		t.Error("application is not fully wired")
	}
}

func TestNewErrors(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		_, err := New([]string{"bigcalc", "-h"}, io.Discard)
		if !IsHelpError(err) {
			t.Errorf("err = %v, want flag.ErrHelp", err)
		}
	})
	t.Run("unknown algorithm", func(t *testing.T) {
		var stderr bytes.Buffer
		_, err := New([]string{"bigcalc", "-op", "factorial", "-algo", "magic"}, &stderr)
		if err == nil || !config.IsConfigError(err) {
			t.Fatalf("err = %v, want a ConfigError", err)
		}
		if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
			t.Errorf("exit code = %d", apperrors.ExitCodeFor(err))
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Error("usage should be printed on configuration errors")
		}
	})
	t.Run("no args uses defaults", func(t *testing.T) {
		application, err := New(nil, io.Discard)
		if err != nil {
			t.Fatal(err)
		}
		if application.Config.Op != config.OpDemo {
			t.Errorf("default op = %q", application.Config.Op)
		}
	})
}

func TestRunDemo(t *testing.T) {
	code, out := run(t)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{
		"a * b = 1219326311370217952237463801111263526900",
		"Factorial(20) = 2432902008176640000",
		"Fibonacci(50) = 12586269025",
		"Catalan(10) = 16796",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDemoJSON(t *testing.T) {
	code, out := run(t, "-json")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	var lines []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(out), &lines); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(lines) != 8 || lines[3].Label != "b - a" || lines[3].Value != "86419753208641975320" {
		t.Errorf("unexpected demo JSON: %+v", lines)
	}
}

func TestRunArithmetic(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantOut    string
		wantStderr string
	}{
		{"add", []string{"-op", "add", "-a", "999", "-b", "1"}, apperrors.ExitSuccess, "999 + 1 = 1000", ""},
		{"quiet div", []string{"-q", "-op", "div", "-a", "100", "-b", "7"}, apperrors.ExitSuccess, "14\n", ""},
		{"cmp", []string{"-op", "cmp", "-a", "5", "-b", "5"}, apperrors.ExitSuccess, "5 <=> 5 = 0", ""},
		{"underflow", []string{"-op", "sub", "-a", "3", "-b", "5"}, apperrors.ExitErrorArithmetic, "", "Status: Failure (Underflow)"},
		{"division by zero", []string{"-op", "div", "-a", "3", "-b", "0"}, apperrors.ExitErrorArithmetic, "", "Status: Failure (DivisionByZero)"},
		{"invalid operand", []string{"-op", "mul", "-a", "1x", "-b", "2"}, apperrors.ExitErrorArithmetic, "", "Status: Failure (InvalidFormat)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, stderr := runWithStderr(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d; output:\n%s%s", code, tt.wantCode, out, stderr)
			}
			if tt.wantOut != "" && !strings.Contains(out, tt.wantOut) {
				t.Errorf("stdout missing %q:\n%s", tt.wantOut, out)
			}
			if tt.wantStderr != "" {
				if !strings.Contains(stderr, tt.wantStderr) {
					t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr)
				}
				if strings.Contains(out, "Status:") {
					t.Errorf("failure status must not be written to stdout:\n%s", out)
				}
			}
		})
	}
}

func TestRunArithmeticJSONAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product.txt")
	code, out := run(t, "-json", "-op", "mul", "-a", "12", "-b", "12")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	var resp map[string]string
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["result"] != "144" || resp["op"] != "mul" {
		t.Errorf("JSON = %v", resp)
	}

	code, _ = run(t, "-op", "mul", "-a", "12", "-b", "12", "-o", path)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "12 * 12 =\n144") {
		t.Errorf("file content:\n%s", content)
	}
}

func TestRunSequence(t *testing.T) {
	code, out := run(t, "-op", "catalan", "-n", "10")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d; output:\n%s", code, out)
	}
	for _, want := range []string{"Calculating C(10)", "Parallel comparison", "Comparison Summary", "All valid results are consistent", "C(10) = 16,796"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSequenceQuiet(t *testing.T) {
	code, out := run(t, "-q", "-op", "factorial", "-n", "20", "-algo", "iterative")
	if code != apperrors.ExitSuccess || out != "2432902008176640000\n" {
		t.Errorf("code %d, output %q", code, out)
	}
}

func TestRunSequenceJSON(t *testing.T) {
	code, out := run(t, "-json", "-op", "fibonacci", "-n", "90")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	var results []jsonResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(results) != len(sequence.GlobalFactory().List(sequence.Fibonacci)) {
		t.Errorf("got %d results", len(results))
	}
	for _, r := range results {
		if r.Result != "2880067194370816120" || r.Sequence != "fibonacci" || r.N != 90 {
			t.Errorf("unexpected result %+v", r)
		}
	}
}

func TestRunSequenceAlgorithmForOtherSequence(t *testing.T) {
	// "doubling" is a registered Fibonacci algorithm, so parsing succeeds.
	var stderr bytes.Buffer
	application, err := New([]string{"bigcalc", "-no-color", "-op", "factorial", "-n", "5", "-algo", "doubling"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if code := application.Run(context.Background(), io.Discard); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(stderr.String(), "not available for factorial") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunSequenceTimeout(t *testing.T) {
	application, err := New([]string{"bigcalc", "-no-color", "-op", "fibonacci", "-n", "10"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	application.Config.Timeout = time.Millisecond
	application.Factory = sequence.NewTestFactory(map[string]sequence.Calculator{
		"slow": &sequence.MockCalculator{Fn: func(ctx context.Context, n uint64) (biguint.Int, error) {
			<-ctx.Done()
			return biguint.Int{}, ctx.Err()
		}},
	})

	var out bytes.Buffer
	if code := application.Run(context.Background(), &out); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want timeout; output:\n%s", code, out.String())
	}
}

func TestPrintJSONResultsExitCodes(t *testing.T) {
	t.Parallel()
	one, two := biguint.New(1), biguint.New(2)
	tests := []struct {
		name    string
		results []orchestration.CalculationResult
		want    int
	}{
		{"consistent", []orchestration.CalculationResult{{Name: "a", Result: one}, {Name: "b", Result: one}}, apperrors.ExitSuccess},
		{"mismatch", []orchestration.CalculationResult{{Name: "a", Result: one}, {Name: "b", Result: two}}, apperrors.ExitErrorMismatch},
		{"all canceled", []orchestration.CalculationResult{{Name: "a", Err: context.Canceled}}, apperrors.ExitErrorCanceled},
		{"all failed", []orchestration.CalculationResult{{Name: "a", Err: errors.New("x")}}, apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		if got := printJSONResults(tt.results, sequence.Fibonacci, 1, io.Discard); got != tt.want {
			t.Errorf("%s: exit code = %d, want %d", tt.name, got, tt.want)
		}
	}
}

type failingService struct{ err error }

func (f failingService) Arithmetic(context.Context, string, string, string) (service.ArithmeticResult, error) {
	return service.ArithmeticResult{}, f.err
}

func (f failingService) Calculate(context.Context, sequence.Sequence, string, uint64) (biguint.Int, error) {
	return biguint.Int{}, f.err
}

func TestRunArithmeticCanceled(t *testing.T) {
	application, err := New([]string{"bigcalc", "-no-color", "-op", "add", "-a", "1", "-b", "2"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	application.Service = failingService{err: context.Canceled}
	if code := application.Run(context.Background(), io.Discard); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}
