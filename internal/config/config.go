// Package config provides the configuration management for the bigcalc
// application. It defines the configuration structure, parses command-line
// arguments, applies BIGCALC_* environment overrides and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/sequence"
)

const (
	// EnvPrefix is the prefix for all environment variables read by bigcalc.
	EnvPrefix = "BIGCALC_"
)

// Default configuration values.
const (
	DefaultOp        = OpDemo
	DefaultN  uint64 = 100
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout   = time.Minute
	DefaultPort      = "8080"
	DefaultAlgo      = "all"
	DefaultLogLevel  = "info"
	DefaultMaxN      = 100_000
	// DefaultMaxDigits keeps a schoolbook product of two maximal operands
	// within a few seconds, well inside DefaultTimeout.
	DefaultMaxDigits = 20_000
)

// Operations accepted by -op.
const (
	OpDemo = "demo"
	OpAdd  = "add"
	OpSub  = "sub"
	OpMul  = "mul"
	OpDiv  = "div"
	OpCmp  = "cmp"
)

// ArithmeticOps lists the binary operations that take -a and -b.
var ArithmeticOps = []string{OpAdd, OpSub, OpMul, OpDiv, OpCmp}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Op selects what the CLI does: the demo walkthrough, one arithmetic
	// operation, or one sequence term.
	Op string
	// A and B are the decimal operands of arithmetic operations.
	A, B string
	// N is the index for sequence operations.
	N uint64
	// Algo names the calculator to run for sequence operations, or "all".
	Algo string
	// Timeout sets the maximum duration of a calculation.
	Timeout time.Duration
	// Verbose, if true, displays full values instead of a truncated form.
	Verbose bool
	// Details, if true, adds digit counts and timing to the report.
	Details bool
	// JSONOutput, if true, prints results as JSON.
	JSONOutput bool
	// Quiet suppresses banners and progress for scripting.
	Quiet bool
	// OutputFile, if set, receives the result.
	OutputFile string
	// NoColor disables colored output. NO_COLOR is honored as well.
	NoColor bool
	// LogLevel is a zerolog level name.
	LogLevel string
	// ServerMode starts the HTTP API instead of the CLI.
	ServerMode bool
	// Port is the HTTP listen port in server mode.
	Port string
	// MaxN bounds sequence indices accepted by the service layer.
	MaxN uint64
	// MaxDigits bounds the length of decimal operands.
	MaxDigits int
}

// IsArithmetic reports whether Op is one of ArithmeticOps.
func (c AppConfig) IsArithmetic() bool {
	return slices.Contains(ArithmeticOps, c.Op)
}

// IsSequence reports whether Op names a sequence.
func (c AppConfig) IsSequence() bool {
	_, err := sequence.ParseSequence(c.Op)
	return err == nil
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableAlgos: the registered calculator names across all sequences.
//
// Returns:
//   - error: a ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxN == 0 {
		return apperrors.NewConfigError("max-n must be strictly positive")
	}
	if c.MaxDigits <= 0 {
		return apperrors.NewConfigError("max-digits must be strictly positive: %d", c.MaxDigits)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	if c.ServerMode {
		if c.Port == "" {
			return apperrors.NewConfigError("port cannot be empty in server mode")
		}
		return nil
	}

	switch {
	case c.Op == OpDemo:
	case c.IsArithmetic():
		if c.A == "" || c.B == "" {
			return apperrors.NewConfigError("operation '%s' requires both -a and -b", c.Op)
		}
	case c.IsSequence():
		if c.N > c.MaxN {
			return apperrors.NewConfigError("index %d exceeds max-n %d", c.N, c.MaxN)
		}
	default:
		valid := append([]string{OpDemo}, ArithmeticOps...)
		valid = append(valid, sequence.Names()...)
		return apperrors.NewConfigError("unrecognized operation: '%s'. Valid operations are: [%s]", c.Op, strings.Join(valid, ", "))
	}

	if c.Algo != DefaultAlgo && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// environment overrides for flags that were not set, and validates the
// result. Parse and validation errors are reported on errorWriter.
//
// Parameters:
//   - programName: the name used in the usage message.
//   - args: the command-line arguments, without the program name.
//   - errorWriter: where usage and errors are printed.
//   - availableAlgos: the registered calculator names.
//
// Returns:
//   - AppConfig: the populated configuration.
//   - error: flag.ErrHelp, a parse error, or a wrapped ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Calculator for sequence operations: 'all' (default) or one of [%s].", strings.Join(availableAlgos, ", "))
	opHelp := fmt.Sprintf("Operation: %s (default), %s, or a sequence (%s).",
		OpDemo, strings.Join(ArithmeticOps, ", "), strings.Join(sequence.Names(), ", "))

	config := AppConfig{}
	fs.StringVar(&config.Op, "op", DefaultOp, opHelp)
	fs.StringVar(&config.A, "a", "", "First decimal operand for arithmetic operations.")
	fs.StringVar(&config.B, "b", "", "Second decimal operand for arithmetic operations.")
	fs.Uint64Var(&config.N, "n", DefaultN, "Index for sequence operations.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the calculation.")
	fs.BoolVar(&config.Verbose, "v", false, "Display full values (can be very long).")
	fs.BoolVar(&config.Details, "d", false, "Display digit counts and timing details.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.Uint64Var(&config.MaxN, "max-n", DefaultMaxN, "Largest sequence index accepted.")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Largest operand length (in digits) accepted.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Op = strings.ToLower(strings.TrimSpace(config.Op))
	config.Algo = strings.ToLower(config.Algo)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// setCustomUsage prints a short synopsis before the flag list.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintln(out, "Exact arithmetic on arbitrarily large non-negative integers.")
		fmt.Fprintln(out, "\nExamples:")
		fmt.Fprintf(out, "  %s -op mul -a 123456789 -b 987654321\n", fs.Name())
		fmt.Fprintf(out, "  %s -op catalan -n 500 -algo all\n", fs.Name())
		fmt.Fprintf(out, "  %s -server -port 9090\n", fs.Name())
		fmt.Fprintln(out, "\nOptions:")
		fs.PrintDefaults()
	}
}

// IsConfigError reports whether err stems from configuration validation.
func IsConfigError(err error) bool {
	var configErr apperrors.ConfigError
	return errors.As(err, &configErr)
}
