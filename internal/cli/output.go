package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/biguint"
)

// OutputConfig selects how a result is shown and whether it is saved.
type OutputConfig struct {
	// OutputFile is the path to save the result; empty disables file output.
	OutputFile string
	Quiet      bool
	Verbose    bool
	Details    bool
	// Concise enables the calculated value section.
	Concise bool
}

// WriteResultToFile saves result with a commented header. It is a no-op
// when cfg.OutputFile is empty. Missing parent directories are created.
func WriteResultToFile(result biguint.Int, label string, duration time.Duration, algo string, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	value := result.String()
	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Term: %s\n", label)
	fmt.Fprintf(file, "# Digits: %d\n", len(value))
	fmt.Fprintf(file, "\n%s =\n%s\n", label, value)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayQuietResult prints only the decimal value, for scripting.
func DisplayQuietResult(out io.Writer, result biguint.Int) {
	fmt.Fprintln(out, result.String())
}

// DisplayResultWithConfig shows result according to cfg and saves it when
// an output file is configured.
func DisplayResultWithConfig(out io.Writer, result biguint.Int, label string, duration time.Duration, algo string, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, label, duration, cfg.Verbose, cfg.Details, cfg.Concise, out)
	}

	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(result, label, duration, algo, cfg); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
	}
	return nil
}
