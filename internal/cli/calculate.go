package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/sequence"
	"github.com/agbru/bigcalc/internal/ui"
)

// GetCalculatorsToRun returns the calculators selected by cfg.Algo for seq,
// in the factory's sorted order when cfg.Algo is "all". It returns nil when
// the named algorithm is not registered for seq.
func GetCalculatorsToRun(cfg config.AppConfig, factory sequence.CalculatorFactory, seq sequence.Sequence) []sequence.Calculator {
	if cfg.Algo == "all" {
		keys := factory.List(seq)
		calculators := make([]sequence.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(seq, k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if !factory.Has(seq, cfg.Algo) {
		return nil
	}
	if calc, err := factory.Get(seq, cfg.Algo); err == nil {
		return []sequence.Calculator{calc}
	}
	return nil
}

// PrintExecutionConfig shows the requested term, timeout and runtime.
func PrintExecutionConfig(cfg config.AppConfig, seq sequence.Sequence, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), seq.Term(cfg.N), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode describes whether one calculator runs or several are
// compared.
func PrintExecutionMode(calculators []sequence.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = fmt.Sprintf("Parallel comparison of %d algorithms", len(calculators))
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
