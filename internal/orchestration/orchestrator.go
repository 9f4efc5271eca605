// Package orchestration runs several sequence calculators on the same term
// concurrently and checks that they agree.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/sequence"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/biguint"
)

// CalculationResult is the outcome of one calculator run.
type CalculationResult struct {
	// Name is the calculator's display name.
	Name string
	// Result is meaningful only when Err is nil.
	Result   biguint.Int
	Duration time.Duration
	Err      error
}

// observableCalculator is implemented by calculators that accept a progress
// subject, such as sequence.InstrumentedCalculator.
type observableCalculator interface {
	CalculateWithObservers(ctx context.Context, subject *sequence.ProgressSubject, calcIndex int, n uint64) (biguint.Int, error)
}

// LogProgressThreshold is the progress step between debug log entries.
const LogProgressThreshold = 0.25

// ProgressBufferMultiplier sizes the progress channel per calculator so
// that workers rarely block on a slow display.
const ProgressBufferMultiplier = 5

// ExecuteCalculations runs every calculator on term cfg.N concurrently and
// returns their results in input order. Progress is rendered on out unless
// cfg.Quiet is set, exported to the progress gauge and logged at debug
// level. A failing calculator does not cancel the others.
func ExecuteCalculations(ctx context.Context, calculators []sequence.Calculator, cfg config.AppConfig, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan sequence.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var display sequence.ProgressObserver = sequence.NewChannelObserver(progressChan)
	displayOut := out
	if cfg.Quiet {
		display = sequence.NewNoOpObserver()
		displayOut = io.Discard
	}
	metrics := sequence.NewMetricsObserver()
	metrics.ResetMetrics()

	subject := sequence.NewProgressSubject()
	subject.Register(display)
	subject.Register(metrics)
	subject.Register(sequence.NewLoggingObserver(log.Logger, LogProgressThreshold))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(calculators), displayOut)

	for i, calc := range calculators {
		g.Go(func() error {
			start := time.Now()
			var res biguint.Int
			var err error
			if oc, ok := calc.(observableCalculator); ok {
				res, err = oc.CalculateWithObservers(ctx, subject, i, cfg.N)
			} else {
				res, err = calc.Calculate(ctx, progressChan, i, cfg.N)
			}
			results[i] = CalculationResult{
				Name: calc.Name(), Result: res, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// FirstSuccess returns the fastest successful result, if any.
func FirstSuccess(results []CalculationResult) (CalculationResult, bool) {
	var best CalculationResult
	found := false
	for _, r := range results {
		if r.Err == nil && (!found || r.Duration < best.Duration) {
			best, found = r, true
		}
	}
	return best, found
}

// Consistent reports whether every successful result holds the same value.
func Consistent(results []CalculationResult) bool {
	first, ok := FirstSuccess(results)
	if !ok {
		return true
	}
	for _, r := range results {
		if r.Err == nil && !r.Result.Equal(first.Result) {
			return false
		}
	}
	return true
}

// AnalyzeComparisonResults prints a table of results sorted by duration,
// checks consistency and displays the agreed value for term cfg.N of seq.
// It returns the process exit code: ExitErrorMismatch when successful
// results differ, the error's code when every calculator failed.
func AnalyzeComparisonResults(results []CalculationResult, seq sequence.Sequence, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	report := out
	if cfg.Quiet {
		report = io.Discard
	}

	var firstError error
	fmt.Fprintf(report, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(report, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sAlgorithm%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	best, ok := FirstSuccess(results)
	if !ok {
		fmt.Fprintf(report, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		return apperrors.HandleCalculationError(firstError, 0, out, ui.ColorProvider{})
	}

	if !Consistent(results) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the algorithms.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(report, "\nGlobal Status: Success. All valid results are consistent.\n")
	err := cli.DisplayResultWithConfig(out, best.Result, seq.Term(cfg.N), best.Duration, best.Name, cli.OutputConfig{
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
		Verbose:    cfg.Verbose,
		Details:    cfg.Details,
		Concise:    true,
	})
	if err != nil {
		fmt.Fprintf(out, "%sError writing output: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
