// The cli package renders calculation progress and results on the terminal.
// It handles the asynchronous display of progress for concurrent calculators
// and formats decimal results for a readable presentation.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/sequence"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/biguint"
	"github.com/briandowns/spinner"
)

// FormatExecutionDuration shows microseconds below a millisecond,
// milliseconds below a second and the default representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the digit count above which a result is truncated
	// on standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept on each side of a truncated
	// result.
	DisplayEdges = 25
	// ProgressRefreshRate is the refresh period of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState holds the latest progress of each concurrent calculator.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

func NewProgressState(numCalculators int) *ProgressState {
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records value for the calculator at index. Out-of-range indices
// are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress across calculators.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numCalculators == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numCalculators)
}

func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

func progressLabel(numCalculators int) string {
	if numCalculators > 1 {
		return "Avg progress"
	}
	return "Progress"
}

// DisplayProgress renders a spinner and an averaged progress bar until
// progressChan is closed, then prints a final 100% line. It is meant to run
// in its own goroutine and calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan sequence.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	if numCalculators <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressWithETA(numCalculators)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	label := progressLabel(numCalculators)
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.CalculatorIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label,
				FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}

// scientific renders the leading digits of a decimal string as d.dddddde+N.
func scientific(digits string) string {
	mantissa := digits[:1]
	if len(digits) > 1 {
		frac := digits[1:]
		if len(frac) > 6 {
			frac = frac[:6]
		}
		mantissa += "." + frac
	}
	return fmt.Sprintf("%se+%02d", mantissa, len(digits)-1)
}

// DisplayResult prints the value computed for label (for example "F(50)").
// details adds digit count and timing; concise enables the value section,
// which is truncated above TruncationLimit digits unless verbose is set.
func DisplayResult(result biguint.Int, label string, duration time.Duration, verbose, details, concise bool, out io.Writer) {
	resultStr := result.String()
	numDigits := len(resultStr)
	fmt.Fprintf(out, "Result size: %s%s%s digits.\n", ui.ColorCyan(), formatNumberString(fmt.Sprintf("%d", numDigits)), ui.ColorReset())

	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		durationStr := FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Calculation time       : %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
		if numDigits > 6 {
			fmt.Fprintf(out, "Scientific notation    : %s%s%s\n", ui.ColorCyan(), scientific(resultStr), ui.ColorReset())
		}
	}

	if !concise {
		return
	}

	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	switch {
	case verbose:
		fmt.Fprintf(out, "%s%s%s =\n%s%s%s\n", ui.ColorMagenta(), label, ui.ColorReset(), ui.ColorGreen(), formatNumberString(resultStr), ui.ColorReset())
	case numDigits > TruncationLimit:
		fmt.Fprintf(out, "%s%s%s (truncated) = %s%s...%s%s\n",
			ui.ColorMagenta(), label, ui.ColorReset(),
			ui.ColorGreen(), resultStr[:DisplayEdges], resultStr[numDigits-DisplayEdges:], ui.ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full value)\n", ui.ColorYellow(), ui.ColorReset())
	default:
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n", ui.ColorMagenta(), label, ui.ColorReset(), ui.ColorGreen(), formatNumberString(resultStr), ui.ColorReset())
	}
}

// formatNumberString inserts thousands separators into a decimal string.
func formatNumberString(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var builder strings.Builder
	builder.Grow(n + (n-1)/3)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
