package cli

import (
	"fmt"
	"io"

	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/biguint"
)

// Demo operands.
const (
	DemoA = "12345678901234567890"
	DemoB = "98765432109876543210"
)

// DemoLine is one labelled value of the demonstration.
type DemoLine struct {
	Label string      `json:"label"`
	Value biguint.Int `json:"value"`
}

// DemoLines computes the demonstration: the two operands, their sum,
// difference and product, then 20!, F(50) and C(10).
func DemoLines() ([]DemoLine, error) {
	a := biguint.MustParse(DemoA)
	b := biguint.MustParse(DemoB)
	diff, err := b.Sub(a)
	if err != nil {
		return nil, err
	}
	return []DemoLine{
		{"a", a},
		{"b", b},
		{"a + b", a.Add(b)},
		{"b - a", diff},
		{"a * b", a.Mul(b)},
		{"Factorial(20)", biguint.Factorial(20)},
		{"Fibonacci(50)", biguint.Fibonacci(50)},
		{"Catalan(10)", biguint.Catalan(10)},
	}, nil
}

// RunDemo prints the demonstration, one "label = value" line each.
func RunDemo(out io.Writer) error {
	lines, err := DemoLines()
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n", ui.ColorMagenta(), l.Label, ui.ColorReset(), ui.ColorGreen(), l.Value, ui.ColorReset())
	}
	return nil
}

// DisplayArithmeticResult prints "a op b = value". Quiet mode prints the
// value alone; details adds the operand sizes and timing.
func DisplayArithmeticResult(out io.Writer, r service.ArithmeticResult, cfg OutputConfig) {
	if cfg.Quiet {
		fmt.Fprintln(out, r.Text())
		return
	}

	fmt.Fprintf(out, "%s %s%s%s %s = %s%s%s\n",
		r.A, ui.ColorYellow(), r.Symbol(), ui.ColorReset(), r.B,
		ui.ColorGreen(), r.Text(), ui.ColorReset())

	if cfg.Details {
		fmt.Fprintf(out, "\n%s--- Operation details ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Operand digits         : %s%d%s and %s%d%s\n",
			ui.ColorCyan(), r.A.Len(), ui.ColorReset(), ui.ColorCyan(), r.B.Len(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time       : %s%s%s\n", ui.ColorGreen(), FormatExecutionDuration(r.Duration), ui.ColorReset())
	}
}
