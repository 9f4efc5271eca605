package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sequence"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application is a configured bigcalc run.
type Application struct {
	Config config.AppConfig
	// Factory resolves sequence calculators.
	Factory sequence.CalculatorFactory
	Service service.Service
	Logger  logging.Logger
	// ErrWriter receives usage text and diagnostics, typically os.Stderr.
	ErrWriter io.Writer
}

// New parses args (program name first) and wires the application. Help
// requests return flag.ErrHelp; see IsHelpError.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := sequence.GlobalFactory()

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, sequence.AlgorithmNames(factory))
	if err != nil {
		return nil, err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return nil, apperrors.WrapError(err, "log level")
	}
	logger := logging.ConfigureGlobal(errWriter, cfg.NoColor)
	logger.Debug("configuration loaded",
		logging.String("op", cfg.Op),
		logging.String("algo", cfg.Algo),
		logging.Uint64("n", cfg.N),
		logging.Bool("server", cfg.ServerMode))

	return &Application{
		Config:    cfg,
		Factory:   factory,
		Service:   service.NewCalculatorService(factory, cfg.MaxN, cfg.MaxDigits),
		Logger:    logger,
		ErrWriter: errWriter,
	}, nil
}

// Run dispatches to server, demo, arithmetic or sequence mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.Op == config.OpDemo:
		return a.runDemo(out)
	case a.Config.IsArithmetic():
		return a.runArithmetic(ctx, out)
	default:
		return a.runSequence(ctx, out)
	}
}

func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(a.Logger), server.WithService(a.Service))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runDemo(out io.Writer) int {
	if a.Config.JSONOutput {
		lines, err := cli.DemoLines()
		if err != nil {
			return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ColorProvider{})
		}
		return writeJSON(out, lines)
	}
	if err := cli.RunDemo(out); err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ColorProvider{})
	}
	return apperrors.ExitSuccess
}

// arithJSON mirrors the HTTP /arith response.
type arithJSON struct {
	Op       string `json:"op"`
	A        string `json:"a"`
	B        string `json:"b"`
	Result   string `json:"result"`
	Duration string `json:"duration"`
}

func (a *Application) runArithmetic(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	result, err := a.Service.Arithmetic(ctx, a.Config.Op, a.Config.A, a.Config.B)
	if err != nil {
		a.Logger.Debug("arithmetic failed", logging.String("op", a.Config.Op), logging.Err(err))
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ColorProvider{})
	}

	if a.Config.JSONOutput {
		return writeJSON(out, arithJSON{
			Op:       result.Op,
			A:        result.A.String(),
			B:        result.B.String(),
			Result:   result.Text(),
			Duration: result.Duration.String(),
		})
	}

	outputCfg := a.outputConfig()
	cli.DisplayArithmeticResult(out, result, outputCfg)
	if a.Config.Op != config.OpCmp && outputCfg.OutputFile != "" {
		label := fmt.Sprintf("%s %s %s", result.A, result.Symbol(), result.B)
		if err := cli.WriteResultToFile(result.Value, label, result.Duration, a.Config.Op, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}
	return apperrors.ExitSuccess
}

func (a *Application) runSequence(ctx context.Context, out io.Writer) int {
	seq, err := sequence.ParseSequence(a.Config.Op)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	calculators := cli.GetCalculatorsToRun(a.Config, a.Factory, seq)
	if len(calculators) == 0 {
		err := apperrors.NewConfigError("algorithm '%s' is not available for %s. Valid algorithms are: %v", a.Config.Algo, seq, a.Factory.List(seq))
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ColorProvider{})
	}

	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, seq, out)
		cli.PrintExecutionMode(calculators, out)
	}

	progressOut := out
	if a.Config.JSONOutput {
		progressOut = io.Discard
	}
	results := orchestration.ExecuteCalculations(ctx, calculators, a.Config, progressOut)

	if a.Config.JSONOutput {
		return printJSONResults(results, seq, a.Config.N, out)
	}
	return orchestration.AnalyzeComparisonResults(results, seq, a.Config, out)
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
		Concise:    true,
	}
}

// IsHelpError reports whether err is the result of -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonResult is one calculator's outcome in JSON output.
type jsonResult struct {
	Sequence  string `json:"sequence"`
	N         uint64 `json:"n"`
	Algorithm string `json:"algorithm"`
	Duration  string `json:"duration"`
	Result    string `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

// printJSONResults writes one entry per calculator. The exit code follows
// the same rules as the text report.
func printJSONResults(results []orchestration.CalculationResult, seq sequence.Sequence, n uint64, out io.Writer) int {
	output := make([]jsonResult, len(results))
	var firstErr error
	for i, res := range results {
		jr := jsonResult{
			Sequence:  string(seq),
			N:         n,
			Algorithm: res.Name,
			Duration:  res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			if firstErr == nil {
				firstErr = res.Err
			}
		} else {
			jr.Result = res.Result.String()
		}
		output[i] = jr
	}

	if code := writeJSON(out, output); code != apperrors.ExitSuccess {
		return code
	}
	if _, ok := orchestration.FirstSuccess(results); !ok {
		return apperrors.ExitCodeFor(firstErr)
	}
	if !orchestration.Consistent(results) {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

func writeJSON(out io.Writer, v any) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
