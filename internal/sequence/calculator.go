// Package sequence computes terms of the factorial, Fibonacci and Catalan
// sequences on top of biguint. Several interchangeable algorithms exist for
// each sequence; they are exposed behind the Calculator interface so the
// orchestration layer can run them side by side and cross-check results.
// Every calculation is traced, counted in Prometheus and logged at debug
// level.
package sequence

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/pkg/biguint"
)

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigcalc_sequence_calculations_total",
			Help: "The total number of sequence term calculations processed",
		},
		[]string{"sequence", "algorithm", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bigcalc_sequence_calculation_duration_seconds",
			Help: "The duration of sequence term calculations in seconds",
		},
		[]string{"sequence", "algorithm"},
	)
	resultDigits = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bigcalc_sequence_result_digits",
			Help:    "Decimal length of computed sequence terms",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"sequence"},
	)
)

// Calculator computes the n-th term of one sequence.
type Calculator interface {
	// Calculate computes term n. It honors ctx cancellation and sends
	// progress updates tagged with calcIndex to progressChan, which may be
	// nil.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64) (biguint.Int, error)

	// Name returns the display name of the algorithm.
	Name() string

	// Sequence returns the sequence this calculator produces.
	Sequence() Sequence
}

// coreCalculator is a bare algorithm without instrumentation.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64) (biguint.Int, error)
	Name() string
	Sequence() Sequence
}

// InstrumentedCalculator wraps a coreCalculator with tracing, metrics,
// logging and progress plumbing.
type InstrumentedCalculator struct {
	core coreCalculator
}

// NewCalculator wraps core. It panics if core is nil.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("sequence: the coreCalculator implementation cannot be nil")
	}
	return &InstrumentedCalculator{core: core}
}

func (c *InstrumentedCalculator) Name() string { return c.core.Name() }

func (c *InstrumentedCalculator) Sequence() Sequence { return c.core.Sequence() }

// Calculate forwards progress to progressChan through a ChannelObserver.
func (c *InstrumentedCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64) (biguint.Int, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, n)
}

// CalculateWithObservers runs the calculation and notifies every observer
// registered on subject. A nil subject discards progress.
func (c *InstrumentedCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n uint64) (result biguint.Int, err error) {
	seq := string(c.core.Sequence())
	algoName := c.core.Name()

	ctx, span := otel.Tracer("bigcalc/sequence").Start(ctx, "Calculate",
		trace.WithAttributes(
			attribute.String("sequence", seq),
			attribute.String("algorithm", algoName),
			attribute.Int64("n", int64(min(n, 1<<62))),
		))
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			resultDigits.WithLabelValues(seq).Observe(float64(result.Len()))
			span.SetAttributes(attribute.Int("digits", result.Len()))
		}
		calculationsTotal.WithLabelValues(seq, algoName, status).Inc()
		calculationDuration.WithLabelValues(seq, algoName).Observe(duration)

		log.Debug().
			Str("sequence", seq).
			Str("algo", algoName).
			Uint64("n", n).
			Float64("duration", duration).
			Str("status", status).
			Msg("calculation completed")
	}()

	var reporter ProgressReporter
	if subject != nil {
		reporter = subject.AsProgressReporter(calcIndex)
	} else {
		reporter = func(float64) {}
	}

	if err = ctx.Err(); err != nil {
		return biguint.Int{}, err
	}

	result, err = c.core.CalculateCore(ctx, reporter, n)
	if err != nil {
		return biguint.Int{}, err
	}
	reporter(1.0)
	return result, nil
}
