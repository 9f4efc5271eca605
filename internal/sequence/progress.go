package sequence

// ProgressUpdate carries the progress of one calculator to the display
// layer. CalculatorIndex distinguishes concurrent calculators and Value is
// normalized to [0, 1].
type ProgressUpdate struct {
	CalculatorIndex int
	Value           float64
}

// ProgressReporter is the callback core algorithms use to publish progress
// without knowing about channels or observers.
type ProgressReporter func(progress float64)

// ProgressReportThreshold is the smallest progress delta worth reporting.
const ProgressReportThreshold = 0.01

// CancelCheckInterval is how many loop steps run between context checks.
const CancelCheckInterval = 64

// stepProgress reports linear progress for step i of total when it moved by
// at least ProgressReportThreshold since the last report, and always on the
// final step.
func stepProgress(reporter ProgressReporter, lastReported *float64, i, total uint64) {
	if total == 0 {
		return
	}
	current := float64(i) / float64(total)
	if current-*lastReported >= ProgressReportThreshold || i == total {
		reporter(current)
		*lastReported = current
	}
}
