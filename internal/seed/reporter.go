package seed

import "drugdex/m/internal/logger"

// Reporter receives per-item outcomes and the end-of-run summary. The
// pipeline itself never writes to a log or console directly.
type Reporter interface {
	Success(drugName string)
	Failure(drugName string, err error)
	Summarize(summary Summary)
}

// LogReporter reports through the shared structured logger.
type LogReporter struct {
	Log *logger.Logger
}

func (r LogReporter) Success(drugName string) {
	r.Log.Info("seeded drug", "drug", drugName)
}

func (r LogReporter) Failure(drugName string, err error) {
	r.Log.Error("skipping drug", "drug", drugName, "error", err)
}

func (r LogReporter) Summarize(summary Summary) {
	r.Log.Info("seed run complete",
		"run_id", summary.RunID,
		"drugs", summary.Drugs,
		"faqs", summary.FAQs,
		"failed", summary.Failed)
}
