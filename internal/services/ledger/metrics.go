package ledger

import "time"

// MetricsCollector receives operational signals from the ledger service.
type MetricsCollector interface {
	RecordSync(kind, status string)
	RecordError(op, reason string)
	RecordOperationDuration(op string, d time.Duration)
}

// NoopMetricsCollector is the default when no collector is wired.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSync(string, string)                    {}
func (NoopMetricsCollector) RecordError(string, string)                   {}
func (NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
