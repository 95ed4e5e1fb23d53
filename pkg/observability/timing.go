package observability

import (
	"log/slog"
	"time"
)

// errorsSuffix is appended to a timed operation's name for its error counter.
const errorsSuffix = ".errors"

// Timer measures one operation and reports it on Stop.
type Timer struct {
	operation string
	start     time.Time
	logger    *slog.Logger
	metrics   Metrics
	tags      []Tag
}

// StartTimer starts timing operation.
func StartTimer(operation string) *Timer {
	return &Timer{
		operation: operation,
		start:     time.Now(),
	}
}

// WithLogger logs the outcome at debug level on stop.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// WithMetrics records the duration under the operation name on stop.
func (t *Timer) WithMetrics(metrics Metrics) *Timer {
	t.metrics = metrics
	return t
}

// WithTags adds metric labels.
func (t *Timer) WithTags(tags ...Tag) *Timer {
	t.tags = append(t.tags, tags...)
	return t
}

// Stop records a successful run.
func (t *Timer) Stop() time.Duration {
	return t.StopWithError(nil)
}

// StopWithError records the run; a non-nil err also bumps "<operation>.errors".
func (t *Timer) StopWithError(err error) time.Duration {
	duration := time.Since(t.start)

	if t.logger != nil {
		attrs := []any{OperationKey, t.operation, DurationKey, duration.Milliseconds()}
		if err != nil {
			t.logger.Debug("operation failed", append(attrs, ErrorKey, err.Error())...)
		} else {
			t.logger.Debug("operation completed", attrs...)
		}
	}

	if t.metrics != nil {
		t.metrics.Timing(t.operation, duration, t.tags...)
		if err != nil {
			t.metrics.Counter(t.operation+errorsSuffix, 1, t.tags...)
		}
	}

	return duration
}
