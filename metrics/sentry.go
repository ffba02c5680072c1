package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

type RunStats struct {
	RunID          string
	Key            string
	Generations    int
	PopulationSize int
	TrackLength    int
	SeededBest     int
	Best           int
	Duration       time.Duration
	Err            error
}

// SentryMetrics records generation runs as Sentry spans. With enabled false
// every method is a no-op.
type SentryMetrics struct {
	enabled bool
}

func NewSentryMetrics(enabled bool) *SentryMetrics {
	return &SentryMetrics{enabled: enabled}
}

func (m *SentryMetrics) RecordRun(ctx context.Context, stats RunStats) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "ga.run")
	defer span.Finish()

	span.SetTag("run_id", stats.RunID)
	span.SetTag("key", stats.Key)
	span.SetTag("success", fmt.Sprintf("%t", stats.Err == nil))

	span.SetData("generations", stats.Generations)
	span.SetData("population_size", stats.PopulationSize)
	span.SetData("track_length", stats.TrackLength)
	span.SetData("seeded_best", stats.SeededBest)
	span.SetData("best", stats.Best)
	span.SetData("duration_ms", stats.Duration.Milliseconds())

	if stats.Err == nil {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("Accompaniment run: %s", stats.RunID)
}

func (m *SentryMetrics) CaptureError(err error) {
	if !m.enabled || err == nil {
		return
	}
	sentry.CaptureException(err)
}
