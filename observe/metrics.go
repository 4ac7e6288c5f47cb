package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/launchgate/health"
)

// Metrics records health check metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCheck records one probe execution and its terminal status.
	RecordCheck(ctx context.Context, meta CheckMeta, status health.CheckStatus, duration time.Duration)

	// RecordRun records the verdict of a completed validation run.
	RecordRun(ctx context.Context, overall health.Overall)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	failureCount metric.Int64Counter
	durationHist metric.Float64Histogram
	runCount     metric.Int64Counter
}

// NewMetrics creates the health instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"health.check.total",
		metric.WithDescription("Total number of health check executions"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	failureCount, err := meter.Int64Counter(
		"health.check.failures",
		metric.WithDescription("Health check executions that did not pass"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"health.check.duration_ms",
		metric.WithDescription("Health check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	runCount, err := meter.Int64Counter(
		"health.run.total",
		metric.WithDescription("Completed validation runs by verdict"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		failureCount: failureCount,
		durationHist: durationHist,
		runCount:     runCount,
	}, nil
}

func (m *metricsImpl) RecordCheck(ctx context.Context, meta CheckMeta, status health.CheckStatus, duration time.Duration) {
	attrs := append(meta.attributes(), attribute.String("check.status", status.String()))
	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)
	if status != health.StatusPass {
		m.failureCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, durationMs(duration), metric.WithAttributes(meta.attributes()...))
}

func (m *metricsImpl) RecordRun(ctx context.Context, overall health.Overall) {
	m.runCount.Add(ctx, 1, metric.WithAttributes(attribute.String("overall", overall.String())))
}

type noopMetrics struct{}

func (noopMetrics) RecordCheck(context.Context, CheckMeta, health.CheckStatus, time.Duration) {}
func (noopMetrics) RecordRun(context.Context, health.Overall)                                 {}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
