package observe

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/launchgate/health"
)

// Hooks instruments validation runs with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: safe for concurrent use by every check goroutine.
//   - Context: the span started in CheckStarted travels in the returned
//     context and is ended by CheckFinished.
//   - Errors: telemetry failures never affect check results.
type Hooks struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewHooks creates Hooks from the given observability components.
// Nil components are replaced with no-ops.
func NewHooks(tracer Tracer, metrics Metrics, logger Logger) *Hooks {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Hooks{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// HooksFromObserver creates Hooks backed by obs.
func HooksFromObserver(obs Observer) (*Hooks, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewHooks(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// CheckStarted opens the check span.
func (h *Hooks) CheckStarted(ctx context.Context, spec health.CheckSpec) context.Context {
	ctx, _ = h.tracer.StartSpan(ctx, MetaFor(spec))
	return ctx
}

// CheckFinished closes the check span, records metrics, and logs the result.
func (h *Hooks) CheckFinished(ctx context.Context, spec health.CheckSpec, result health.CheckResult) {
	meta := MetaFor(spec)

	h.tracer.EndSpan(trace.SpanFromContext(ctx), result)
	h.metrics.RecordCheck(ctx, meta, result.Status, result.Duration)

	logger := h.logger.WithCheck(meta)
	fields := []Field{
		{Key: "status", Value: result.Status.String()},
		{Key: "duration_ms", Value: durationMs(result.Duration)},
	}
	if result.Message != "" {
		fields = append(fields, Field{Key: "message", Value: result.Message})
	}

	switch result.Status {
	case health.StatusPass:
		logger.Info(ctx, "check passed", fields...)
	case health.StatusError:
		logger.Error(ctx, "check errored", fields...)
	default:
		logger.Warn(ctx, "check did not pass", fields...)
	}
}

// RunFinished records and logs the run verdict.
func (h *Hooks) RunFinished(ctx context.Context, report health.Report) {
	h.metrics.RecordRun(ctx, report.Overall)

	fields := []Field{
		{Key: "run_id", Value: report.RunID},
		{Key: "overall", Value: report.Overall.String()},
		{Key: "total", Value: report.Summary.Total},
		{Key: "passed", Value: report.Summary.Passed},
		{Key: "critical_failures", Value: len(report.CriticalFailures)},
		{Key: "warnings", Value: len(report.Warnings)},
	}

	switch report.Overall {
	case health.OverallFailed:
		h.logger.Error(ctx, "launch blocked", fields...)
	case health.OverallDegraded:
		h.logger.Warn(ctx, "launch degraded", fields...)
	default:
		h.logger.Info(ctx, "launch ready", fields...)
	}
}

var _ health.Hooks = (*Hooks)(nil)
