package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/launchgate/health"
)

// CheckMeta identifies a health check for telemetry purposes.
type CheckMeta struct {
	ID       string // Check identifier (required)
	Severity string // CRITICAL|WARNING|INFO
}

// MetaFor derives telemetry metadata from a registered check.
func MetaFor(spec health.CheckSpec) CheckMeta {
	return CheckMeta{ID: spec.ID, Severity: spec.Severity.String()}
}

// SpanName returns the deterministic span name for this check.
// Format: health.check.<id>
func (m CheckMeta) SpanName() string {
	return "health.check." + m.ID
}

func (m CheckMeta) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("check.id", m.ID),
		attribute.String("check.severity", m.Severity),
	}
}

// Tracer wraps OpenTelemetry tracing with check-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for one probe execution.
	StartSpan(ctx context.Context, meta CheckMeta) (context.Context, trace.Span)

	// EndSpan records the check outcome on the span and ends it.
	EndSpan(span trace.Span, result health.CheckResult)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(meta.attributes()...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, result health.CheckResult) {
	span.SetAttributes(
		attribute.String("check.status", result.Status.String()),
		attribute.Float64("check.duration_ms", durationMs(result.Duration)),
	)
	if result.Passed() {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, result.Message)
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ health.CheckResult) {
	span.End()
}
