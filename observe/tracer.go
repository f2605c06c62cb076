package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// OpMeta describes a resolution operation for telemetry purposes.
type OpMeta struct {
	Category  string // Resource category, e.g. "pipelines" (may be empty)
	Operation string // Operation name, e.g. "find_by_name" (required)
	Scope     string // Scope qualifier, e.g. a project id (optional)
}

// SpanName returns the deterministic span name for this operation.
// Format: resolve.<category>.<operation> or resolve.<operation>
func (m OpMeta) SpanName() string {
	if m.Category != "" {
		return "resolve." + m.Category + "." + m.Operation
	}
	return "resolve." + m.Operation
}

// OpID returns the fully qualified operation identifier.
func (m OpMeta) OpID() string {
	if m.Category != "" {
		return m.Category + "." + m.Operation
	}
	return m.Operation
}

// Validate checks that the metadata names an operation.
func (m OpMeta) Validate() error {
	if m.Operation == "" {
		return ErrMissingOperation
	}
	return nil
}

// Tracer wraps OpenTelemetry tracing with lookup-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan must honor cancellation/deadlines and return ctx.Err() when canceled.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a resolution operation.
	StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with operation metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span) {
	spanName := meta.SpanName()

	attrs := []attribute.KeyValue{
		attribute.String("resolve.op", meta.OpID()),
		attribute.String("resolve.operation", meta.Operation),
		attribute.Bool("resolve.error", false), // Will be updated in EndSpan if error
	}

	if meta.Category != "" {
		attrs = append(attrs, attribute.String("resolve.category", meta.Category))
	}
	if meta.Scope != "" {
		attrs = append(attrs, attribute.String("resolve.scope", meta.Scope))
	}

	ctx, span := t.tracer.Start(ctx, spanName,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("resolve.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta OpMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
