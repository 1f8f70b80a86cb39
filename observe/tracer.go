package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// DefaultRegistryName is used when RegistryMeta.Name is empty.
const DefaultRegistryName = "flyweights"

// RegistryMeta describes a registry for telemetry purposes.
type RegistryMeta struct {
	Name  string // Registry name (optional, defaults to DefaultRegistryName)
	Keyer string // Key derivation scheme, e.g. "delimited" or "digest" (optional)
}

// RegistryName returns the name, falling back to DefaultRegistryName.
func (m RegistryMeta) RegistryName() string {
	if m.Name == "" {
		return DefaultRegistryName
	}
	return m.Name
}

// SpanName returns the span name for a get-or-create on this registry.
// Format: flyweight.get_or_create.<name>
func (m RegistryMeta) SpanName() string {
	return "flyweight.get_or_create." + m.RegistryName()
}

// Lookup is the outcome of one get-or-create call.
type Lookup struct {
	Key     string
	ID      string // identifier of the returned flyweight (optional)
	Created bool
}

// Tracer wraps OpenTelemetry tracing with registry-specific spans.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a registry lookup.
	StartSpan(ctx context.Context, meta RegistryMeta) (context.Context, trace.Span)

	// EndSpan annotates the span with the lookup outcome and ends it.
	EndSpan(span trace.Span, lookup Lookup)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta RegistryMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("registry.name", meta.RegistryName()),
	}
	if meta.Keyer != "" {
		attrs = append(attrs, attribute.String("registry.keyer", meta.Keyer))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan always sets status Ok: a get-or-create cannot fail.
func (t *tracerImpl) EndSpan(span trace.Span, lookup Lookup) {
	attrs := []attribute.KeyValue{
		attribute.String("flyweight.key", lookup.Key),
		attribute.Bool("flyweight.hit", !lookup.Created),
	}
	if lookup.ID != "" {
		attrs = append(attrs, attribute.String("flyweight.id", lookup.ID))
	}
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta RegistryMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ Lookup) {
	span.End()
}
