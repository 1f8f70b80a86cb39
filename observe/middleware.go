package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// LookupFunc performs one get-or-create and reports its outcome.
type LookupFunc func(ctx context.Context) Lookup

// Middleware wraps registry lookups with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe LookupFunc.
//   - Context: the wrapped function receives the span context.
//   - Ownership: the Lookup returned by the wrapped function is passed through unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NopMiddleware returns a Middleware with every component disabled.
func NopMiddleware() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// WithLogger returns a copy of m that logs to logger.
func (m *Middleware) WithLogger(logger Logger) *Middleware {
	return NewMiddleware(m.tracer, m.metrics, logger)
}

// Logger returns the logger lookups are reported to.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// Bind returns an Instrument for one registry. The registry-scoped logger is
// built here once, not per lookup.
func (m *Middleware) Bind(meta RegistryMeta) *Instrument {
	return &Instrument{
		mw:     m,
		meta:   meta,
		logger: m.logger.WithRegistry(meta),
	}
}

// Wrap wraps fn with a span, lookup metrics, and a created/reused log line.
func (m *Middleware) Wrap(meta RegistryMeta, fn LookupFunc) LookupFunc {
	inst := m.Bind(meta)

	return func(ctx context.Context) Lookup {
		ctx, pending := inst.Start(ctx)
		lookup := fn(ctx)
		inst.Finish(ctx, pending, lookup)
		return lookup
	}
}

// Instrument is a Middleware bound to one registry.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Every Start must be paired with exactly one Finish.
type Instrument struct {
	mw     *Middleware
	meta   RegistryMeta
	logger Logger
}

// Pending is an in-flight lookup returned by Instrument.Start.
type Pending struct {
	span  trace.Span
	start time.Time
}

// Logger returns the registry-scoped logger.
func (i *Instrument) Logger() Logger {
	return i.logger
}

// Start opens the lookup span. The returned context carries it.
func (i *Instrument) Start(ctx context.Context) (context.Context, Pending) {
	ctx, span := i.mw.tracer.StartSpan(ctx, i.meta)
	return ctx, Pending{span: span, start: time.Now()}
}

// Finish ends the span, records metrics, and logs whether a flyweight was
// created or reused.
func (i *Instrument) Finish(ctx context.Context, p Pending, lookup Lookup) {
	duration := time.Since(p.start)
	i.mw.tracer.EndSpan(p.span, lookup)
	i.mw.metrics.RecordLookup(ctx, i.meta, lookup)

	fields := []Field{
		{Key: "key", Value: lookup.Key},
		{Key: "flyweight.id", Value: lookup.ID},
		{Key: "duration_us", Value: duration.Microseconds()},
	}
	if lookup.Created {
		i.mw.metrics.RecordCreated(ctx, i.meta)
		i.logger.Info(ctx, "creating a new flyweight", fields...)
	} else {
		i.logger.Info(ctx, "reusing existing flyweight", fields...)
	}
}

// Seeded records a flyweight added at registry construction.
func (i *Instrument) Seeded(ctx context.Context, lookup Lookup) {
	i.mw.metrics.RecordCreated(ctx, i.meta)
	i.logger.Debug(ctx, "seeded flyweight",
		Field{Key: "key", Value: lookup.Key},
		Field{Key: "flyweight.id", Value: lookup.ID},
	)
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
