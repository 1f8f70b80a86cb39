package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records registry lookup metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records one get-or-create call and whether it was a hit.
	RecordLookup(ctx context.Context, meta RegistryMeta, lookup Lookup)

	// RecordCreated records a record added to the registry, seeds included.
	RecordCreated(ctx context.Context, meta RegistryMeta)
}

type metricsImpl struct {
	totalCount  metric.Int64Counter
	missCount   metric.Int64Counter
	recordCount metric.Int64UpDownCounter
}

// NewMetrics creates the registry instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"flyweight.lookup.total",
		metric.WithDescription("Total number of get-or-create lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	missCount, err := meter.Int64Counter(
		"flyweight.lookup.misses",
		metric.WithDescription("Lookups that created a new flyweight"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	recordCount, err := meter.Int64UpDownCounter(
		"flyweight.records",
		metric.WithDescription("Flyweights currently held by the registry"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:  totalCount,
		missCount:   missCount,
		recordCount: recordCount,
	}, nil
}

func (m *metricsImpl) RecordLookup(ctx context.Context, meta RegistryMeta, lookup Lookup) {
	name := attribute.String("registry.name", meta.RegistryName())

	m.totalCount.Add(ctx, 1, metric.WithAttributes(name, attribute.Bool("flyweight.hit", !lookup.Created)))
	if lookup.Created {
		m.missCount.Add(ctx, 1, metric.WithAttributes(name))
	}
}

func (m *metricsImpl) RecordCreated(ctx context.Context, meta RegistryMeta) {
	m.recordCount.Add(ctx, 1, metric.WithAttributes(attribute.String("registry.name", meta.RegistryName())))
}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return noopMetrics{} }

type noopMetrics struct{}

func (noopMetrics) RecordLookup(context.Context, RegistryMeta, Lookup) {}
func (noopMetrics) RecordCreated(context.Context, RegistryMeta)        {}
