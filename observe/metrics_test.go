package observe

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumWhere adds the data points of an int64 sum whose attributes contain kv.
func sumWhere(t *testing.T, m *metricdata.Metrics, kv attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(kv.Key); ok && v == kv.Value {
			total += dp.Value
		}
	}
	return total
}

// TestMetrics_LookupCounters verifies total and miss counters split by hit.
func TestMetrics_LookupCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	meta := RegistryMeta{Name: "cars"}

	m.RecordLookup(ctx, meta, Lookup{Key: "a", Created: true})
	m.RecordLookup(ctx, meta, Lookup{Key: "a"})
	m.RecordLookup(ctx, meta, Lookup{Key: "a"})

	rm := collect(t, reader)

	total := findMetric(rm, "flyweight.lookup.total")
	if total == nil {
		t.Fatal("flyweight.lookup.total metric not found")
	}
	if got := sumWhere(t, total, attribute.Bool("flyweight.hit", true)); got != 2 {
		t.Errorf("hits = %d, want 2", got)
	}
	if got := sumWhere(t, total, attribute.Bool("flyweight.hit", false)); got != 1 {
		t.Errorf("misses in total = %d, want 1", got)
	}

	misses := findMetric(rm, "flyweight.lookup.misses")
	if misses == nil {
		t.Fatal("flyweight.lookup.misses metric not found")
	}
	if got := sumWhere(t, misses, attribute.String("registry.name", "cars")); got != 1 {
		t.Errorf("misses = %d, want 1", got)
	}
}

// TestMetrics_RecordCreated verifies the record gauge counts up.
func TestMetrics_RecordCreated(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	for n := 0; n < 3; n++ {
		m.RecordCreated(ctx, RegistryMeta{})
	}

	found := findMetric(collect(t, reader), "flyweight.records")
	if found == nil {
		t.Fatal("flyweight.records metric not found")
	}
	if got := sumWhere(t, found, attribute.String("registry.name", DefaultRegistryName)); got != 3 {
		t.Errorf("records = %d, want 3", got)
	}
}

// TestMetrics_MissCounterAbsentOnHits verifies hits never touch the miss counter.
func TestMetrics_MissCounterAbsentOnHits(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordLookup(context.Background(), RegistryMeta{}, Lookup{Key: "a"})

	found := findMetric(collect(t, reader), "flyweight.lookup.misses")
	if found == nil {
		return
	}
	if got := sumWhere(t, found, attribute.String("registry.name", DefaultRegistryName)); got != 0 {
		t.Errorf("misses = %d, want 0", got)
	}
}

// TestNopMetrics_NoPanic verifies the no-op implementation is callable.
func TestNopMetrics_NoPanic(t *testing.T) {
	m := NopMetrics()
	m.RecordLookup(context.Background(), RegistryMeta{}, Lookup{})
	m.RecordCreated(context.Background(), RegistryMeta{})
}
