package health

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// Default capacity thresholds, in records.
const (
	DefaultWarningThreshold  = 10_000
	DefaultCriticalThreshold = 100_000
)

// SizeSource reports how many entries a component holds.
// *flyweight.Registry satisfies it.
type SizeSource interface {
	Len() int
}

// CapacityCheckerConfig configures the capacity health checker.
type CapacityCheckerConfig struct {
	// Name is reported by Checker.Name. Default: "capacity"
	Name string

	// WarningThreshold is the size at which the status becomes degraded.
	// Default: DefaultWarningThreshold
	WarningThreshold int

	// CriticalThreshold is the size at which the status becomes unhealthy.
	// Raised above WarningThreshold if not already. Default: DefaultCriticalThreshold
	CriticalThreshold int
}

// CapacityChecker checks the size of an unbounded store against thresholds.
type CapacityChecker struct {
	source SizeSource
	config CapacityCheckerConfig
}

// NewCapacityChecker creates a capacity checker over source. A nil source,
// including a typed nil pointer, makes Check report ErrNilSource.
func NewCapacityChecker(source SizeSource, config CapacityCheckerConfig) *CapacityChecker {
	if isNilSource(source) {
		source = nil
	}
	if config.Name == "" {
		config.Name = "capacity"
	}
	if config.WarningThreshold <= 0 {
		config.WarningThreshold = DefaultWarningThreshold
	}
	if config.CriticalThreshold <= 0 {
		config.CriticalThreshold = DefaultCriticalThreshold
	}
	if config.CriticalThreshold <= config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold * 2
	}
	return &CapacityChecker{source: source, config: config}
}

// Name returns the name of this checker.
func (c *CapacityChecker) Name() string { return c.config.Name }

// Check compares the current size with the configured thresholds.
func (c *CapacityChecker) Check(ctx context.Context) Result {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return Unhealthy("context cancelled", err)
	}
	if c.source == nil {
		return Unhealthy("no size source", ErrNilSource)
	}

	size := c.source.Len()
	details := map[string]any{
		"size":               size,
		"warning_threshold":  c.config.WarningThreshold,
		"critical_threshold": c.config.CriticalThreshold,
		"usage_percent":      float64(size) / float64(c.config.CriticalThreshold) * 100,
	}

	var res Result
	switch {
	case size >= c.config.CriticalThreshold:
		res = Unhealthy(fmt.Sprintf("%d entries, critical at %d", size, c.config.CriticalThreshold), ErrCheckFailed)
	case size >= c.config.WarningThreshold:
		res = Degraded(fmt.Sprintf("%d entries, warning at %d", size, c.config.WarningThreshold))
	default:
		res = Healthy(fmt.Sprintf("%d entries", size))
	}
	return res.WithDetails(details).WithDuration(time.Since(start))
}

func isNilSource(source SizeSource) bool {
	if source == nil {
		return true
	}
	v := reflect.ValueOf(source)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

var _ Checker = (*CapacityChecker)(nil)
