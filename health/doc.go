// Package health provides health checking primitives for flyweight registries.
//
// A registry never evicts, so its size is the one thing worth watching.
// CapacityChecker reports Degraded once a registry crosses a warning size and
// Unhealthy past a critical size. It only reports; enforcing a bound is up to
// the caller.
//
//	check := health.NewCapacityChecker(reg, health.CapacityCheckerConfig{
//	    WarningThreshold:  10_000,
//	    CriticalThreshold: 50_000,
//	})
//	if res := check.Check(ctx); res.Status != health.StatusHealthy {
//	    log.Printf("flyweights: %s", res.Message)
//	}
package health
