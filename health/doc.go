// Package health provides health checking primitives for the resolver cache.
//
// This package implements a generic health checking framework used to monitor
// the components of a name resolution system. It provides interfaces for
// defining health checks, aggregating results from multiple checkers, and a
// ready-made checker for cache stores.
//
// # Core Concepts
//
// A Checker is any component that can report its health status. The Status
// type represents the health state: Healthy, Degraded, or Unhealthy.
//
// # Basic Usage
//
//	// Create a store checker over a cache store
//	storeCheck := health.NewStoreChecker(store, health.StoreCheckerConfig{
//	    Capacity:          1000,
//	    WarningThreshold:  0.80,
//	    CriticalThreshold: 0.95,
//	})
//
//	// Check health
//	result := storeCheck.Check(ctx)
//	if result.Status == health.StatusUnhealthy {
//	    log.Printf("Cache critical: %s", result.Message)
//	}
//
// # Aggregating Health Checks
//
// Use Aggregator to combine multiple health checks into a single composite check:
//
//	agg := health.NewAggregator()
//	agg.Register("cache", storeChecker)
//	agg.Register("upstream", upstreamChecker)
//
//	// Check all components
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
package health
