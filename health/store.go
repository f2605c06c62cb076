package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/resolvecache/cache"
)

// StoreCheckerConfig configures the cache store health checker.
type StoreCheckerConfig struct {
	// Capacity is the maximum number of entries the store is expected to
	// hold. Default: cache.DefaultMaxSize.
	Capacity int

	// WarningThreshold is the fill ratio that triggers degraded status.
	// Value should be between 0 and 1. Default: 0.8 (80%)
	WarningThreshold float64

	// CriticalThreshold is the fill ratio that triggers unhealthy status.
	// Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64
}

// StoreChecker checks the health of a cache store.
//
// A store approaching capacity evicts useful entries early, which shows up
// as repeated fetches upstream. The checker reports degraded before that
// becomes unhealthy so operators can raise the capacity first.
type StoreChecker struct {
	store  cache.Store
	config StoreCheckerConfig
}

// NewStoreChecker creates a new cache store health checker.
func NewStoreChecker(store cache.Store, config StoreCheckerConfig) *StoreChecker {
	if config.Capacity <= 0 {
		config.Capacity = cache.DefaultMaxSize
	}
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold + 0.1
		if config.CriticalThreshold > 1 {
			config.CriticalThreshold = 0.99
		}
	}

	return &StoreChecker{store: store, config: config}
}

// Name returns the name of this checker.
func (c *StoreChecker) Name() string {
	return "cache-store"
}

// Check performs the store health check.
func (c *StoreChecker) Check(ctx context.Context) Result {
	// Check context first
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	if c.store == nil {
		return Unhealthy("store is nil", cache.ErrNilStore)
	}

	stats := c.store.Stats()
	fillRatio := float64(stats.TotalEntries) / float64(c.config.Capacity)

	details := map[string]any{
		"total_entries":       stats.TotalEntries,
		"active_entries":      stats.ActiveEntries,
		"expired_entries":     stats.ExpiredEntries,
		"capacity":            c.config.Capacity,
		"fill_percent":        fillRatio * 100,
		"entries_by_category": stats.EntriesByCategory,
	}

	if fillRatio >= c.config.CriticalThreshold {
		return Unhealthy(
			fmt.Sprintf("cache fill critical: %.1f%%", fillRatio*100),
			ErrCheckFailed,
		).WithDetails(details)
	}

	if fillRatio >= c.config.WarningThreshold {
		return Degraded(
			fmt.Sprintf("cache fill high: %.1f%%", fillRatio*100),
		).WithDetails(details)
	}

	// A store dominated by expired entries still answers, but almost every
	// read is a miss. Surface it as degraded.
	if stats.TotalEntries > 0 && stats.ExpiredEntries > stats.ActiveEntries {
		return Degraded(
			fmt.Sprintf("cache mostly expired: %d of %d entries", stats.ExpiredEntries, stats.TotalEntries),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("cache fill normal: %.1f%%", fillRatio*100),
	).WithDetails(details)
}

// Ensure StoreChecker implements Checker
var _ Checker = (*StoreChecker)(nil)
