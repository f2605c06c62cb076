package cache

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Miss and eviction reasons reported as metric labels.
const (
	ReasonNotFound    = "not_found"
	ReasonExpired     = "expired"
	ReasonLRUEviction = "lru_eviction"
	ReasonManualClear = "manual_clear"
)

// categoryKey labels every cache metric with the key's leading segment.
const categoryKey = "cache.category"

// Metrics records cache traffic counters on an OpenTelemetry meter.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
	size      metric.Int64UpDownCounter
}

// NewMetrics creates the cache instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	hits, err := meter.Int64Counter(
		"cache.hits",
		metric.WithDescription("Number of cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"cache.misses",
		metric.WithDescription("Number of cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"cache.evictions",
		metric.WithDescription("Number of cache entries evicted"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	size, err := meter.Int64UpDownCounter(
		"cache.size",
		metric.WithDescription("Current number of cache entries"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		hits:      hits,
		misses:    misses,
		evictions: evictions,
		size:      size,
	}, nil
}

func (m *Metrics) hit(ctx context.Context, category string) {
	if m == nil {
		return
	}
	m.hits.Add(ctx, 1, metric.WithAttributes(
		attribute.String(categoryKey, category),
	))
}

func (m *Metrics) miss(ctx context.Context, category, reason string) {
	if m == nil {
		return
	}
	m.misses.Add(ctx, 1, metric.WithAttributes(
		attribute.String(categoryKey, category),
		attribute.String("reason", reason),
	))
}

func (m *Metrics) evict(ctx context.Context, category, reason string) {
	if m == nil {
		return
	}
	m.evictions.Add(ctx, 1, metric.WithAttributes(
		attribute.String(categoryKey, category),
		attribute.String("reason", reason),
	))
}

func (m *Metrics) addSize(ctx context.Context, category string, delta int64) {
	if m == nil {
		return
	}
	m.size.Add(ctx, delta, metric.WithAttributes(
		attribute.String(categoryKey, category),
	))
}
