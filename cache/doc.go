// Package cache provides a category-keyed TTL/LRU store for remote resource
// collections.
//
// It provides a Store interface with an in-memory implementation, composite
// category:qualifier keys, per-category TTL policies, and OpenTelemetry
// hit/miss/eviction metrics.
package cache
