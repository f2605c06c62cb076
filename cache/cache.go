package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for store operations.
var (
	ErrNilStore   = errors.New("cache: store is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Store is the interface for caching resource collections fetched from a
// slow or rate-limited backing source.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Get never errors; it returns (nil, false) on miss or expiry.
// - Ownership: stored values are not copied; callers must not mutate them.
type Store interface {
	// Get retrieves a cached value and marks it most recently used.
	// An expired entry is removed lazily and reported as a miss.
	Get(ctx context.Context, key string) (any, bool)

	// Set inserts or wholesale-replaces the entry with the given TTL.
	// A TTL <= 0 inserts an already-expired entry, which the next Get
	// evicts; callers use a zero TTL to force misses.
	Set(ctx context.Context, key string, data any, ttl time.Duration) error

	// Invalidate removes a cached value. Idempotent - no-op on miss.
	Invalidate(ctx context.Context, key string)

	// ClearExpired removes every expired entry and returns the count
	// removed. Unexpired entries keep their recency.
	ClearExpired(ctx context.Context) int

	// ClearAll empties the store.
	ClearAll(ctx context.Context)

	// Stats returns a read-only snapshot. It does not mutate recency.
	Stats() Stats
}

// Stats is a point-in-time snapshot of store contents. ExpiredEntries is
// evaluated at call time; the entries themselves are not removed.
type Stats struct {
	TotalEntries      int
	ActiveEntries     int
	ExpiredEntries    int
	EntriesByCategory map[string]int
	Keys              []string
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
