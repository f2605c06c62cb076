package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMaxSize bounds the store when MemoryConfig.MaxSize is zero.
const DefaultMaxSize = 1000

// MemoryConfig configures a MemoryStore.
type MemoryConfig struct {
	// MaxSize caps the number of entries. Default: DefaultMaxSize.
	MaxSize int

	// Metrics receives hit/miss/eviction counters. Optional.
	Metrics *Metrics
}

// MemoryStore is an in-memory Store with per-entry TTL expiry and LRU
// eviction when the size cap is exceeded.
//
// A single mutex guards the entry map and the recency list together: Get
// updates recency, so every operation including Stats is a critical section.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = least recently used, back = most recent
	maxSize int
	metrics *Metrics
}

type memoryEntry struct {
	key       string
	data      any
	expiresAt time.Time
}

// expired reports whether the entry is stale. Validity is re-evaluated on
// every read, never cached.
func (e *memoryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(cfg MemoryConfig) *MemoryStore {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	return &MemoryStore{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: cfg.MaxSize,
		metrics: cfg.Metrics,
	}
}

// Get retrieves a value and marks it most recently used. An expired entry is
// removed lazily, reported as an eviction and a miss.
func (s *MemoryStore) Get(ctx context.Context, key string) (any, bool) {
	category := Category(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		s.metrics.miss(ctx, category, ReasonNotFound)
		return nil, false
	}

	entry := elem.Value.(*memoryEntry)
	if entry.expired(time.Now()) {
		s.removeLocked(ctx, key, elem, ReasonExpired)
		s.metrics.miss(ctx, category, ReasonExpired)
		return nil, false
	}

	s.order.MoveToBack(elem)
	s.metrics.hit(ctx, category)
	return entry.data, true
}

// Set inserts or wholesale-replaces an entry, then enforces the size cap by
// evicting from the front of the recency list until it is restored.
func (s *MemoryStore) Set(ctx context.Context, key string, data any, ttl time.Duration) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	if ttl <= 0 {
		// Insert already expired; callers use a zero TTL to force misses.
		expiresAt = now.Add(-time.Nanosecond)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.data = data
		entry.expiresAt = expiresAt
		s.order.MoveToBack(elem)
		return nil
	}

	elem := s.order.PushBack(&memoryEntry{key: key, data: data, expiresAt: expiresAt})
	s.entries[key] = elem
	s.metrics.addSize(ctx, Category(key), 1)

	for len(s.entries) > s.maxSize {
		front := s.order.Front()
		if front == nil {
			break
		}
		lru := front.Value.(*memoryEntry)
		s.removeLocked(ctx, lru.key, front, ReasonLRUEviction)
	}

	return nil
}

// Invalidate removes an entry unconditionally. No-op if absent.
func (s *MemoryStore) Invalidate(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[key]; ok {
		s.removeLocked(ctx, key, elem, ReasonManualClear)
	}
}

// ClearExpired removes every expired entry and returns the removed count.
// Unexpired entries keep their recency.
func (s *MemoryStore) ClearExpired(ctx context.Context) int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, elem := range s.entries {
		if elem.Value.(*memoryEntry).expired(now) {
			s.removeLocked(ctx, key, elem, ReasonManualClear)
			removed++
		}
	}
	return removed
}

// ClearAll empties the store.
func (s *MemoryStore) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, elem := range s.entries {
		s.removeLocked(ctx, key, elem, ReasonManualClear)
	}
	s.order.Init()
}

// Stats returns a snapshot of store contents. Expiry is evaluated at call
// time without removing entries or touching recency.
func (s *MemoryStore) Stats() Stats {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		TotalEntries:      len(s.entries),
		EntriesByCategory: make(map[string]int, len(s.entries)),
		Keys:              make([]string, 0, len(s.entries)),
	}
	for key, elem := range s.entries {
		stats.Keys = append(stats.Keys, key)
		stats.EntriesByCategory[Category(key)]++
		if elem.Value.(*memoryEntry).expired(now) {
			stats.ExpiredEntries++
		}
	}
	stats.ActiveEntries = stats.TotalEntries - stats.ExpiredEntries
	return stats
}

// removeLocked removes key from both structures and reports the eviction.
// Caller must hold the mutex.
func (s *MemoryStore) removeLocked(ctx context.Context, key string, elem *list.Element, reason string) {
	category := Category(key)
	s.order.Remove(elem)
	delete(s.entries, key)
	s.metrics.addSize(ctx, category, -1)
	s.metrics.evict(ctx, category, reason)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
