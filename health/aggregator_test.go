package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/resolvecache/cache"
)

// reachableSource is a stand-in backing-source probe.
func reachableSource() *CheckerFunc {
	return NewCheckerFunc("backing-source", func(ctx context.Context) Result {
		return Healthy("backing source reachable")
	})
}

func TestNewAggregator(t *testing.T) {
	agg := NewAggregator()

	if agg.config.Timeout != 10*time.Second {
		t.Errorf("Default timeout = %v, want 10s", agg.config.Timeout)
	}
	if !agg.config.Parallel {
		t.Error("Default Parallel should be true")
	}
}

func TestNewAggregator_WithConfig(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{
		Timeout:  5 * time.Second,
		Parallel: false,
	})

	if agg.config.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", agg.config.Timeout)
	}
	if agg.config.Parallel {
		t.Error("Parallel should be false")
	}
}

func TestAggregator_Register(t *testing.T) {
	agg := NewAggregator()
	agg.Register("cache", NewStoreChecker(cache.NewMemoryStore(cache.MemoryConfig{}), StoreCheckerConfig{}))
	agg.Register("upstream", reachableSource())

	names := agg.CheckerNames()
	if len(names) != 2 {
		t.Fatalf("CheckerNames() = %d entries, want 2", len(names))
	}
	if names[0] != "cache" || names[1] != "upstream" {
		t.Errorf("CheckerNames() = %v, want registration order [cache upstream]", names)
	}
}

func TestAggregator_Unregister(t *testing.T) {
	agg := NewAggregator()
	agg.Register("upstream", reachableSource())
	agg.Unregister("upstream")

	if names := agg.CheckerNames(); len(names) != 0 {
		t.Errorf("CheckerNames() = %v, want empty after Unregister", names)
	}
}

func TestAggregator_Check_StoreChecker(t *testing.T) {
	store := cache.NewMemoryStore(cache.MemoryConfig{})
	ctx := context.Background()
	if err := store.Set(ctx, "pipelines:proj1", []string{"CI Build"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	agg := NewAggregator()
	agg.Register("cache", NewStoreChecker(store, StoreCheckerConfig{Capacity: 100}))

	result, err := agg.Check(ctx, "cache")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != StatusHealthy {
		t.Errorf("Result.Status = %v, want StatusHealthy (message: %s)", result.Status, result.Message)
	}
	if result.Details["total_entries"] != 1 {
		t.Errorf("Details[total_entries] = %v, want 1", result.Details["total_entries"])
	}
}

func TestAggregator_CheckNotFound(t *testing.T) {
	agg := NewAggregator()

	_, err := agg.Check(context.Background(), "nonexistent")
	if !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("Check() error = %v, want ErrCheckerNotFound", err)
	}
}

func TestAggregator_CheckAll(t *testing.T) {
	// Two entries in a capacity-2 store puts fill at 100%, past the
	// critical threshold.
	store := cache.NewMemoryStore(cache.MemoryConfig{MaxSize: 2})
	ctx := context.Background()
	for _, key := range []string{"pipelines:proj1", "repos:proj1"} {
		if err := store.Set(ctx, key, "data", time.Minute); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	agg := NewAggregator()
	agg.Register("cache", NewStoreChecker(store, StoreCheckerConfig{Capacity: 2}))
	agg.Register("upstream", reachableSource())

	results := agg.CheckAll(ctx)

	if len(results) != 2 {
		t.Fatalf("CheckAll() = %d results, want 2", len(results))
	}
	if results["cache"].Status != StatusUnhealthy {
		t.Errorf("cache status = %v, want StatusUnhealthy (message: %s)",
			results["cache"].Status, results["cache"].Message)
	}
	if results["upstream"].Status != StatusHealthy {
		t.Errorf("upstream status = %v, want StatusHealthy", results["upstream"].Status)
	}
}

func TestAggregator_CheckAllEmpty(t *testing.T) {
	agg := NewAggregator()

	if results := agg.CheckAll(context.Background()); len(results) != 0 {
		t.Errorf("CheckAll() = %d results, want 0", len(results))
	}
}

func TestAggregator_CheckAllSequential(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{
		Parallel: false,
	})
	agg.Register("cache", NewStoreChecker(cache.NewMemoryStore(cache.MemoryConfig{}), StoreCheckerConfig{}))
	agg.Register("upstream", reachableSource())

	results := agg.CheckAll(context.Background())

	if len(results) != 2 {
		t.Fatalf("CheckAll() = %d results, want 2", len(results))
	}
	for name, result := range results {
		if result.Status != StatusHealthy {
			t.Errorf("%s status = %v, want StatusHealthy", name, result.Status)
		}
	}
}

func TestAggregator_CheckAllTimeout(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{
		Timeout: 50 * time.Millisecond,
	})

	// An unresponsive backing source must not wedge the pass.
	agg.Register("upstream", NewCheckerFunc("backing-source", func(ctx context.Context) Result {
		time.Sleep(200 * time.Millisecond)
		return Healthy("backing source reachable")
	}))

	results := agg.CheckAll(context.Background())

	if results["upstream"].Status != StatusUnhealthy {
		t.Errorf("upstream status = %v, want StatusUnhealthy", results["upstream"].Status)
	}
	if !errors.Is(results["upstream"].Error, ErrCheckTimeout) {
		t.Errorf("upstream error = %v, want ErrCheckTimeout", results["upstream"].Error)
	}
}

func TestAggregator_OverallStatus(t *testing.T) {
	agg := NewAggregator()

	tests := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{
			name:    "empty",
			results: map[string]Result{},
			want:    StatusHealthy,
		},
		{
			name: "all healthy",
			results: map[string]Result{
				"cache":    Healthy("cache fill normal: 2.0%"),
				"upstream": Healthy("backing source reachable"),
			},
			want: StatusHealthy,
		},
		{
			name: "cache degraded",
			results: map[string]Result{
				"cache":    Degraded("cache fill high: 85.0%"),
				"upstream": Healthy("backing source reachable"),
			},
			want: StatusDegraded,
		},
		{
			name: "upstream down",
			results: map[string]Result{
				"cache":    Healthy("cache fill normal: 2.0%"),
				"upstream": Unhealthy("backing source unreachable", nil),
			},
			want: StatusUnhealthy,
		},
		{
			name: "unhealthy overrides degraded",
			results: map[string]Result{
				"cache":    Degraded("cache fill high: 85.0%"),
				"upstream": Unhealthy("backing source unreachable", nil),
			},
			want: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.OverallStatus(tt.results)
			if got != tt.want {
				t.Errorf("OverallStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregator_Checker(t *testing.T) {
	agg := NewAggregator()
	agg.Register("cache", NewStoreChecker(cache.NewMemoryStore(cache.MemoryConfig{}), StoreCheckerConfig{}))
	agg.Register("upstream", reachableSource())

	composite := agg.Checker()

	if composite.Name() != "resolver" {
		t.Errorf("Name() = %v, want resolver", composite.Name())
	}

	result := composite.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", result.Status)
	}
	if result.Message != "all collaborators healthy" {
		t.Errorf("Message = %q, want 'all collaborators healthy'", result.Message)
	}
	if result.Details["cache"] == nil || result.Details["upstream"] == nil {
		t.Errorf("Details = %v, want per-collaborator entries", result.Details)
	}
}

func TestAggregator_CheckerWithUnhealthy(t *testing.T) {
	agg := NewAggregator()
	agg.Register("upstream", NewCheckerFunc("backing-source", func(ctx context.Context) Result {
		return Unhealthy("backing source unreachable", nil)
	}))

	result := agg.Checker().Check(context.Background())

	if result.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want StatusUnhealthy", result.Status)
	}
	if result.Message != "one or more collaborators unhealthy" {
		t.Errorf("Message = %q, want 'one or more collaborators unhealthy'", result.Message)
	}
}

func TestAggregator_RegisterReplaces(t *testing.T) {
	agg := NewAggregator()

	agg.Register("upstream", NewCheckerFunc("backing-source", func(ctx context.Context) Result {
		return Unhealthy("backing source unreachable", nil)
	}))
	agg.Register("upstream", reachableSource()) // replacement keeps position

	names := agg.CheckerNames()
	if len(names) != 1 {
		t.Fatalf("CheckerNames() = %d entries after replacement, want 1", len(names))
	}

	result, err := agg.Check(context.Background(), "upstream")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy from replacement", result.Status)
	}
}
