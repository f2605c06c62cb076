package resolve

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/resolvecache/budget"
	"github.com/jonwraymond/resolvecache/cache"
	"github.com/jonwraymond/resolvecache/match"
	"github.com/jonwraymond/resolvecache/observe"
)

// DefaultLookupThreshold is the fuzzy cutoff for "did we find it". It is
// stricter than the suggestion-listing cutoff so a lookup never silently
// returns a far match that would only be acceptable as a suggestion.
const DefaultLookupThreshold = 0.6

// FetchFunc loads the full collection from the backing source. It is called
// only on a cache miss and may block or fail; the resolver holds no cache
// lock while it runs.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Config configures a Resolver for one key category.
type Config[T any] struct {
	// Category is the leading cache key segment, e.g. cache.CategoryPipelines.
	// Required.
	Category string

	// ResourceType is the human-readable kind used in error messages, e.g.
	// "Pipeline". Default: Category.
	ResourceType string

	// NameOf extracts the display name candidates are matched on. Required.
	NameOf func(T) string

	// IDOf extracts an identifier. Optional; when set, the resolver derives
	// a lowercase name index alongside each cached collection and uses it as
	// an exact-lookup fast path.
	IDOf func(T) string

	// Policy maps categories to TTLs. Zero value takes cache.DefaultPolicy.
	Policy cache.Policy

	// LookupThreshold is the fuzzy cutoff for FindByName.
	// Default: DefaultLookupThreshold.
	LookupThreshold float64

	// SuggestionThreshold is the fuzzy cutoff for suggestion listing.
	// Default: match.DefaultSimilarityThreshold.
	SuggestionThreshold float64

	// MaxSuggestions caps the ranked suggestion list.
	// Default: match.DefaultMaxSuggestions.
	MaxSuggestions int

	// MaxDisplay caps the names quoted in the error message.
	// Default: match.DefaultMaxDisplay.
	MaxDisplay int

	// MaxResponseTokens bounds the estimated size of a suggestion payload.
	// Default: budget.DefaultMaxResponseTokens.
	MaxResponseTokens int

	// Logger receives resolution events. Default: no-op.
	Logger observe.Logger
}

// Resolver resolves display names against one cached collection category.
//
// Contract:
// - Concurrency: safe for concurrent use; concurrent misses for the same
//   key are collapsed into a single fetch.
// - Errors: backing-source failures propagate unchanged and cache nothing.
//   Only ResolveOrSuggest produces a structured error, and only with
//   suggestions attached.
type Resolver[T any] struct {
	cfg       Config[T]
	store     cache.Store
	lookup    *match.Matcher
	suggest   *match.Matcher
	estimator *budget.Estimator
	logger    observe.Logger
	sf        singleflight.Group
}

// New creates a Resolver, applying defaults for zero-valued config fields.
func New[T any](store cache.Store, cfg Config[T]) (*Resolver[T], error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if strings.TrimSpace(cfg.Category) == "" {
		return nil, ErrMissingCategory
	}
	if cfg.NameOf == nil {
		return nil, ErrMissingNameFunc
	}
	if cfg.ResourceType == "" {
		cfg.ResourceType = cfg.Category
	}
	if cfg.Policy.TTLs == nil && cfg.Policy.DefaultTTL <= 0 {
		cfg.Policy = cache.DefaultPolicy()
	}
	if cfg.LookupThreshold <= 0 {
		cfg.LookupThreshold = DefaultLookupThreshold
	}
	if cfg.SuggestionThreshold <= 0 {
		cfg.SuggestionThreshold = match.DefaultSimilarityThreshold
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = match.DefaultMaxSuggestions
	}
	if cfg.MaxDisplay <= 0 {
		cfg.MaxDisplay = match.DefaultMaxDisplay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	return &Resolver[T]{
		cfg:   cfg,
		store: store,
		lookup: match.New(match.Config{
			SimilarityThreshold: cfg.LookupThreshold,
			MaxSuggestions:      1,
		}),
		suggest: match.New(match.Config{
			SimilarityThreshold: cfg.SuggestionThreshold,
			MaxSuggestions:      cfg.MaxSuggestions,
		}),
		estimator: budget.NewEstimator(cfg.MaxResponseTokens),
		logger:    logger,
	}, nil
}

// key builds the collection key for a scope. Scope is the optional
// qualifier, e.g. a project ID; empty for unscoped categories.
func (r *Resolver[T]) key(scope string) string {
	if scope == "" {
		return cache.Key(r.cfg.Category)
	}
	return cache.Key(r.cfg.Category, scope)
}

// EnsureCached returns the cached collection for scope, fetching and caching
// it on a miss. Fetch errors propagate unchanged and nothing is cached.
// Concurrent misses for the same key share one fetch and its outcome.
func (r *Resolver[T]) EnsureCached(ctx context.Context, scope string, fetch FetchFunc[T]) ([]T, error) {
	key := r.key(scope)

	if items, ok := r.cached(ctx, key); ok {
		r.logger.Debug(ctx, "collection served from cache",
			observe.Field{Key: "key", Value: key},
			observe.Field{Key: "source", Value: "cache"},
			observe.Field{Key: "count", Value: len(items)})
		return items, nil
	}

	if fetch == nil {
		return nil, ErrNilFetch
	}

	v, err, shared := r.sf.Do(key, func() (any, error) {
		// Another flight may have filled the cache while we queued.
		if items, ok := r.cached(ctx, key); ok {
			return items, nil
		}

		items, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		ttl := r.cfg.Policy.TTLFor(r.cfg.Category)
		if err := r.store.Set(ctx, key, items, ttl); err != nil {
			return nil, err
		}
		if r.cfg.IDOf != nil {
			if err := r.store.Set(ctx, cache.NameMapKey(key), r.nameMap(items), ttl); err != nil {
				return nil, err
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items := v.([]T)
	r.logger.Info(ctx, "collection fetched",
		observe.Field{Key: "key", Value: key},
		observe.Field{Key: "source", Value: "fetch"},
		observe.Field{Key: "count", Value: len(items)},
		observe.Field{Key: "shared", Value: shared})
	return items, nil
}

// cached returns the collection under key if present and of the expected
// type. A stale entry of another type is dropped so the next fetch replaces
// it.
func (r *Resolver[T]) cached(ctx context.Context, key string) ([]T, bool) {
	v, ok := r.store.Get(ctx, key)
	if !ok {
		return nil, false
	}
	items, ok := v.([]T)
	if !ok {
		r.store.Invalidate(ctx, key)
		return nil, false
	}
	return items, true
}

// nameMap derives the lowercase name index for a collection. First wins on
// duplicate names, matching the insertion-order tie-break of the scan path.
func (r *Resolver[T]) nameMap(items []T) map[string]string {
	m := make(map[string]string, len(items))
	for _, item := range items {
		name := strings.ToLower(r.cfg.NameOf(item))
		if name == "" {
			continue
		}
		if _, exists := m[name]; !exists {
			m[name] = r.cfg.IDOf(item)
		}
	}
	return m
}

// FindByName resolves name within the scoped collection. Resolution order:
// name-index fast path (when IDOf is configured), insertion-order
// case-insensitive scan, then top-1 fuzzy match at the lookup threshold when
// fuzzy is true. Returns (zero, false, nil) on a clean miss.
//
// The query is trimmed of surrounding whitespace before matching, so a
// padded name resolves the same as the bare one and an all-whitespace query
// is a clean miss.
func (r *Resolver[T]) FindByName(ctx context.Context, scope, name string, fuzzy bool, fetch FetchFunc[T]) (T, bool, error) {
	var zero T

	name = strings.TrimSpace(name)
	if name == "" {
		return zero, false, nil
	}

	items, err := r.EnsureCached(ctx, scope, fetch)
	if err != nil {
		return zero, false, err
	}

	if r.cfg.IDOf != nil {
		if item, ok := r.findByIndex(ctx, scope, name, items); ok {
			return item, true, nil
		}
	}

	for _, item := range items {
		if strings.EqualFold(r.cfg.NameOf(item), name) {
			return item, true, nil
		}
	}

	if !fuzzy {
		return zero, false, nil
	}

	results := r.lookup.FindMatches(name, match.Candidates(items, r.cfg.NameOf, r.cfg.IDOf))
	if len(results) == 0 {
		return zero, false, nil
	}

	top := results[0]
	r.logger.Debug(ctx, "fuzzy match accepted",
		observe.Field{Key: "query", Value: name},
		observe.Field{Key: "matched", Value: top.Name},
		observe.Field{Key: "similarity", Value: top.Similarity},
		observe.Field{Key: "match_type", Value: top.Type})
	return top.Item.(T), true, nil
}

// findByIndex consults the cached lowercase name index. A hit yields the ID,
// which is resolved back to the item by scanning the collection; the index
// may be expired or absent, in which case the caller falls through to the
// scan.
func (r *Resolver[T]) findByIndex(ctx context.Context, scope, name string, items []T) (T, bool) {
	var zero T

	v, ok := r.store.Get(ctx, cache.NameMapKey(r.key(scope)))
	if !ok {
		return zero, false
	}
	index, ok := v.(map[string]string)
	if !ok {
		return zero, false
	}
	id, ok := index[strings.ToLower(name)]
	if !ok {
		return zero, false
	}

	for _, item := range items {
		if r.cfg.IDOf(item) == id {
			return item, true
		}
	}
	return zero, false
}

// ResolveOrSuggest resolves name like FindByName with fuzzy matching, but a
// failed lookup yields a *SuggestionError carrying the closest cached names
// under the response token budget, never a bare not-found.
func (r *Resolver[T]) ResolveOrSuggest(ctx context.Context, scope, name string, fetch FetchFunc[T]) (T, error) {
	var zero T

	item, found, err := r.FindByName(ctx, scope, name, true, fetch)
	if err != nil {
		return zero, err
	}
	if found {
		return item, nil
	}

	// The collection is cached at this point; EnsureCached is a hit.
	items, err := r.EnsureCached(ctx, scope, fetch)
	if err != nil {
		return zero, err
	}

	matches := r.suggest.FindMatches(name, match.Candidates(items, r.cfg.NameOf, r.cfg.IDOf))
	message := match.SuggestionMessage(r.cfg.ResourceType, name, matches, r.cfg.MaxDisplay)
	suggestions := r.estimator.LimitSuggestions(match.Suggestions(matches, r.cfg.MaxSuggestions), message)

	r.logger.Warn(ctx, "lookup failed with suggestions",
		observe.Field{Key: "query", Value: name},
		observe.Field{Key: "suggestions", Value: len(suggestions)})

	return zero, &SuggestionError{
		ResourceType: r.cfg.ResourceType,
		Query:        name,
		Message:      message,
		Suggestions:  suggestions,
	}
}

// Invalidate drops the scoped collection and its name index.
func (r *Resolver[T]) Invalidate(ctx context.Context, scope string) {
	key := r.key(scope)
	r.store.Invalidate(ctx, key)
	r.store.Invalidate(ctx, cache.NameMapKey(key))
}

// nopLogger satisfies observe.Logger when no logger is configured.
type nopLogger struct{}

func (l nopLogger) Info(ctx context.Context, msg string, fields ...observe.Field)  {}
func (l nopLogger) Warn(ctx context.Context, msg string, fields ...observe.Field)  {}
func (l nopLogger) Error(ctx context.Context, msg string, fields ...observe.Field) {}
func (l nopLogger) Debug(ctx context.Context, msg string, fields ...observe.Field) {}
func (l nopLogger) WithOp(meta observe.OpMeta) observe.Logger                      { return l }
