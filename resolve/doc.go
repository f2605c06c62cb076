// Package resolve orchestrates name resolution over cached collections.
//
// A Resolver is bound to one key category. On lookup it consults the cache
// store, fetching from the backing source on a miss, then resolves a display
// name against the cached collection: exact case-insensitive match first,
// fuzzy match second. When nothing resolves it builds a SuggestionError
// carrying a ranked, token-bounded list of near matches instead of a bare
// not-found.
//
// Concurrent misses for the same key are collapsed into a single fetch.
//
//	resolver, err := resolve.New(store, resolve.Config[Pipeline]{
//	    Category:     cache.CategoryPipelines,
//	    ResourceType: "Pipeline",
//	    NameOf:       func(p Pipeline) string { return p.Name },
//	    IDOf:         func(p Pipeline) string { return p.ID },
//	})
//
//	p, err := resolver.ResolveOrSuggest(ctx, projectID, "Deploy Prod", fetchPipelines)
package resolve
