package cache

import "time"

// Per-category default TTLs.
const (
	// ProjectTTL: projects rarely change.
	ProjectTTL = 15 * time.Minute
	// PipelineTTL: pipelines change occasionally.
	PipelineTTL = 10 * time.Minute
	// ServiceConnTTL: service connections are very stable.
	ServiceConnTTL = 30 * time.Minute
	// RunTTL: runs are highly dynamic.
	RunTTL = 3 * time.Minute
	// WorkItemTypeTTL: work item types are very stable.
	WorkItemTypeTTL = time.Hour
	// ClassificationTTL: area/iteration paths rarely change.
	ClassificationTTL = time.Hour

	// FallbackTTL is used for categories without a configured TTL.
	FallbackTTL = 5 * time.Minute
)

// Policy maps key categories to default TTLs. The store itself does not
// consult the policy; the resolver reads it when calling Set.
type Policy struct {
	// TTLs is the TTL per category.
	TTLs map[string]time.Duration

	// DefaultTTL is used for categories absent from TTLs.
	// If zero, FallbackTTL is used.
	DefaultTTL time.Duration
}

// DefaultPolicy returns the TTL table used by the resolver.
func DefaultPolicy() Policy {
	return Policy{
		TTLs: map[string]time.Duration{
			CategoryProjects:           ProjectTTL,
			CategoryPipelines:          PipelineTTL,
			CategoryServiceConnections: ServiceConnTTL,
			CategoryRuns:               RunTTL,
			CategoryWorkItemTypes:      WorkItemTypeTTL,
			CategoryAreaPaths:          ClassificationTTL,
			CategoryIterationPaths:     ClassificationTTL,
		},
	}
}

// TTLFor returns the TTL for a category, applying defaults.
func (p Policy) TTLFor(category string) time.Duration {
	if ttl, ok := p.TTLs[category]; ok && ttl > 0 {
		return ttl
	}
	if p.DefaultTTL > 0 {
		return p.DefaultTTL
	}
	return FallbackTTL
}
