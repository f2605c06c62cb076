package cache

import "strings"

// Separator joins the category and qualifier segments of a cache key.
const Separator = ":"

// NameMapSuffix marks the derived lowercase-name index paired with a
// collection key (e.g. "pipelines:<projectID>:name_map").
const NameMapSuffix = ":name_map"

// Key categories used by the resolver. The leading segment of a key selects
// the per-category TTL default and labels metrics; keys are opaque beyond
// this convention.
const (
	CategoryProjects           = "projects"
	CategoryPipelines          = "pipelines"
	CategoryServiceConnections = "service_connections"
	CategoryRuns               = "runs"
	CategoryWorkItemTypes      = "work_item_types"
	CategoryAreaPaths          = "area_paths"
	CategoryIterationPaths     = "iteration_paths"
)

// Key builds a composite cache key from a category and optional qualifiers.
// Format: category[:qualifier]...
func Key(category string, qualifiers ...string) string {
	if len(qualifiers) == 0 {
		return category
	}
	return category + Separator + strings.Join(qualifiers, Separator)
}

// Category returns the leading segment of a key.
func Category(key string) string {
	if i := strings.Index(key, Separator); i >= 0 {
		return key[:i]
	}
	return key
}

// NameMapKey returns the key of the name index paired with a collection key.
func NameMapKey(key string) string {
	return key + NameMapSuffix
}
