// Package match provides weighted fuzzy string matching for resource names.
//
// It ranks candidates against a query using a two-tier strategy: exact and
// case-insensitive substring checks short-circuit first, then the maximum of
// a normalized Levenshtein score and a Jaccard token score applies. Results
// are thresholded, stably sorted by similarity, and capped.
package match
