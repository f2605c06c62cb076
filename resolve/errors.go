package resolve

import (
	"errors"

	"github.com/jonwraymond/resolvecache/match"
)

// Sentinel errors for resolver construction and use.
var (
	ErrNilStore        = errors.New("resolve: store is nil")
	ErrMissingCategory = errors.New("resolve: category is required")
	ErrMissingNameFunc = errors.New("resolve: NameOf is required")
	ErrNilFetch        = errors.New("resolve: fetch function is nil")
)

// SuggestionError reports a failed lookup together with the closest cached
// names. It is the only structured error the resolver produces; backing
// source failures propagate unchanged.
type SuggestionError struct {
	// ResourceType is the human-readable kind, e.g. "Pipeline".
	ResourceType string

	// Query is the name that failed to resolve.
	Query string

	// Message is the user-facing text, including the did-you-mean clause.
	Message string

	// Suggestions is the ranked, token-bounded list of near matches. It may
	// be empty when nothing scored above the suggestion threshold or the
	// response budget left no room.
	Suggestions []match.Suggestion
}

// Error returns the user-facing message.
func (e *SuggestionError) Error() string {
	return e.Message
}
