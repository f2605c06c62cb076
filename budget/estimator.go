package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonwraymond/resolvecache/match"
)

// Estimation constants.
const (
	// CharsPerToken is a rough estimate for English text and JSON.
	CharsPerToken = 4

	// DefaultMaxResponseTokens bounds suggestion responses by default.
	DefaultMaxResponseTokens = 1000

	// SuggestionBaseTokens is the fixed structural cost per suggestion
	// (name, id, similarity fields).
	SuggestionBaseTokens = 50

	// ErrorBaseTokens is the fixed structural cost of an error response.
	ErrorBaseTokens = 20

	// EstimationFailed is returned alongside an error when an estimate
	// cannot be computed. It is distinct from a legitimate zero.
	EstimationFailed = -1
)

// Sentinel errors for estimation failures.
var (
	ErrNilSuggestions = errors.New("budget: suggestions list is nil")
	ErrUnserializable = errors.New("budget: value cannot be serialized")
)

// Estimator estimates token usage of suggestion responses and limits their
// size. The zero value is not usable; construct with NewEstimator.
//
// Contract:
// - Concurrency: an Estimator is immutable and safe for concurrent use.
// - Errors: a failed estimate returns (EstimationFailed, err), never a
//   silent zero, so callers can distinguish "empty" from "uncomputable".
type Estimator struct {
	maxTokens int
}

// NewEstimator creates an estimator with the given response budget.
// maxTokens <= 0 takes DefaultMaxResponseTokens.
func NewEstimator(maxTokens int) *Estimator {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxResponseTokens
	}
	return &Estimator{maxTokens: maxTokens}
}

// MaxTokens returns the configured response budget.
func (e *Estimator) MaxTokens() int {
	return e.maxTokens
}

// EstimateTextTokens estimates the tokens in a text string: whitespace runs
// collapse to single spaces, then max(1, chars/4). Empty text is 0 tokens.
func (e *Estimator) EstimateTextTokens(text string) int {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return 0
	}

	tokens := utf8.RuneCountInString(normalized) / CharsPerToken
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// EstimateJSONTokens estimates the tokens of a value's compact JSON form.
func (e *Estimator) EstimateJSONTokens(v any) (int, error) {
	if v == nil {
		return 0, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return EstimationFailed, fmt.Errorf("%w: %v", ErrUnserializable, err)
	}
	return e.EstimateTextTokens(string(data)), nil
}

// EstimateSuggestionTokens estimates the total tokens of a suggestion list:
// a per-item base cost plus the name and, when present, the id. A nil list
// is uncomputable; an empty list is 0.
func (e *Estimator) EstimateSuggestionTokens(suggestions []match.Suggestion) (int, error) {
	if suggestions == nil {
		return EstimationFailed, ErrNilSuggestions
	}

	total := 0
	for _, s := range suggestions {
		tokens := SuggestionBaseTokens
		tokens += e.EstimateTextTokens(s.Name)
		if s.ID != "" {
			tokens += e.EstimateTextTokens(s.ID)
		}
		total += tokens
	}
	return total, nil
}

// EstimateErrorResponseTokens estimates the complete error response: base
// structure plus message plus suggestions.
func (e *Estimator) EstimateErrorResponseTokens(message string, suggestions []match.Suggestion) (int, error) {
	suggestionTokens, err := e.EstimateSuggestionTokens(suggestions)
	if err != nil {
		return EstimationFailed, err
	}
	return ErrorBaseTokens + e.EstimateTextTokens(message) + suggestionTokens, nil
}

// ShouldTruncate reports whether the response exceeds the budget.
func (e *Estimator) ShouldTruncate(message string, suggestions []match.Suggestion) bool {
	tokens, err := e.EstimateErrorResponseTokens(message, suggestions)
	if err != nil {
		return false
	}
	return tokens > e.maxTokens
}

// LimitSuggestions trims the list from the tail until the estimated error
// response fits the budget, or the list is empty. Suggestions arrive sorted
// best-first, so dropping the tail keeps the highest-confidence entries.
// This is a greedy trim, never a re-ranking. A nil list stays nil.
func (e *Estimator) LimitSuggestions(suggestions []match.Suggestion, message string) []match.Suggestion {
	if suggestions == nil {
		return nil
	}

	limited := suggestions
	for len(limited) > 0 {
		tokens, err := e.EstimateErrorResponseTokens(message, limited)
		if err != nil || tokens <= e.maxTokens {
			break
		}
		limited = limited[:len(limited)-1]
	}
	return limited
}

// TruncationMessage describes how many matches were dropped from a list,
// e.g. "(3 more matches available)". Empty when nothing was dropped.
func TruncationMessage(originalCount, keptCount int, resourceType string) string {
	remaining := originalCount - keptCount
	if remaining <= 0 {
		return ""
	}
	if resourceType == "" {
		resourceType = "matches"
	}
	return fmt.Sprintf("(%d more %s available)", remaining, resourceType)
}
