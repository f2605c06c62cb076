package match

import (
	"sort"
	"strings"
	"time"
)

// Default weights for the matching strategies. They are tuned for resource
// naming patterns like "CI-Build-Pipeline" or "Team/Area Path".
const (
	// ExactSubstringWeight: the query is a literal substring of the name.
	ExactSubstringWeight = 1.0
	// CaseInsensitiveWeight: only the case differs.
	CaseInsensitiveWeight = 0.9
	// CommonWordWeight: the names share meaningful tokens.
	CommonWordWeight = 0.8
	// CharacterDistanceWeight: edit-distance similarity, e.g. one-char typos.
	CharacterDistanceWeight = 0.7

	// DefaultSimilarityThreshold balances helpful suggestions vs noise.
	DefaultSimilarityThreshold = 0.5

	// DefaultMaxSuggestions caps the ranked result set.
	DefaultMaxSuggestions = 10

	// DefaultSlowScanThreshold is the scan duration above which OnSlowScan
	// fires. Observability only, never a correctness gate.
	DefaultSlowScanThreshold = 200 * time.Millisecond
)

// Match types, for diagnostics only. Ranking ties are never broken by type.
const (
	TypeExact           = "exact"
	TypeExactSubstring  = "exact_substring"
	TypeCaseInsensitive = "case_insensitive"
	TypeWordMatch       = "word_match"
	TypeFuzzy           = "fuzzy"
)

// tokenSeparators are the characters names are split on for word scoring.
const tokenSeparators = " -_./\\()[]"

// Candidate is one item to match against, with its display name and an
// optional identifier extracted by the caller.
type Candidate struct {
	Item any
	Name string
	ID   string
}

// Result is a scored match. Item is borrowed from the input candidate; the
// caller must keep the candidate list alive for the result's lifetime.
type Result struct {
	Item       any
	Name       string
	ID         string
	Similarity float64
	Type       string
}

// Config configures a Matcher. Zero values take the documented defaults.
type Config struct {
	// SimilarityThreshold is the minimum score to include in results.
	SimilarityThreshold float64

	// MaxSuggestions caps the number of results returned.
	MaxSuggestions int

	// SlowScanThreshold is the scan duration above which OnSlowScan fires.
	SlowScanThreshold time.Duration

	// OnSlowScan is called when a scan exceeds SlowScanThreshold. Optional.
	OnSlowScan func(elapsed time.Duration, candidates, matches int)

	// Strategy weights. Zero values take the package defaults.
	ExactSubstringWeight    float64
	CaseInsensitiveWeight   float64
	CharacterDistanceWeight float64
	CommonWordWeight        float64
}

// Matcher scores candidates against a query using weighted strategies.
//
// Contract:
// - Concurrency: a Matcher is immutable after construction and safe for
//   concurrent use.
// - Errors: matching is total; empty inputs yield empty outputs.
type Matcher struct {
	cfg Config
}

// New creates a Matcher, applying defaults for zero-valued config fields.
func New(cfg Config) *Matcher {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultMaxSuggestions
	}
	if cfg.SlowScanThreshold <= 0 {
		cfg.SlowScanThreshold = DefaultSlowScanThreshold
	}
	if cfg.ExactSubstringWeight <= 0 {
		cfg.ExactSubstringWeight = ExactSubstringWeight
	}
	if cfg.CaseInsensitiveWeight <= 0 {
		cfg.CaseInsensitiveWeight = CaseInsensitiveWeight
	}
	if cfg.CharacterDistanceWeight <= 0 {
		cfg.CharacterDistanceWeight = CharacterDistanceWeight
	}
	if cfg.CommonWordWeight <= 0 {
		cfg.CommonWordWeight = CommonWordWeight
	}
	return &Matcher{cfg: cfg}
}

// Candidates builds the matcher input from a typed slice. idOf may be nil
// when the items carry no identifier.
func Candidates[T any](items []T, nameOf func(T) string, idOf func(T) string) []Candidate {
	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		c := Candidate{Item: item, Name: nameOf(item)}
		if idOf != nil {
			c.ID = idOf(item)
		}
		out = append(out, c)
	}
	return out
}

// FindMatches scores every candidate against the query and returns the
// thresholded results sorted by similarity descending. The sort is stable:
// ties preserve candidate input order. Candidates with empty names are
// skipped. An empty query or candidate list yields no results.
func (m *Matcher) FindMatches(query string, candidates []Candidate) []Result {
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return nil
	}

	var results []Result
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}

		similarity, matchType := m.score(query, c.Name)
		if similarity < m.cfg.SimilarityThreshold {
			continue
		}

		results = append(results, Result{
			Item:       c.Item,
			Name:       c.Name,
			ID:         c.ID,
			Similarity: similarity,
			Type:       matchType,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > m.cfg.MaxSuggestions {
		results = results[:m.cfg.MaxSuggestions]
	}

	if elapsed := time.Since(start); elapsed > m.cfg.SlowScanThreshold && m.cfg.OnSlowScan != nil {
		m.cfg.OnSlowScan(elapsed, len(candidates), len(results))
	}

	return results
}

// score returns the candidate's similarity and match type. Substring checks
// short-circuit before the edit-distance/token blend; the two cheap checks
// are a priority order, not inputs to the final max.
func (m *Matcher) score(query, name string) (float64, string) {
	if strings.Contains(name, query) {
		if query == name {
			return m.cfg.ExactSubstringWeight, TypeExact
		}
		return m.cfg.ExactSubstringWeight, TypeExactSubstring
	}

	queryLower := strings.ToLower(query)
	nameLower := strings.ToLower(name)
	if strings.Contains(nameLower, queryLower) {
		return m.cfg.CaseInsensitiveWeight, TypeCaseInsensitive
	}

	charScore := levenshteinSimilarity(queryLower, nameLower) * m.cfg.CharacterDistanceWeight
	wordScore := m.wordSimilarity(queryLower, nameLower)

	similarity := charScore
	if wordScore > similarity {
		similarity = wordScore
	}

	// The word score alone decides the type, not whichever score won.
	matchType := TypeFuzzy
	if wordScore > 0.5 {
		matchType = TypeWordMatch
	}
	return similarity, matchType
}

// wordSimilarity is the Jaccard similarity of the two token sets, scaled by
// the common-word weight.
func (m *Matcher) wordSimilarity(query, name string) float64 {
	queryWords := tokenSet(query)
	nameWords := tokenSet(name)
	if len(queryWords) == 0 || len(nameWords) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range queryWords {
		if _, ok := nameWords[w]; ok {
			intersection++
		}
	}
	union := len(queryWords) + len(nameWords) - intersection

	return float64(intersection) / float64(union) * m.cfg.CommonWordWeight
}

// tokenSet splits text on the separator set and lowercases each token.
func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(tokenSeparators, r)
	})

	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}
