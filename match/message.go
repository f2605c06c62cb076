package match

import (
	"fmt"
	"math"
	"strings"
)

// DefaultMaxDisplay is the number of suggestion names quoted in an error
// message before the "more matches available" clause kicks in.
const DefaultMaxDisplay = 5

// Suggestion is the response-shaped projection of a Result.
type Suggestion struct {
	Name       string  `json:"name"`
	ID         string  `json:"id,omitempty"`
	Similarity float64 `json:"similarity"`
	MatchType  string  `json:"match_type"`
}

// SuggestionMessage formats a user-facing not-found message listing the top
// matches. maxDisplay <= 0 takes DefaultMaxDisplay.
//
// Format: "{resourceType} '{query}' not found. Did you mean: {names}?" with
// "X or Y" for two names and Oxford-comma joining for three or more, plus a
// trailing "({N} more matches available)" clause when the ranked list was
// longer than maxDisplay.
func SuggestionMessage(resourceType, query string, matches []Result, maxDisplay int) string {
	base := fmt.Sprintf("%s '%s' not found.", resourceType, query)

	if len(matches) == 0 {
		return fmt.Sprintf("%s No similar %ss available.", base, strings.ToLower(resourceType))
	}

	if maxDisplay <= 0 {
		maxDisplay = DefaultMaxDisplay
	}
	shown := matches
	if len(shown) > maxDisplay {
		shown = shown[:maxDisplay]
	}

	names := make([]string, len(shown))
	for i, m := range shown {
		names[i] = "'" + m.Name + "'"
	}

	var joined string
	switch len(names) {
	case 1:
		joined = names[0]
	case 2:
		joined = names[0] + " or " + names[1]
	default:
		joined = strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}

	if len(matches) > maxDisplay {
		return fmt.Sprintf("%s Did you mean: %s? (%d more matches available)",
			base, joined, len(matches)-maxDisplay)
	}
	return fmt.Sprintf("%s Did you mean: %s?", base, joined)
}

// Suggestions projects ranked results into response records, keeping order
// and capping at max (<= 0 means no cap). Similarity is rounded to three
// decimal places.
func Suggestions(matches []Result, max int) []Suggestion {
	if max > 0 && len(matches) > max {
		matches = matches[:max]
	}

	out := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		out = append(out, Suggestion{
			Name:       m.Name,
			ID:         m.ID,
			Similarity: math.Round(m.Similarity*1000) / 1000,
			MatchType:  m.Type,
		})
	}
	return out
}
