package match

import (
	"testing"
	"time"
)

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func candidatesFromNames(ns ...string) []Candidate {
	out := make([]Candidate, len(ns))
	for i, n := range ns {
		out[i] = Candidate{Item: n, Name: n}
	}
	return out
}

func TestMatcher_EmptyInputs(t *testing.T) {
	m := New(Config{})

	if got := m.FindMatches("", candidatesFromNames("A", "B")); got != nil {
		t.Errorf("empty query should yield no results, got %v", got)
	}
	if got := m.FindMatches("   ", candidatesFromNames("A")); got != nil {
		t.Errorf("blank query should yield no results, got %v", got)
	}
	if got := m.FindMatches("query", nil); got != nil {
		t.Errorf("no candidates should yield no results, got %v", got)
	}
}

func TestMatcher_SkipsEmptyNames(t *testing.T) {
	m := New(Config{})
	candidates := []Candidate{
		{Item: 1, Name: ""},
		{Item: 2, Name: "Deploy Pipeline"},
	}

	results := m.FindMatches("Deploy Pipeline", candidates)
	if len(results) != 1 || results[0].Item != 2 {
		t.Errorf("empty-name candidate should be skipped, got %v", results)
	}
}

func TestMatcher_MatchTypes(t *testing.T) {
	m := New(Config{})

	tests := []struct {
		name           string
		query          string
		candidate      string
		wantType       string
		wantSimilarity float64
	}{
		{"exact", "CI Pipeline", "CI Pipeline", TypeExact, 1.0},
		{"exact substring", "Build", "CI-Build-Pipeline", TypeExactSubstring, 1.0},
		{"case insensitive", "build", "CI-Build-Pipeline", TypeCaseInsensitive, 0.9},
		{"word match", "test deploy", "Deploy-Test-Pipeline", TypeWordMatch, 8.0 / 15},
		{"fuzzy typo", "buld", "build", TypeFuzzy, 0.56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotType := m.score(tt.query, tt.candidate)
			if gotType != tt.wantType {
				t.Errorf("score(%q, %q) type = %q, want %q", tt.query, tt.candidate, gotType, tt.wantType)
			}
			if diff := got - tt.wantSimilarity; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("score(%q, %q) = %v, want %v", tt.query, tt.candidate, got, tt.wantSimilarity)
			}
		})
	}
}

func TestMatcher_ExactMatchPrecedence(t *testing.T) {
	m := New(Config{})
	candidates := candidatesFromNames("CI-Build-Pipeline", "ci pipeline", "Release Pipeline")

	results := m.FindMatches("CI Pipeline", candidates)
	if len(results) == 0 {
		t.Fatal("expected matches")
	}
	if results[0].Name != "ci pipeline" {
		t.Errorf("top match = %q, want case-insensitive exact %q", results[0].Name, "ci pipeline")
	}
	if results[0].Similarity < 0.9 {
		t.Errorf("top similarity = %v, want >= 0.9", results[0].Similarity)
	}
}

func TestMatcher_CIPipelineScenario(t *testing.T) {
	m := New(Config{})
	candidates := candidatesFromNames("CI Pipeline", "CI-Build-Pipeline", "Release Pipeline")

	results := m.FindMatches("ci pipeline", candidates)
	if len(results) == 0 {
		t.Fatal("expected matches")
	}
	if results[0].Name != "CI Pipeline" {
		t.Errorf("top match = %q, want %q", results[0].Name, "CI Pipeline")
	}
	if results[0].Similarity < 0.9 {
		t.Errorf("top similarity = %v, want >= 0.9", results[0].Similarity)
	}
}

func TestMatcher_ThresholdExclusion(t *testing.T) {
	m := New(Config{SimilarityThreshold: 0.5})
	candidates := candidatesFromNames("Frontend Build", "Backend Deploy")

	results := m.FindMatches("xyz", candidates)
	if len(results) != 0 {
		t.Errorf("no candidate should clear the threshold, got %v", names(results))
	}

	// The invariant holds for every returned result, not just this query.
	results = m.FindMatches("pipeline", candidatesFromNames("Pipeline One", "Unrelated"))
	for _, r := range results {
		if r.Similarity < 0.5 {
			t.Errorf("result %q has similarity %v below threshold", r.Name, r.Similarity)
		}
	}
}

func TestMatcher_StableTieOrder(t *testing.T) {
	m := New(Config{})
	// Both names contain the query literally, so both score 1.0.
	candidates := candidatesFromNames("Build First", "Build Second")

	results := m.FindMatches("Build", candidates)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Name != "Build First" || results[1].Name != "Build Second" {
		t.Errorf("ties must preserve input order, got %v", names(results))
	}
}

func TestMatcher_MaxSuggestions(t *testing.T) {
	m := New(Config{MaxSuggestions: 3})
	candidates := candidatesFromNames(
		"Build A", "Build B", "Build C", "Build D", "Build E",
	)

	results := m.FindMatches("Build", candidates)
	if len(results) != 3 {
		t.Errorf("len(results) = %d, want 3", len(results))
	}
	// Truncation keeps the best-ranked prefix in input order.
	if results[0].Name != "Build A" || results[2].Name != "Build C" {
		t.Errorf("unexpected truncation order: %v", names(results))
	}
}

func TestMatcher_CandidateIDs(t *testing.T) {
	type pipeline struct {
		ID   string
		Name string
	}
	items := []pipeline{
		{ID: "7", Name: "CI Pipeline"},
		{ID: "9", Name: "Release Pipeline"},
	}

	candidates := Candidates(items,
		func(p pipeline) string { return p.Name },
		func(p pipeline) string { return p.ID },
	)

	m := New(Config{})
	results := m.FindMatches("CI Pipeline", candidates)
	if len(results) == 0 {
		t.Fatal("expected matches")
	}
	if results[0].ID != "7" {
		t.Errorf("result ID = %q, want %q", results[0].ID, "7")
	}
	if p, ok := results[0].Item.(pipeline); !ok || p.ID != "7" {
		t.Errorf("result Item should borrow the original candidate, got %#v", results[0].Item)
	}
}

func TestMatcher_OnSlowScan(t *testing.T) {
	fired := false
	m := New(Config{
		SlowScanThreshold: time.Nanosecond,
		OnSlowScan: func(elapsed time.Duration, candidates, matches int) {
			fired = true
			if candidates != 3 {
				t.Errorf("candidates = %d, want 3", candidates)
			}
		},
	})

	m.FindMatches("build", candidatesFromNames("Build A", "Build B", "Unrelated"))
	if !fired {
		t.Error("OnSlowScan should fire when the scan exceeds the threshold")
	}
}
