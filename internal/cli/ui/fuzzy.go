package ui

import (
	"slices"
	"strings"
)

const (
	// DefaultMaxDistance is the largest edit distance still suggested
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions caps the number of suggestions
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures fuzzy matching. Zero fields take the defaults.
type FuzzyMatchOptions struct {
	MaxDistance    int
	MaxSuggestions int
	CaseSensitive  bool
}

// FindSimilar returns the candidates closest to target by Levenshtein
// distance, nearest first. Equally distant candidates keep their input order.
//
//	FindSimilar("app.OrderWorkfow", []string{"app.OrderWorkflow", "app.Plain"}, nil)
//	// ["app.OrderWorkflow"]
func FindSimilar(target string, candidates []string, opts *FuzzyMatchOptions) []string {
	var o FuzzyMatchOptions
	if opts != nil {
		o = *opts
	}
	if o.MaxDistance == 0 {
		o.MaxDistance = DefaultMaxDistance
	}
	if o.MaxSuggestions == 0 {
		o.MaxSuggestions = DefaultMaxSuggestions
	}

	normalize := func(s string) string {
		if o.CaseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	type match struct {
		value    string
		distance int
	}
	var matches []match
	want := normalize(target)
	for _, c := range candidates {
		if d := LevenshteinDistance(want, normalize(c)); d <= o.MaxDistance {
			matches = append(matches, match{c, d})
		}
	}

	slices.SortStableFunc(matches, func(a, b match) int { return a.distance - b.distance })

	result := make([]string, 0, min(len(matches), o.MaxSuggestions))
	for _, m := range matches[:min(len(matches), o.MaxSuggestions)] {
		result = append(result, m.value)
	}
	return result
}

// LevenshteinDistance counts the single-rune insertions, deletions and
// substitutions needed to turn a into b.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
