package usecase

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultMaxDistance is the largest edit distance still treated as a match
const DefaultMaxDistance = 2

// MatchConfig holds configuration for fuzzy matching
type MatchConfig struct {
	MaxDistance int
}

// FuzzyMatcher decides whether a candidate string matches a query.
// A candidate matches when it contains the query, or when the edit distance
// between the two whole lowercased strings is within MaxDistance.
type FuzzyMatcher struct {
	config MatchConfig
}

// NewFuzzyMatcher creates a matcher. A non-positive MaxDistance falls back to the default.
func NewFuzzyMatcher(config MatchConfig) *FuzzyMatcher {
	if config.MaxDistance <= 0 {
		config.MaxDistance = DefaultMaxDistance
	}
	return &FuzzyMatcher{config: config}
}

// Matches reports whether candidate matches query. An empty query never matches.
func (m *FuzzyMatcher) Matches(candidate, query string) bool {
	if query == "" {
		return false
	}

	c := strings.ToLower(candidate)
	q := strings.ToLower(query)
	if strings.Contains(c, q) {
		return true
	}

	// Whole-string distance, so long candidates rarely match on typos alone
	return fuzzy.LevenshteinDistance(c, q) <= m.config.MaxDistance
}

// MaxDistance returns the configured edit-distance threshold
func (m *FuzzyMatcher) MaxDistance() int {
	return m.config.MaxDistance
}
