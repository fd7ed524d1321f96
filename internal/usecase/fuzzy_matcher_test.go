package usecase

import (
	"testing"
)

func TestFuzzyMatcher_Matches(t *testing.T) {
	m := NewFuzzyMatcher(MatchConfig{})

	tests := []struct {
		name      string
		candidate string
		query     string
		want      bool
	}{
		{"identity", "Bamboo Toothbrush", "Bamboo Toothbrush", true},
		{"substring", "Bamboo Toothbrush", "tooth", true},
		{"case insensitive substring", "Bamboo Toothbrush", "BAMBOO", true},
		{"one substitution", "kitchen", "kitchan", true},
		{"two edits", "kitchen", "kichn", true},
		{"three edits", "kitchen", "kchn", false},
		{"typo against long candidate", "Stainless Steel Water Bottle", "botle", false},
		{"empty query", "anything", "", false},
		{"empty candidate short query", "", "ab", true},
		{"empty candidate long query", "", "abc", false},
		{"unrelated", "cleaning", "yoga", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Matches(tt.candidate, tt.query); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.candidate, tt.query, got, tt.want)
			}
		})
	}
}

func TestFuzzyMatcher_IdentityProperty(t *testing.T) {
	m := NewFuzzyMatcher(MatchConfig{})
	inputs := []string{"a", "Hemp", "Organic Cotton T-Shirt", "personal-care", "ÄÖÜ wörds"}
	for _, s := range inputs {
		if !m.Matches(s, s) {
			t.Errorf("expected %q to match itself", s)
		}
	}
}

func TestFuzzyMatcher_SingleSubstitutionProperty(t *testing.T) {
	m := NewFuzzyMatcher(MatchConfig{})
	candidates := []string{"cork", "kitchen", "electronics", "Recycled Denim Jeans"}

	for _, c := range candidates {
		for i := range c {
			q := []byte(c)
			if q[i] == 'x' {
				q[i] = 'y'
			} else {
				q[i] = 'x'
			}
			if !m.Matches(c, string(q)) {
				t.Errorf("expected %q to match %q after one substitution", c, string(q))
			}
		}
	}
}

func TestFuzzyMatcher_Config(t *testing.T) {
	tests := []struct {
		name string
		cfg  MatchConfig
		want int
	}{
		{"default", MatchConfig{}, DefaultMaxDistance},
		{"negative falls back", MatchConfig{MaxDistance: -1}, DefaultMaxDistance},
		{"custom", MatchConfig{MaxDistance: 4}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewFuzzyMatcher(tt.cfg).MaxDistance(); got != tt.want {
				t.Errorf("MaxDistance() = %d, want %d", got, tt.want)
			}
		})
	}

	strict := NewFuzzyMatcher(MatchConfig{MaxDistance: 1})
	if strict.Matches("kitchen", "kichn") {
		t.Error("distance 2 should not match with threshold 1")
	}
}
