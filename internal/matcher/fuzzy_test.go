// file: internal/matcher/fuzzy_test.go
// version: 1.1.0
// guid: b2c3d4e5-f6a7-8901-bcde-f23456789012

package matcher

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"abc", "abc", 0},
		{"ABC", "abc", 0}, // case insensitive
	}
	for _, tt := range tests {
		got := LevenshteinDistance(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestScoreMatch(t *testing.T) {
	tests := []struct {
		query, target string
		minExpected   int
		maxExpected   int
	}{
		// Exact match
		{"Le petit prince", "Le petit prince", 100, 100},
		// Case insensitive exact
		{"le petit prince", "Le Petit Prince", 100, 100},
		// Prefix
		{"Le petit", "Le petit prince", 80, 95},
		// Substring
		{"prince", "Le petit prince", 60, 90},
		// Fuzzy (typo)
		{"Le ptit prince", "Le petit prince", 30, 75},
		// No match
		{"xyzzy", "Le petit prince", 0, 20},
		// Empty
		{"", "Le petit prince", 0, 0},
		{"prince", "", 0, 0},
	}
	for _, tt := range tests {
		score := ScoreMatch(tt.query, tt.target)
		if score < tt.minExpected || score > tt.maxExpected {
			t.Errorf("ScoreMatch(%q, %q) = %d, want [%d, %d]",
				tt.query, tt.target, score, tt.minExpected, tt.maxExpected)
		}
	}
}

func TestScoreMatch_Ranking(t *testing.T) {
	query := "dune"
	// Exact should beat substring which should beat fuzzy
	exact := ScoreMatch(query, "Dune")
	substring := ScoreMatch(query, "Dune Messiah")
	fuzzy := ScoreMatch(query, "June")

	if exact <= substring {
		t.Errorf("exact (%d) should beat substring (%d)", exact, substring)
	}
	if substring <= fuzzy {
		t.Errorf("substring (%d) should beat fuzzy (%d)", substring, fuzzy)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Hello, World!", "hello world"},
		{"  spaces  ", "spaces"},
		{"it's a test", "its a test"},
	}
	for _, tt := range tests {
		got := normalize(tt.input)
		if got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
