package textfilter

import (
	"testing"
)

func TestClean(t *testing.T) {
	nf := NewNameFilter()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean name untouched", "Arden", "Arden"},
		{"lowercase word", "damn hero", "dang hero"},
		{"uppercase preserved", "DAMN HERO", "DANG HERO"},
		{"title case preserved", "Damn Hero", "Dang Hero"},
		{"substring not matched", "Cassandra", "Cassandra"},
		{"embedded substring survives", "assassin class", "assassin class"},
		{"word boundary", "bass player", "bass player"},
		{"standalone word replaced", "kick his ass", "kick his butt"},
		{"multiple words", "damn shit", "dang shoot"},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := nf.Clean(tc.input); got != tc.expected {
				t.Errorf("Clean(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestContainsBlocked(t *testing.T) {
	nf := NewNameFilter()

	tests := []struct {
		input    string
		expected bool
	}{
		{"Arden", false},
		{"damn", true},
		{"DAMN", true},
		{"Cassandra", false},
		{"the Damn Knight", true},
		{"", false},
	}

	for _, tc := range tests {
		if got := nf.ContainsBlocked(tc.input); got != tc.expected {
			t.Errorf("ContainsBlocked(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	nf := NewNameFilter()
	once := nf.Clean("damn hero")
	twice := nf.Clean(once)
	if once != twice {
		t.Errorf("Cleaning twice changed the result: %q vs %q", once, twice)
	}
}
