// internal/matching/scoring_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Component Tests
// ==========================

func TestScore_TechStackComponent(t *testing.T) {
	tests := []struct {
		name     string
		stack    []string
		expected float64
	}{
		{"empty stack", []string{}, 0},
		{"no reference matches", []string{"PHP", "Perl"}, 0},
		{"one of five", []string{"Python"}, 8},
		{"full reference set", []string{"Python", "Go", "Java", "Kubernetes", "Docker"}, 40},
		{"non-reference entries ignored", []string{"Python", "React", "Rust"}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.stack, 0, 0, "")
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

func TestScore_HeadcountBracketBoundaries(t *testing.T) {
	tests := []struct {
		employees int
		expected  float64
	}{
		{0, 0},
		{9, 0},
		{10, 10},
		{99, 10},
		{100, 20},
		{5000, 20},
		{10000, 20},
		{10001, 10},
		{250000, 10},
	}

	for _, tt := range tests {
		got := Score(nil, tt.employees, 0, "")
		assert.InDelta(t, tt.expected, got, 0.0001, "employees=%d", tt.employees)
	}
}

func TestScore_FundingBonus(t *testing.T) {
	tests := []struct {
		name     string
		funding  string
		expected float64
	}{
		{"empty funding", "", 0},
		{"unknown sentinel", "Unknown", 0},
		{"seed round", "Seed", 10},
		{"series b", "Series B", 10},
		{"lowercase unknown is not the sentinel", "unknown", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(nil, 0, 0, tt.funding)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

// ==========================
// Clamping & Edge Cases
// ==========================

func TestScore_UpperClampOnly(t *testing.T) {
	// 40 + 20 + 90 + 10 = 160 before the clamp.
	got := Score([]string{"Python", "Go", "Java", "Kubernetes", "Docker"}, 1000, 300, "Series A")
	assert.Equal(t, 100.0, got)
}

func TestScore_NegativeCompetencyPct(t *testing.T) {
	// There is no lower clamp: a negative match percentage drives the
	// result negative. Callers compare scores across runs, so this
	// stays as observed behavior.
	got := Score([]string{}, 0, -1000, "")
	assert.InDelta(t, -300.0, got, 0.0001)
	assert.Less(t, got, 0.0)
}

func TestScore_DuplicateTechEntries(t *testing.T) {
	// Each duplicate occurrence counts toward the ratio.
	single := Score([]string{"Python"}, 0, 0, "")
	double := Score([]string{"Python", "Python"}, 0, 0, "")

	assert.InDelta(t, 8.0, single, 0.0001)
	assert.InDelta(t, 16.0, double, 0.0001)
}

func TestScore_Monotonicity(t *testing.T) {
	stack := []string{"Python", "Docker"}
	prev := Score(stack, 500, 0, "Seed")
	for pct := 1.0; pct <= 100.0; pct++ {
		cur := Score(stack, 500, pct, "Seed")
		assert.GreaterOrEqual(t, cur, prev, "pct=%f", pct)
		prev = cur
	}
}

func TestScore_WithinRangeForValidInput(t *testing.T) {
	got := Score([]string{"Python", "Go", "Kubernetes"}, 1500, 75, "Series B")
	// 3/5*40 + 20 + 22.5 + 10 = 76.5
	assert.InDelta(t, 76.5, got, 0.0001)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 100.0)
}
