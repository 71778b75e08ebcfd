// internal/matching/scoring.go
package matching

// referenceTechStack is the fixed reference set for the tech-stack
// overlap component.
var referenceTechStack = []string{"Python", "Go", "Java", "Kubernetes", "Docker"}

const (
	techStackWeight  = 40.0
	headcountFull    = 20.0
	headcountHalf    = 10.0
	competencyWeight = 0.3
	fundingBonus     = 10.0
	maxScore         = 100.0
)

// Score combines tech-stack overlap, headcount bracket, competency match
// percentage and funding status into a composite suitability score.
//
// Duplicate tech-stack entries each count toward the overlap ratio, and
// the sum is clamped on the upper bound only, so a negative
// competencyMatchPct drives the result negative. Both behaviors are
// load-bearing for callers comparing scores across runs; see the tests
// before changing either.
func Score(techStack []string, employees int, competencyMatchPct float64, funding string) float64 {
	score := 0.0

	matched := 0
	for _, tech := range techStack {
		for _, ref := range referenceTechStack {
			if tech == ref {
				matched++
				break
			}
		}
	}
	score += float64(matched) / float64(len(referenceTechStack)) * techStackWeight

	switch {
	case employees >= 100 && employees <= 10000:
		score += headcountFull
	case (employees >= 10 && employees < 100) || employees > 10000:
		score += headcountHalf
	}

	score += competencyMatchPct * competencyWeight

	if funding != "" && funding != "Unknown" {
		score += fundingBonus
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}
