// internal/pipeline/orchestrator.go
package pipeline

import (
	"sort"
	"sync"

	"edagent-workers/internal/matching"
	"edagent-workers/internal/models"
)

// extractFn is indirected so tests can simulate a failing extraction.
var extractFn = matching.Extract

// AggregateCompetencies fans extraction out over the batch and merges
// the per-vacancy sets via union. A failure on one vacancy degrades
// that item to the empty set without aborting the batch. The result is
// ordered by the extractor vocabulary, so it is deterministic no matter
// which goroutine finishes first.
func AggregateCompetencies(vacancies []models.Vacancy) []string {
	results := make([][]string, len(vacancies))

	var wg sync.WaitGroup
	for i := range vacancies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = nil
				}
			}()
			results[i] = extractFn(vacancies[i].Description)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, set := range results {
		for _, label := range set {
			seen[label] = true
		}
	}

	union := make([]string, 0, len(seen))
	for _, label := range matching.Vocabulary() {
		if seen[label] {
			union = append(union, label)
		}
	}
	return union
}

// MatchPercentage returns the share of demanded competencies covered by
// the company's tech stack, on a 0-100 scale. No demand means no match.
func MatchPercentage(demanded, techStack []string) float64 {
	if len(demanded) == 0 {
		return 0
	}

	stack := make(map[string]bool, len(techStack))
	for _, tech := range techStack {
		stack[tech] = true
	}

	covered := 0
	for _, label := range demanded {
		if stack[label] {
			covered++
		}
	}
	return float64(covered) / float64(len(demanded)) * 100
}

// Decorate returns the companies with a freshly computed scoring. When
// ranked is true the result is ordered by scoring descending with
// company ID as the tie-break; otherwise input order is kept. The input
// slice is not mutated.
func Decorate(companies []models.CompanyProfile, demanded []string, ranked bool) []models.CompanyProfile {
	out := make([]models.CompanyProfile, len(companies))
	copy(out, companies)

	for i := range out {
		pct := MatchPercentage(demanded, out[i].TechStack)
		out[i].Scoring = matching.Score(out[i].TechStack, out[i].Employees, pct, out[i].Funding)
	}

	if ranked {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Scoring != out[j].Scoring {
				return out[i].Scoring > out[j].Scoring
			}
			return out[i].ID < out[j].ID
		})
	}
	return out
}

// Run composes the batch: aggregate extraction over the vacancies, then
// company decoration against the demanded set.
func Run(vacancies []models.Vacancy, companies []models.CompanyProfile, ranked bool) ([]models.CompanyProfile, []string) {
	demanded := AggregateCompetencies(vacancies)
	return Decorate(companies, demanded, ranked), demanded
}
