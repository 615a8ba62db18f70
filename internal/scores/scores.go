// Package scores holds the static innovation score table and the filtering
// and aggregation the dashboard performs over it. Scores are precomputed 0-10
// metrics per jurisdiction/industry; nothing here derives them at runtime.
package scores

import (
	"fmt"
	"sort"

	"lexboard/internal/domain"
)

// Entry is one jurisdiction's row in the score table.
type Entry struct {
	Jurisdiction string
	Scores       map[string]float64 // keyed by industry name
	Explanation  string
}

// Scored is a jurisdiction paired with the score resolved for the selected
// industry. This is the shape the chart, table, and exports consume.
type Scored struct {
	Jurisdiction string
	Score        float64
	Explanation  string
}

// Table returns the official innovation score table. Callers may mutate the
// returned slice freely.
func Table() []Entry {
	return []Entry{
		{
			Jurisdiction: "United States",
			Scores: map[string]float64{
				"Luxury": 8.3, "Entertainment": 8.8, "Pharmaceuticals": 9.0,
				"Technology": 8.5, "Fintech": 8.1,
			},
			Explanation: "Strong IP enforcement and flexible privacy laws (CCPA), but lacks unified federal privacy law.",
		},
		{
			Jurisdiction: "European Union",
			Scores: map[string]float64{
				"Luxury": 8.5, "Entertainment": 8.4, "Pharmaceuticals": 8.3,
				"Technology": 8.4, "Fintech": 8.3,
			},
			Explanation: "GDPR and harmonized IP regime provide predictability, but high compliance burdens.",
		},
		{
			Jurisdiction: "United Kingdom",
			Scores: map[string]float64{
				"Luxury": 8.2, "Entertainment": 8.1, "Pharmaceuticals": 8.0,
				"Technology": 8.2, "Fintech": 8.8,
			},
			Explanation: "Strong fintech support and agile regulation, but post-Brexit uncertainty affects cross-border alignment.",
		},
		{
			Jurisdiction: "Canada",
			Scores: map[string]float64{
				"Luxury": 6.9, "Entertainment": 6.7, "Pharmaceuticals": 7.1,
				"Technology": 7.3, "Fintech": 6.7,
			},
			Explanation: "Outdated IP enforcement and slow reform (Bill C-27) reduce legal clarity and innovation incentives.",
		},
	}
}

// Score resolves the entry's score for the given industry. AllIndustries is
// the arithmetic mean of the five sector scores.
func (e Entry) Score(industry string) (float64, error) {
	if industry == domain.AllIndustries {
		var sum float64
		for _, ind := range domain.Industries {
			sum += e.Scores[ind]
		}
		return sum / float64(len(domain.Industries)), nil
	}
	v, ok := e.Scores[industry]
	if !ok {
		return 0, fmt.Errorf("unknown industry %q", industry)
	}
	return v, nil
}

// Filter resolves scores for the selected industry and keeps only the given
// jurisdictions, preserving table order.
func Filter(industry string, jurisdictions []string) ([]Scored, error) {
	keep := make(map[string]bool, len(jurisdictions))
	for _, j := range jurisdictions {
		keep[j] = true
	}

	var out []Scored
	for _, e := range Table() {
		if !keep[e.Jurisdiction] {
			continue
		}
		v, err := e.Score(industry)
		if err != nil {
			return nil, err
		}
		out = append(out, Scored{Jurisdiction: e.Jurisdiction, Score: v, Explanation: e.Explanation})
	}
	return out, nil
}

// SortByScore orders rows score-descending, the order the bar chart uses.
func SortByScore(rows []Scored) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
}
