// Package legislation abstracts where the dashboard's legislation rows come
// from: the relational store built by the importer, or the workbook read
// directly. Both sources apply the same filter semantics.
package legislation

import (
	"context"
	"strings"

	"lexboard/internal/domain"
	"lexboard/internal/store"
	"lexboard/internal/workbook"
)

// Filter selects legislation rows for display. An empty Industry or the
// AllIndustries pseudo-industry disables the industry predicate.
type Filter struct {
	Industry      string
	Jurisdictions []string
}

// Apply keeps rows whose jurisdiction is in the selected subset and, when a
// concrete industry is selected, whose relevant-industry field contains the
// industry name case-insensitively.
func (f Filter) Apply(rows []domain.LegislationRow) []domain.LegislationRow {
	keep := make(map[string]bool, len(f.Jurisdictions))
	for _, j := range f.Jurisdictions {
		keep[j] = true
	}
	matchIndustry := f.Industry != "" && f.Industry != domain.AllIndustries
	needle := strings.ToLower(f.Industry)

	var out []domain.LegislationRow
	for _, r := range rows {
		if !keep[r.Jurisdiction] {
			continue
		}
		if matchIndustry && !strings.Contains(strings.ToLower(r.Industries), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Source yields legislation rows matching a filter.
type Source interface {
	Legislation(ctx context.Context, f Filter) ([]domain.LegislationRow, error)
}

// StoreSource reads legislation from the SQLite schema.
type StoreSource struct {
	Store *store.Store
}

// Legislation implements Source.
func (s *StoreSource) Legislation(ctx context.Context, f Filter) ([]domain.LegislationRow, error) {
	rows, err := s.Store.Legislation(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(rows), nil
}

// WorkbookSource reads legislation straight from the .xlsx file. Rows missing
// required fields are kept here (display is more permissive than import);
// jurisdiction names are canonicalized so workbook variants match the score
// table.
type WorkbookSource struct {
	Path string
}

// Legislation implements Source.
func (s *WorkbookSource) Legislation(ctx context.Context, f Filter) ([]domain.LegislationRow, error) {
	records, err := workbook.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.LegislationRow, 0, len(records))
	for _, rec := range records {
		stage := rec.InnovationStage
		if stage == "" {
			stage = "General"
		}
		rows = append(rows, domain.LegislationRow{
			Jurisdiction:    domain.CanonicalJurisdiction(rec.Jurisdiction),
			Law:             rec.Law,
			Significance:    rec.Significance,
			InnovationStage: stage,
			Enforceability:  rec.Enforceability,
			RiskScore:       rec.RiskScore,
			Industries:      rec.RelevantIndustry,
		})
	}
	return f.Apply(rows), nil
}
