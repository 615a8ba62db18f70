// Package domain holds the core vocabulary shared by the import pipeline and
// the dashboard: jurisdictions, sectors, laws, barriers, and the display-side
// legislation row, plus the jurisdiction name canonicalization table used by
// both paths.
package domain

import "strings"

// AllIndustries is the pseudo-industry that averages the five sector scores.
const AllIndustries = "All Industries"

// Industries is the fixed sector list, in display order.
var Industries = []string{"Luxury", "Entertainment", "Pharmaceuticals", "Technology", "Fintech"}

// Jurisdictions is the fixed jurisdiction list, in display order.
var Jurisdictions = []string{"United States", "European Union", "United Kingdom", "Canada"}

// Jurisdiction is a country or region analyzed.
type Jurisdiction struct {
	ID   int64
	Name string
}

// Sector is an industry category.
type Sector struct {
	ID   int64
	Name string
}

// Law is a legislative provision belonging to one jurisdiction.
type Law struct {
	ID             int64
	JurisdictionID int64
	Name           string
	Type           string
	Summary        string
	Enforceability string
}

// Barrier is a per-sector risk annotation on a law.
type Barrier struct {
	ID          int64
	LawID       int64
	SectorID    int64
	RiskScore   int
	Description string
}

// LegislationRow is the display-side projection of a law: the columns the
// dashboard shows and the exports serialize.
type LegislationRow struct {
	Jurisdiction    string
	Law             string
	Significance    string
	InnovationStage string
	Enforceability  string
	RiskScore       string
	Industries      string // comma/semicolon joined relevant-industry field
}

// canonical maps lowercased jurisdiction name variants to the canonical form.
// The source workbook and the score table historically disagreed on which
// variant was canonical ("UK" vs "United Kingdom", "United States" vs
// "United States of America"); this table is the single authority for both
// the import and display paths.
var canonical = map[string]string{
	"uk":                       "United Kingdom",
	"u.k.":                     "United Kingdom",
	"great britain":            "United Kingdom",
	"eu":                       "European Union",
	"e.u.":                     "European Union",
	"us":                       "United States",
	"u.s.":                     "United States",
	"usa":                      "United States",
	"united states of america": "United States",
}

// CanonicalJurisdiction trims a jurisdiction name and resolves known variants
// to their canonical form. Unknown names are returned trimmed but otherwise
// untouched.
func CanonicalJurisdiction(name string) string {
	trimmed := strings.TrimSpace(name)
	if c, ok := canonical[strings.ToLower(trimmed)]; ok {
		return c
	}
	return trimmed
}

// SplitIndustries splits a comma-delimited relevant-industry cell into
// trimmed, non-empty sector names.
func SplitIndustries(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
