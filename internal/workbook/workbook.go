// Package workbook reads the legislation spreadsheet. Both the relational
// importer and the dashboard's direct workbook source consume the records it
// produces.
package workbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers expected in the first row of the first sheet.
const (
	ColJurisdiction     = "Jurisdiction"
	ColLaw              = "Law/Subprovision"
	ColSignificance     = "Significance"
	ColRelevantIndustry = "Relevant Industry"
	ColInnovationStage  = "Innovation Stage"
	ColEnforceability   = "Enforceability"
	ColRiskScore        = "Risk Score"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("workbook: missing required column")

// requiredColumns must be present in the header row. The remaining columns
// are optional and default to empty strings.
var requiredColumns = []string{ColJurisdiction, ColLaw, ColSignificance}

// Record is one spreadsheet row with cell values already trimmed. Required
// fields may still be empty here; callers decide whether to drop the row.
type Record struct {
	Jurisdiction     string
	Law              string
	Significance     string
	RelevantIndustry string
	InnovationStage  string
	Enforceability   string
	RiskScore        string
}

// Complete reports whether the record carries all required fields.
func (r Record) Complete() bool {
	return r.Jurisdiction != "" && r.Law != "" && r.Significance != ""
}

// ReadFile reads every data row from the first sheet of an .xlsx file.
// Header names are trimmed before matching; cell values are trimmed.
func ReadFile(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("workbook: open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook: %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("workbook: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook: sheet %q is empty", sheet)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{
			Jurisdiction:     cell(row, ColJurisdiction),
			Law:              cell(row, ColLaw),
			Significance:     cell(row, ColSignificance),
			RelevantIndustry: cell(row, ColRelevantIndustry),
			InnovationStage:  cell(row, ColInnovationStage),
			Enforceability:   cell(row, ColEnforceability),
			RiskScore:        cell(row, ColRiskScore),
		}
		// Skip fully blank rows; Excel files routinely carry trailing ones.
		if rec == (Record{}) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
