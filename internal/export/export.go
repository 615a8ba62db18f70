// Package export serializes the filtered dashboard view as CSV files named
// after the selected industry.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lexboard/internal/domain"
	"lexboard/internal/scores"
)

// Slug lowercases a display title and replaces spaces with underscores:
// "All Industries" -> "all_industries".
func Slug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}

// ScoresFileName returns the export name for the filtered score table.
func ScoresFileName(industry string) string {
	return Slug(industry) + "_innovation_scores.csv"
}

// LegislationFileName returns the export name for the filtered legislation.
func LegislationFileName(industry string) string {
	return Slug(industry) + "_legislation.csv"
}

// WriteScores writes the filtered score table: one row per jurisdiction with
// the resolved innovation score, exactly as displayed.
func WriteScores(w io.Writer, rows []scores.Scored) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Jurisdiction", "Innovation Score"}); err != nil {
		return fmt.Errorf("failed to write scores header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Jurisdiction, fmt.Sprintf("%.2f", r.Score)}); err != nil {
			return fmt.Errorf("failed to write score row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLegislation writes the filtered legislation table with the same
// column selection the dashboard displays.
func WriteLegislation(w io.Writer, rows []domain.LegislationRow) error {
	cw := csv.NewWriter(w)
	header := []string{"Jurisdiction", "Law/Subprovision", "Significance",
		"Innovation Stage", "Enforceability", "Risk Score"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write legislation header: %w", err)
	}
	for _, r := range rows {
		rec := []string{r.Jurisdiction, r.Law, r.Significance,
			r.InnovationStage, r.Enforceability, r.RiskScore}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write legislation row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ScoresToFile writes the score CSV under dir and returns the full path.
func ScoresToFile(dir, industry string, rows []scores.Scored) (string, error) {
	path := filepath.Join(dir, ScoresFileName(industry))
	if err := writeFile(path, func(w io.Writer) error { return WriteScores(w, rows) }); err != nil {
		return "", err
	}
	return path, nil
}

// LegislationToFile writes the legislation CSV under dir and returns the
// full path.
func LegislationToFile(dir, industry string, rows []domain.LegislationRow) (string, error) {
	path := filepath.Join(dir, LegislationFileName(industry))
	if err := writeFile(path, func(w io.Writer) error { return WriteLegislation(w, rows) }); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
