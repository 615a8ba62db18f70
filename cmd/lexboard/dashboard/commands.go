package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lexboard/internal/domain"
	"lexboard/internal/export"
	"lexboard/internal/report"
	"lexboard/internal/scores"
)

// legislationLoadedMsg carries a fresh legislation query result.
type legislationLoadedMsg struct {
	rows []domain.LegislationRow
	err  error
}

// exportDoneMsg reports a finished export.
type exportDoneMsg struct {
	summary string
	err     error
}

// loadLegislationCmd queries the legislation source with the current filter.
func (m *Model) loadLegislationCmd() tea.Cmd {
	f := m.filter()
	src := m.source
	return func() tea.Msg {
		rows, err := src.Legislation(context.Background(), f)
		return legislationLoadedMsg{rows: rows, err: err}
	}
}

// exportCSVCmd writes both CSVs for the current filtered view.
func (m *Model) exportCSVCmd() tea.Cmd {
	industry := m.selectedIndustry()
	dir := m.cfg.ExportDir
	scored := make([]scores.Scored, len(m.scored))
	copy(scored, m.scored)
	legis := make([]domain.LegislationRow, len(m.legislation))
	copy(legis, m.legislation)

	return func() tea.Msg {
		scoresPath, err := export.ScoresToFile(dir, industry, scored)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		legisPath, err := export.LegislationToFile(dir, industry, legis)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{summary: strings.Join([]string{scoresPath, legisPath}, ", ")}
	}
}

// exportPDFCmd renders the PDF report for the current filtered view.
func (m *Model) exportPDFCmd() tea.Cmd {
	data := report.Data{
		Title:       m.selectedIndustry(),
		Scores:      append([]scores.Scored(nil), m.scored...),
		Legislation: append([]domain.LegislationRow(nil), m.legislation...),
	}
	renderer := m.renderer
	dir := m.cfg.ExportDir

	return func() tea.Msg {
		path, err := report.Generate(context.Background(), renderer, dir, data)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("pdf: %w", err)}
		}
		return exportDoneMsg{summary: path}
	}
}
