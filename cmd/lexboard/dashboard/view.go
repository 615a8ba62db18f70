package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lexboard/cmd/lexboard/ui"
	"lexboard/internal/scores"
)

const (
	chartScaleMax = 10.0 // scores are 0-10
	barMaxWidth   = 40
)

// legislationHeight reserves screen rows for the legislation viewport.
func legislationHeight(total int) int {
	h := total - 24
	if h < 5 {
		h = 5
	}
	return h
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.err != nil {
		return m.styles.StatusErr.Render(fmt.Sprintf("error: %v", m.err))
	}
	if m.showAbout {
		return m.aboutText
	}

	title := m.styles.Header.Render("Innovation Scores and Legal Frameworks – " + m.selectedIndustry())

	filters := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(focusIndustry, "Industry", m.industryView()),
		" ",
		m.panel(focusJurisdictions, "Jurisdictions", m.jurisdictionView()),
	)

	chart := m.panel(-1, "Innovation Scores", m.chartView())
	legis := m.panel(focusLegislation, "Relevant Laws & Barriers", m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		filters,
		chart,
		legis,
		m.footerView(),
	)
}

// panel wraps content in a border, highlighted when focused. A focus value
// of -1 marks a display-only panel.
func (m *Model) panel(focus focusArea, title, content string) string {
	style := m.styles.Panel
	if focus >= 0 && m.focus == focus {
		style = m.styles.Focus
	}
	return style.Render(m.styles.Subtitle.Render(title) + "\n" + content)
}

func (m *Model) industryView() string {
	var b strings.Builder
	for i, ind := range m.industries {
		cursor := "  "
		line := ind
		if i == m.industryIdx {
			cursor = m.styles.Cursor.Render("> ")
			line = m.styles.Selected.Render(ind)
		}
		b.WriteString(cursor + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) jurisdictionView() string {
	var b strings.Builder
	for i, j := range m.jurisdictions {
		cursor := "  "
		if m.focus == focusJurisdictions && i == m.jurisCursor {
			cursor = m.styles.Cursor.Render("> ")
		}
		check := "[ ]"
		if j.selected {
			check = m.styles.Checked.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, j.name))
	}
	return strings.TrimRight(b.String(), "\n")
}

// chartView renders the horizontal bar chart, score-descending on a fixed
// 0-10 scale.
func (m *Model) chartView() string {
	if len(m.scored) == 0 {
		return m.styles.Muted.Render("No jurisdictions selected.")
	}

	rows := make([]scores.Scored, len(m.scored))
	copy(rows, m.scored)
	scores.SortByScore(rows)

	labelWidth := 0
	for _, r := range rows {
		if len(r.Jurisdiction) > labelWidth {
			labelWidth = len(r.Jurisdiction)
		}
	}

	var b strings.Builder
	for rank, r := range rows {
		barLen := int(r.Score / chartScaleMax * barMaxWidth)
		if barLen < 1 {
			barLen = 1
		}
		bar := lipgloss.NewStyle().Foreground(ui.BarColor(rank)).Render(strings.Repeat("█", barLen))
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			m.styles.BarLabel.Render(fmt.Sprintf("%-*s", labelWidth, r.Jurisdiction)),
			bar,
			m.styles.BarValue.Render(fmt.Sprintf("%.2f", r.Score)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// legislationView renders the legislation table for the viewport.
func (m *Model) legislationView() string {
	if m.legisErr != nil {
		return m.styles.StatusErr.Render(fmt.Sprintf("failed to load legislation: %v", m.legisErr))
	}
	if m.loading {
		return m.styles.Muted.Render("loading legislation...")
	}
	if len(m.legislation) == 0 {
		return m.styles.Muted.Render("No matching legislation found.")
	}

	header := fmt.Sprintf("%-16s %-34s %-12s %-14s %-5s %s",
		"Jurisdiction", "Law/Subprovision", "Stage", "Enforceability", "Risk", "Significance")
	var b strings.Builder
	b.WriteString(m.styles.TableHeader.Render(header) + "\n")
	for _, r := range m.legislation {
		b.WriteString(m.styles.TableRow.Render(fmt.Sprintf("%-16s %-34s %-12s %-14s %-5s %s",
			truncate(r.Jurisdiction, 16), truncate(r.Law, 34), truncate(r.InnovationStage, 12),
			truncate(r.Enforceability, 14), r.RiskScore, r.Significance)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) footerView() string {
	help := "tab: pane • ↑/↓: move • space: toggle • e: csv • p: pdf • ?: about • q: quit"
	line := m.styles.Footer.Render(help)

	if m.loading || m.exporting {
		line += " " + m.spinner.View()
	}
	if m.status != "" {
		style := m.styles.Muted
		switch m.statusKind {
		case statusOK:
			style = m.styles.StatusOK
		case statusWarn:
			style = m.styles.StatusWarn
		case statusErr:
			style = m.styles.StatusErr
		}
		line += "\n" + style.Render(m.status)
	}
	return line
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
