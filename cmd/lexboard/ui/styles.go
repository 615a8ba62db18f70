// Package ui provides the visual styling for the lexboard dashboard.
// The palette mirrors the report theme: dark background, cyan headings.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Background = lipgloss.Color("#0e1117")
	Panel      = lipgloss.Color("#1e222a")
	Foreground = lipgloss.Color("#ffffff")
	Primary    = lipgloss.Color("#00ccff")
	Secondary  = lipgloss.Color("#66d9ef")
	Muted      = lipgloss.Color("#8b949e")
	Border     = lipgloss.Color("#444444")

	// Semantic colors
	Success = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
	Danger  = lipgloss.Color("#e53935")

	// Bar chart gradient, high score to low.
	BarColors = []lipgloss.Color{
		lipgloss.Color("#00ccff"),
		lipgloss.Color("#33bbee"),
		lipgloss.Color("#4da6d9"),
		lipgloss.Color("#6690c2"),
		lipgloss.Color("#7f7fb2"),
	}
)

// Styles holds all the styled components.
type Styles struct {
	// Layout
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style
	Panel  lipgloss.Style
	Focus  lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style

	// Selection
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Checked  lipgloss.Style

	// Status
	StatusOK   lipgloss.Style
	StatusWarn lipgloss.Style
	StatusErr  lipgloss.Style

	// Table
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style

	// Chart
	BarLabel lipgloss.Style
	BarValue lipgloss.Style
}

// NewStyles creates the dashboard style set.
func NewStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Foreground(Foreground),

		Header: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),

		Focus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(Muted),

		Cursor: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true),

		Checked: lipgloss.NewStyle().
			Foreground(Success),

		StatusOK: lipgloss.NewStyle().
			Foreground(Success),

		StatusWarn: lipgloss.NewStyle().
			Foreground(Warning),

		StatusErr: lipgloss.NewStyle().
			Foreground(Danger),

		TableHeader: lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true),

		TableRow: lipgloss.NewStyle().
			Foreground(Foreground),

		BarLabel: lipgloss.NewStyle().
			Foreground(Foreground),

		BarValue: lipgloss.NewStyle().
			Foreground(Muted),
	}
}

// BarColor picks the gradient color for a bar by rank (0 = highest score).
func BarColor(rank int) lipgloss.Color {
	if rank < 0 {
		rank = 0
	}
	if rank >= len(BarColors) {
		rank = len(BarColors) - 1
	}
	return BarColors[rank]
}
