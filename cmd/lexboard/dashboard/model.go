// Package dashboard implements the interactive TUI: the innovation score
// table with industry/jurisdiction filters, a bar chart, the matching
// legislation, and CSV/PDF export. The functionality is split across files:
//   - model.go: Types, Init, Update loop (this file)
//   - view.go: Rendering functions
//   - commands.go: Async load/export commands
package dashboard

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"lexboard/cmd/lexboard/ui"
	"lexboard/internal/config"
	"lexboard/internal/domain"
	"lexboard/internal/legislation"
	"lexboard/internal/report"
	"lexboard/internal/scores"
	"lexboard/internal/store"
)

// focusArea determines which pane receives key input.
type focusArea int

const (
	focusIndustry focusArea = iota
	focusJurisdictions
	focusLegislation
)

// statusKind colors the status line.
type statusKind int

const (
	statusNone statusKind = iota
	statusOK
	statusWarn
	statusErr
)

// jurisdictionItem is one entry in the multi-select list.
type jurisdictionItem struct {
	name     string
	selected bool
}

// Model is the main model for the dashboard.
type Model struct {
	cfg      *config.Config
	source   legislation.Source
	renderer report.Renderer

	styles   ui.Styles
	spinner  spinner.Model
	viewport viewport.Model

	focus         focusArea
	industries    []string // All Industries + the five sectors
	industryIdx   int
	jurisdictions []jurisdictionItem
	jurisCursor   int

	scored      []scores.Scored // table order, current filter applied
	legislation []domain.LegislationRow
	legisErr    error
	loading     bool
	exporting   bool

	status     string
	statusKind statusKind

	showAbout bool
	aboutText string

	width  int
	height int
	ready  bool
	err    error
}

// New builds the dashboard model from configuration. The legislation source
// is the workbook when it exists (the spreadsheet-backed view), otherwise
// the imported database.
func New(cfg *config.Config) (*Model, error) {
	var source legislation.Source
	if _, err := os.Stat(cfg.WorkbookPath); err == nil {
		source = &legislation.WorkbookSource{Path: cfg.WorkbookPath}
	} else {
		st, err := store.Open(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("no workbook at %s and no database: %w", cfg.WorkbookPath, err)
		}
		source = &legislation.StoreSource{Store: st}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		cfg:        cfg,
		source:     source,
		renderer:   report.NewWkhtmltopdf(cfg.WkhtmltopdfPath),
		styles:     ui.NewStyles(),
		spinner:    sp,
		industries: append([]string{domain.AllIndustries}, domain.Industries...),
	}
	for _, j := range domain.Jurisdictions {
		m.jurisdictions = append(m.jurisdictions, jurisdictionItem{name: j, selected: true})
	}
	m.aboutText = renderAbout()
	m.refreshScores()
	return m, nil
}

// Run launches the dashboard program.
func Run(cfg *config.Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadLegislationCmd())
}

// selectedIndustry returns the industry currently driving the view.
func (m *Model) selectedIndustry() string {
	return m.industries[m.industryIdx]
}

// selectedJurisdictions returns the checked jurisdiction names, in order.
func (m *Model) selectedJurisdictions() []string {
	var out []string
	for _, j := range m.jurisdictions {
		if j.selected {
			out = append(out, j.name)
		}
	}
	return out
}

// filter is the current legislation filter.
func (m *Model) filter() legislation.Filter {
	return legislation.Filter{
		Industry:      m.selectedIndustry(),
		Jurisdictions: m.selectedJurisdictions(),
	}
}

// refreshScores recomputes the filtered score table. The score table is
// static, so this never fails for the fixed industry list.
func (m *Model) refreshScores() {
	scored, err := scores.Filter(m.selectedIndustry(), m.selectedJurisdictions())
	if err != nil {
		m.err = err
		return
	}
	m.scored = scored
}

// refilter recomputes everything after a filter change.
func (m *Model) refilter() tea.Cmd {
	m.refreshScores()
	m.loading = true
	return m.loadLegislationCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width-4, legislationHeight(msg.Height))
		m.ready = true
		m.viewport.SetContent(m.legislationView())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading && !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case legislationLoadedMsg:
		m.loading = false
		m.legislation = msg.rows
		m.legisErr = msg.err
		if m.ready {
			m.viewport.SetContent(m.legislationView())
		}
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("export failed: %v", msg.err), statusErr)
		} else {
			m.setStatus("exported "+msg.summary, statusOK)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// About overlay swallows every key except quit.
	if m.showAbout {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		default:
			m.showAbout = false
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showAbout = true
		return m, nil

	case "tab":
		m.focus = (m.focus + 1) % 3
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + 2) % 3
		return m, nil

	case "up", "k":
		return m.moveCursor(-1)

	case "down", "j":
		return m.moveCursor(1)

	case " ", "enter":
		return m.toggle()

	case "e":
		if m.exporting {
			return m, nil
		}
		m.exporting = true
		m.setStatus("exporting CSV...", statusNone)
		return m, tea.Batch(m.spinner.Tick, m.exportCSVCmd())

	case "p":
		if m.exporting {
			return m, nil
		}
		if !m.renderer.Available() {
			m.setStatus("PDF export disabled: wkhtmltopdf not found at "+m.cfg.WkhtmltopdfPath, statusWarn)
			return m, nil
		}
		m.exporting = true
		m.setStatus("rendering PDF...", statusNone)
		return m, tea.Batch(m.spinner.Tick, m.exportPDFCmd())
	}

	if m.focus == focusLegislation {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusIndustry:
		next := m.industryIdx + delta
		if next >= 0 && next < len(m.industries) {
			m.industryIdx = next
			return m, m.refilter()
		}
	case focusJurisdictions:
		next := m.jurisCursor + delta
		if next >= 0 && next < len(m.jurisdictions) {
			m.jurisCursor = next
		}
	case focusLegislation:
		if delta < 0 {
			m.viewport.LineUp(1)
		} else {
			m.viewport.LineDown(1)
		}
	}
	return m, nil
}

func (m *Model) toggle() (tea.Model, tea.Cmd) {
	if m.focus != focusJurisdictions {
		return m, nil
	}
	m.jurisdictions[m.jurisCursor].selected = !m.jurisdictions[m.jurisCursor].selected
	return m, m.refilter()
}

func (m *Model) setStatus(msg string, kind statusKind) {
	m.status = msg
	m.statusKind = kind
}

// renderAbout produces the glamour-rendered overlay text.
func renderAbout() string {
	const md = `# Innovation Scores and Legal Frameworks

What this dashboard shows:

- **Jurisdiction-specific innovation scores** (0-10, precomputed)
- **Relevant laws & barriers** by jurisdiction and industry
- Export the filtered view as CSV (` + "`e`" + `) or a PDF report (` + "`p`" + `)

Keys: **tab** switch pane, **up/down** move, **space** toggle, **q** quit.
`
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return out
}
