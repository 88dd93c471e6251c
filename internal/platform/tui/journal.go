package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/road-rush/internal/storage"
)

// Journal layout constants
const (
	maxRuns     = 100 // Max runs to load
	chromeLines = 8   // Title, tabs, borders and help around the table
)

// JournalView selects what the journal table lists.
type JournalView int

const (
	ViewRuns   JournalView = iota // One row per run, newest first
	ViewLevels                    // Spawn pattern mix grouped by level reached
)

// JournalKeyMap defines the key bindings for the journal.
type JournalKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.SwitchView, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "runs/levels"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing the run journal.
type JournalModel struct {
	store    *storage.Store
	player   string // Only this player's runs when set
	view     JournalView
	runs     []storage.Run
	levels   []storage.LevelMix
	err      error
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	quitting bool
}

// NewJournalModel creates a journal browser and loads its data.
func NewJournalModel(store *storage.Store, player string, width, height int) JournalModel {
	m := JournalModel{
		store:  store,
		player: player,
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	return m
}

// load reads runs and level totals from the store.
func (m *JournalModel) load() {
	m.runs, m.levels, m.err = nil, nil, nil
	if m.store == nil {
		return
	}

	if m.player != "" {
		m.runs, m.err = m.store.PlayerRuns(m.player, maxRuns)
	} else {
		m.runs, m.err = m.store.RecentRuns(maxRuns)
	}
	if m.err != nil {
		return
	}
	m.levels, m.err = m.store.LevelMix()
}

// createTable builds the table for the current view and size.
func (m *JournalModel) createTable() table.Model {
	columns, rows := m.runColumns(), m.runRows()
	if m.view == ViewLevels {
		columns, rows = m.levelColumns(), m.levelRows()
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeLines, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *JournalModel) runColumns() []table.Column {
	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Player", Width: 10},
		{Title: "Preset", Width: 7},
		{Title: "Score", Width: 7},
		{Title: "Lvl", Width: 4},
		{Title: "Time", Width: 7},
		{Title: "Passed", Width: 7},
		{Title: "Hits", Width: 5},
		{Title: "S/C/D/W", Width: 14},
	}
	// Drop the player column on narrow terminals
	if m.width > 0 && m.width < 90 {
		cols = append(cols[:1], cols[2:]...)
	}
	return cols
}

func (m *JournalModel) runRows() []table.Row {
	narrow := m.width > 0 && m.width < 90
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Player,
			r.Preset,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			FormatDuration(r.Duration),
			fmt.Sprintf("%d", r.Passed),
			fmt.Sprintf("%d", r.Collisions),
			fmt.Sprintf("%d/%d/%d/%d", r.SpawnsSingle, r.SpawnsCluster, r.SpawnsDiagonal, r.SpawnsWall),
		}
		if narrow {
			row = append(row[:1], row[2:]...)
		}
		rows[i] = row
	}
	return rows
}

func (m *JournalModel) levelColumns() []table.Column {
	return []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Runs", Width: 6},
		{Title: "Avg score", Width: 10},
		{Title: "Single", Width: 8},
		{Title: "Cluster", Width: 8},
		{Title: "Diagonal", Width: 9},
		{Title: "Wall", Width: 6},
	}
}

func (m *JournalModel) levelRows() []table.Row {
	rows := make([]table.Row, len(m.levels))
	for i, l := range m.levels {
		rows[i] = table.Row{
			fmt.Sprintf("%d", l.Level),
			fmt.Sprintf("%d", l.Runs),
			fmt.Sprintf("%.0f", l.AvgScore),
			fmt.Sprintf("%d", l.SpawnsSingle),
			fmt.Sprintf("%d", l.SpawnsCluster),
			fmt.Sprintf("%d", l.SpawnsDiagonal),
			fmt.Sprintf("%d", l.SpawnsWall),
		}
	}
	return rows
}

// FormatDuration renders a run duration as m:ss.
func FormatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchView):
			if m.view == ViewRuns {
				m.view = ViewLevels
			} else {
				m.view = ViewRuns
			}
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RUN JOURNAL"
	if m.player != "" {
		title = fmt.Sprintf("RUN JOURNAL - %s", m.player)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m JournalModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	names := []string{"Runs", "By level"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if JournalView(i) == m.view {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or an explanatory message.
func (m JournalModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No journal database available.")
	case m.err != nil:
		return emptyStyle.Render("Could not read the journal:\n" + m.err.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nFinish a game to add one!")
	}
	return m.table.View()
}

// IsQuitting returns true if the user closed the journal.
func (m JournalModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunJournal runs the journal browser.
func RunJournal(store *storage.Store, player string, width, height int) error {
	p := tea.NewProgram(NewJournalModel(store, player, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
