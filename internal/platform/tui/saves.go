package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockslide/internal/storage"
)

// Saves browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the level list sidebar
	sidebarWidth       = 20  // Width of the level list sidebar
	maxSaves           = 100 // Max saves to load per level
	allLevels          = ""  // Filter value listing every level
)

// SavesKeyMap defines the key bindings for the saves browser.
type SavesKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Resume    key.Binding
	Delete    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SavesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.Resume, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SavesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Resume, k.Delete, k.Back, k.Quit},
	}
}

// DefaultSavesKeyMap returns default key bindings.
func DefaultSavesKeyMap() SavesKeyMap {
	return SavesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Resume: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SavesModel is the Bubble Tea model for browsing saved sessions.
type SavesModel struct {
	levels      []string // Filters: allLevels first, then level ids
	levelCursor int
	store       *storage.Store
	saves       []storage.SessionRecord
	table       table.Model
	help        help.Model
	keys        SavesKeyMap
	width       int
	height      int
	quitting    bool
	chosen      *storage.SessionRecord
	err         error
	showSidebar bool
}

// NewSavesModel creates a saves browser over the given level ids.
// startLevel preselects a level; empty lists every level.
func NewSavesModel(store *storage.Store, levelIDs []string, startLevel string, width, height int) SavesModel {
	h := help.New()
	h.ShowAll = false

	m := SavesModel{
		levels:      append([]string{allLevels}, levelIDs...),
		store:       store,
		keys:        DefaultSavesKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, id := range m.levels {
		if id == startLevel {
			m.levelCursor = i
		}
	}

	m.table = m.createTable()
	m.loadSaves()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *SavesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Level", Width: 14},
		{Title: "Moves", Width: 6},
		{Title: "Actions", Width: 8},
		{Title: "Blocks", Width: 7},
		{Title: "Saved", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// currentLevel returns the active level filter.
func (m *SavesModel) currentLevel() string {
	return m.levels[m.levelCursor]
}

// loadSaves loads saves for the current level filter.
func (m *SavesModel) loadSaves() {
	m.saves = nil
	if m.store != nil {
		saves, err := m.store.ListSessions(m.currentLevel(), maxSaves)
		m.saves, m.err = saves, err
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current saves.
func (m *SavesModel) updateTableRows() {
	rows := make([]table.Row, len(m.saves))
	for i, s := range m.saves {
		rows[i] = table.Row{
			strconv.FormatInt(s.ID, 10),
			s.LevelID,
			strconv.Itoa(s.Moves),
			strconv.Itoa(s.Actions),
			strconv.Itoa(s.Blocks),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selected returns the save under the table cursor.
func (m *SavesModel) selected() *storage.SessionRecord {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.saves) {
		return nil
	}
	return &m.saves[i]
}

// Init initializes the saves model.
func (m SavesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the saves browser.
func (m SavesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Resume):
			if rec := m.selected(); rec != nil {
				m.chosen = rec
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if rec := m.selected(); rec != nil && m.store != nil {
				m.err = m.store.DeleteSession(rec.ID)
				m.loadSaves()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextLevel):
			m.levelCursor = (m.levelCursor + 1) % len(m.levels)
			m.loadSaves()
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.levelCursor = (m.levelCursor - 1 + len(m.levels)) % len(m.levels)
			m.loadSaves()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// levelTitle returns the display name of a level filter.
func levelTitle(id string) string {
	if id == allLevels {
		return "All levels"
	}
	return id
}

// View renders the saves browser.
func (m SavesModel) View() string {
	if m.quitting || m.chosen != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	title := fmt.Sprintf("SAVED SESSIONS - %s", levelTitle(m.currentLevel()))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", levelTitle(m.currentLevel())), m.width))
		b.WriteString("\n\n")
		b.WriteString(tableRendered)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(GetTheme().HelpText.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the level filter list.
func (m SavesModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.levelCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := levelTitle(id)
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m SavesModel) renderTableContent() string {
	if len(m.saves) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No saved sessions yet.\nPress ctrl+s while playing to save one.")
	}

	return m.table.View()
}

// Chosen returns the save picked for resuming, or nil.
func (m SavesModel) Chosen() *storage.SessionRecord {
	return m.chosen
}

// RunSaves runs the saves browser and returns the save picked for resuming,
// or nil when the user left without picking one.
func RunSaves(store *storage.Store, levelIDs []string, startLevel string, width, height int) (*storage.SessionRecord, error) {
	model := NewSavesModel(store, levelIDs, startLevel, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SavesModel)
	if !ok {
		return nil, nil
	}
	return m.Chosen(), nil
}
