package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
)

// LevelSelection holds the user's selection from the level menu.
type LevelSelection struct {
	LevelID string
}

// MenuKeyMap defines the key bindings for the level menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// levelItem is one row of the menu.
type levelItem struct {
	id     string
	name   string
	detail string
}

// LevelMenuModel is the level picker.
type LevelMenuModel struct {
	cursor       int
	width        int
	height       int
	keys         MenuKeyMap
	items        []levelItem
	selection    LevelSelection
	choosing     bool
	quitting     bool
	scrollOffset int
	theme        Theme
}

// NewLevelMenuModel creates a new level selection model.
func NewLevelMenuModel(lvls []levels.Level, width, height int) LevelMenuModel {
	items := make([]levelItem, len(lvls))
	for i, lvl := range lvls {
		items[i] = levelItem{
			id:     lvl.ID,
			name:   lvl.Name,
			detail: fmt.Sprintf("%dx%d", lvl.Board.W, lvl.Board.H),
		}
	}

	return LevelMenuModel{
		width:    width,
		height:   height,
		keys:     DefaultMenuKeyMap(),
		items:    items,
		choosing: true,
		theme:    GetTheme(),
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.items) == 0 {
			return m, nil
		}
		m.choosing = false
		m.selection = LevelSelection{LevelID: m.items[m.cursor].id}
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems returns how many rows fit between header and footer.
func (m LevelMenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	title := m.theme.MenuTitle.Render("B L O C K S L I D E")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No levels found"), m.width))
		b.WriteString("\n")
		return b.String()
	}

	subtitle := m.theme.MenuDescription.Render("Select a level:")
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	// Level list
	endIdx := min(m.scrollOffset+m.visibleItems(), len(m.items))
	for i := m.scrollOffset; i < endIdx; i++ {
		item := m.items[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		levelNum := fmt.Sprintf("%2d. ", i+1)
		line := style.Render(cursor+levelNum+item.name) + " " + m.theme.MenuItemDetail.Render(item.detail)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Scroll indicators
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if endIdx < len(m.items) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := m.theme.HelpText.Render("Up/Down: Navigate  |  Enter: Play  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// RunLevelSelector runs the level selection and returns the selection,
// or nil when the user quit.
func RunLevelSelector(lvls []levels.Level, width, height int) (*LevelSelection, error) {
	model := NewLevelMenuModel(lvls, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}

	return m.Selected(), nil
}
