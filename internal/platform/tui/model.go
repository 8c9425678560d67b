package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/storage"
)

// Model is the Bubble Tea model for playing blockslide.
type Model struct {
	game       *blockslide.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case saving is disabled.
func NewModel(game *blockslide.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return &Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		logger:     logger,
	}
}

// Init starts the tick loop. The game must already be Reset.
func (m *Model) Init() tea.Cmd {
	m.gameState = m.game.State()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Platform keys
	switch {
	case key.Matches(msg, m.keys.Save):
		m.saveSession()
		return m, nil
	case key.Matches(msg, m.keys.Snapshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		if action == core.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The session is kept.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeScreen()
	return m, nil
}

// resizeScreen leaves room under the game for the help view.
func (m *Model) resizeScreen() {
	helpLines := lipgloss.Height(m.help.View(m.keys))
	h := max(m.config.ScreenH-helpLines, 0)
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

// handleTick applies the input collected since the previous tick.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.inputFrame.Empty() {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.inputFrame.Clear()
		if m.gameState.Quitting {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveSession stores the current session and reports the outcome on the status line.
func (m *Model) saveSession() {
	s := m.game.Session()
	switch {
	case m.store == nil:
		m.game.SetMessage("Saving is disabled", core.ColorYellow)
		return
	case s == nil:
		return
	}

	id, err := s.Save(m.store)
	if err != nil {
		m.logger.Error("save failed", "level", s.LevelID(), "error", err)
		m.game.SetMessage("Save failed", core.ColorRed)
		return
	}
	m.game.SetMessage(fmt.Sprintf("Saved #%d", id), core.ColorGreen)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("no home directory for screenshots", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockslide", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.gameState.LevelID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot write screenshot", "error", err)
		return
	}
	m.game.SetMessage("Screenshot saved", core.ColorGreen)
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + GetTheme().HelpText.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given game.
func Run(game *blockslide.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	game.Reset(cfg)
	model := NewModel(game, store, cfg, logger)
	model.resizeScreen()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
