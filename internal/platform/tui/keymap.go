package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockslide/internal/core"
)

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PushLeft  key.Binding
	PushRight key.Binding
	Undo      key.Binding
	Redo      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Restart   key.Binding
	ToggleIDs key.Binding
	Save      key.Binding
	Snapshot  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PushLeft, k.PushRight, k.Undo, k.Redo, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PushLeft, k.PushRight, k.Undo, k.Redo},
		{k.NextLevel, k.PrevLevel, k.Restart, k.ToggleIDs},
		{k.Save, k.Snapshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "cursor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "cursor down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "cursor right"),
		),
		PushLeft: key.NewBinding(
			key.WithKeys("shift+left", "h"),
			key.WithHelp("h", "push left"),
		),
		PushRight: key.NewBinding(
			key.WithKeys("shift+right", "l"),
			key.WithHelp("l", "push right"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("y", "ctrl+r"),
			key.WithHelp("y", "redo"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("p", "["),
			key.WithHelp("p", "prev level"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		ToggleIDs: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "block ids"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
// Keys handled by the platform itself (save, help, screenshot) map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Quit, core.ActionQuit},
		{k.PushLeft, core.ActionPushLeft},
		{k.PushRight, core.ActionPushRight},
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Undo, core.ActionUndo},
		{k.Redo, core.ActionRedo},
		{k.NextLevel, core.ActionNextLevel},
		{k.PrevLevel, core.ActionPrevLevel},
		{k.Restart, core.ActionRestart},
		{k.ToggleIDs, core.ActionToggleIDs},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}
