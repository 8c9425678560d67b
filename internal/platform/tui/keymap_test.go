package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockslide/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runeKey('w'), core.ActionUp},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"shift left", tea.KeyMsg{Type: tea.KeyShiftLeft}, core.ActionPushLeft},
		{"h", runeKey('h'), core.ActionPushLeft},
		{"l", runeKey('l'), core.ActionPushRight},
		{"u", runeKey('u'), core.ActionUndo},
		{"y", runeKey('y'), core.ActionRedo},
		{"n", runeKey('n'), core.ActionNextLevel},
		{"r", runeKey('r'), core.ActionRestart},
		{"i", runeKey('i'), core.ActionToggleIDs},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"ctrl+s is platform", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%s) = %s, expected %s", tt.msg, got, tt.want)
			}
		})
	}
}

func TestKeyMapHelpCoversBindings(t *testing.T) {
	km := DefaultKeyMap()
	n := 0
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != 16 {
		t.Errorf("full help lists %d bindings, expected 16", n)
	}
	for _, b := range km.ShortHelp() {
		if b.Help().Key == "" {
			t.Error("short help binding without a key label")
		}
	}
}
