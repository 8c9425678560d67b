package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
)

func menuLevels(t *testing.T, n int) []levels.Level {
	t.Helper()
	lvls := make([]levels.Level, n)
	for i := range lvls {
		b, err := core.ParseRows([]string{"####", "#11#", "####"})
		if err != nil {
			t.Fatalf("ParseRows failed: %v", err)
		}
		id := string(rune('a' + i))
		lvls[i] = levels.Level{ID: id, Name: "Level " + id, Board: b}
	}
	return lvls
}

func menuUpdate(m LevelMenuModel, msg tea.Msg) LevelMenuModel {
	next, _ := m.Update(msg)
	return next.(LevelMenuModel)
}

func TestLevelMenuSelect(t *testing.T) {
	m := NewLevelMenuModel(menuLevels(t, 3), 80, 24)

	if !strings.Contains(m.View(), "Level a") || !strings.Contains(m.View(), "4x3") {
		t.Error("expected level names and sizes in the view")
	}

	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor should stop on the last level, got %d", m.cursor)
	}

	if m.Selected() != nil {
		t.Error("nothing should be selected while choosing")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LevelMenuModel)
	if cmd == nil {
		t.Error("enter should quit the menu")
	}
	if sel := m.Selected(); sel == nil || sel.LevelID != "c" {
		t.Errorf("expected level c, got %+v", sel)
	}
}

func TestLevelMenuScroll(t *testing.T) {
	m := NewLevelMenuModel(menuLevels(t, 10), 80, 12) // 3 visible rows

	for range 5 {
		m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.scrollOffset != 3 {
		t.Errorf("expected scroll offset 3, got %d", m.scrollOffset)
	}
	view := m.View()
	if !strings.Contains(view, "more above") || !strings.Contains(view, "more below") {
		t.Error("expected both scroll indicators")
	}
}

func TestLevelMenuQuitAndEmpty(t *testing.T) {
	m := NewLevelMenuModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No levels found") {
		t.Error("expected the empty message")
	}
	m = menuUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Error("enter without levels should not select")
	}
	m = menuUpdate(m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and clear the view")
	}
}

func TestThemeSwitch(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme()) })

	SetTheme(MonochromeTheme())
	m := NewLevelMenuModel(menuLevels(t, 1), 80, 24)
	if !m.theme.MenuItemActive.GetUnderline() {
		t.Error("menu should pick up the global theme")
	}
}
