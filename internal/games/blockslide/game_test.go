package blockslide

import (
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
)

func testLevels(t *testing.T) []levels.Level {
	t.Helper()
	mk := func(id string, rows []string) levels.Level {
		b, err := core.ParseRows(rows)
		if err != nil {
			t.Fatalf("ParseRows(%s) failed: %v", id, err)
		}
		return levels.Level{ID: id, Name: id, Board: b}
	}
	return []levels.Level{
		mk("pair", pairRows),
		mk("corridor", corridorRows),
	}
}

func newTestGame(t *testing.T, w, h int, opts ...Option) *Game {
	t.Helper()
	g := New(testLevels(t), opts...)
	g.Reset(platformcore.RuntimeConfig{ScreenW: w, ScreenH: h})
	t.Cleanup(func() {
		if g.Session() != nil {
			g.Session().Close()
		}
	})
	return g
}

func step(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	return g.Step(platformcore.NewInputFrame(actions...))
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, 80, 24)

	st := g.State()
	if st.LevelID != "pair" || st.Blocks != 1 || st.Moves != 0 {
		t.Errorf("unexpected initial state: %+v", st)
	}
	if g.Cursor() != core.P(3, 4) {
		t.Errorf("cursor should start on the first block anchor, got %v", g.Cursor())
	}
	if g.ID() != "blockslide" || g.Title() != "Blockslide" {
		t.Errorf("unexpected identity %q %q", g.ID(), g.Title())
	}
}

func TestGamePushFollowsBlock(t *testing.T) {
	g := newTestGame(t, 80, 24)

	res := step(g, platformcore.ActionPushLeft)
	if !res.Changed || res.State.Moves != 1 || res.Message != "Moved Left" {
		t.Fatalf("first push: %+v", res)
	}
	if g.Cursor() != core.P(2, 4) {
		t.Errorf("cursor should follow the block, got %v", g.Cursor())
	}

	step(g, platformcore.ActionPushLeft)
	res = step(g, platformcore.ActionPushLeft)
	if res.Changed || res.Message != "Blocked" || res.State.Moves != 2 {
		t.Errorf("push into the wall: %+v", res)
	}

	res = step(g, platformcore.ActionUndo)
	if !res.Changed || res.State.Moves != 1 || !res.State.CanRedo {
		t.Errorf("undo: %+v", res)
	}
	res = step(g, platformcore.ActionRedo)
	if !res.Changed || res.State.Moves != 2 || res.State.Actions != 4 {
		t.Errorf("redo: %+v", res)
	}
	if res = step(g, platformcore.ActionRedo); res.Message != "Nothing to redo" {
		t.Errorf("expected nothing to redo, got %q", res.Message)
	}
}

func TestGameCursorClampsAndEmptyPush(t *testing.T) {
	g := newTestGame(t, 80, 24)

	for i := 0; i < 10; i++ {
		step(g, platformcore.ActionUp, platformcore.ActionLeft)
	}
	if g.Cursor() != core.P(0, 0) {
		t.Fatalf("cursor should clamp to the corner, got %v", g.Cursor())
	}

	res := step(g, platformcore.ActionPushRight)
	if res.Changed || res.Message != "No block under the cursor" {
		t.Errorf("push on a wall: %+v", res)
	}
}

func TestGameLevelCycling(t *testing.T) {
	g := newTestGame(t, 80, 24)
	step(g, platformcore.ActionPushLeft)

	if st := step(g, platformcore.ActionNextLevel).State; st.LevelID != "corridor" || st.Moves != 0 {
		t.Errorf("next level: %+v", st)
	}
	if st := step(g, platformcore.ActionNextLevel).State; st.LevelID != "pair" {
		t.Errorf("next level should wrap around, got %s", st.LevelID)
	}
	if st := step(g, platformcore.ActionPrevLevel).State; st.LevelID != "corridor" {
		t.Errorf("previous level should wrap around, got %s", st.LevelID)
	}

	step(g, platformcore.ActionPushLeft)
	res := step(g, platformcore.ActionRestart)
	if res.State.Moves != 0 || res.State.LevelID != "corridor" || res.Message != "Level restarted" {
		t.Errorf("restart: %+v", res)
	}
}

func TestGameStartLevel(t *testing.T) {
	g := newTestGame(t, 80, 24, WithStartLevel("corridor"))
	if g.State().LevelID != "corridor" {
		t.Errorf("expected to start on corridor, got %s", g.State().LevelID)
	}

	g = newTestGame(t, 80, 24, WithStartLevel("missing"))
	if g.State().LevelID != "pair" {
		t.Errorf("unknown start level should be ignored, got %s", g.State().LevelID)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 80, 24)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Blockslide", "Level: pair (1/2)", "Moves: 0", "Blocks: 1", "┌", "▸"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	// The board is centered below the HUD: 12 columns wide, 6 rows tall
	x, y := (80-12)/2, 4+(24-4-1-6)/2
	if c := screen.GetCell(x, y); c.Rune != '█' || c.Color != platformcore.ColorGray {
		t.Errorf("expected a wall at the board corner, got %+v", c)
	}
	if c := screen.GetCell(x+4*2, y+4); c.Rune != '▓' || c.Color != platformcore.PaletteColor(1) {
		t.Errorf("expected the selected block at (4,4), got %+v", c)
	}
}

func TestGameRenderBlockIDs(t *testing.T) {
	g := newTestGame(t, 80, 24, WithBlockIDs(true), WithCellWidth(2))
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	x, y := (80-12)/2, 4+(24-4-1-6)/2
	if c := screen.GetCell(x+4*2+1, y+4); c.Rune != '0' {
		t.Errorf("expected block id 0 at (4,4), got %q", c.Rune)
	}

	step(g, platformcore.ActionToggleIDs)
	g.Render(screen)
	if c := screen.GetCell(x+4*2+1, y+4); c.Rune == '0' {
		t.Error("toggling ids should go back to glyphs")
	}
}

func TestGameTooSmall(t *testing.T) {
	g := newTestGame(t, 30, 8)
	screen := platformcore.NewScreen(30, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small overlay:\n%s", screen.String())
	}
	if res := step(g, platformcore.ActionPushLeft); res.Changed {
		t.Error("input should be ignored while the window is too small")
	}

	g.Resize(80, 24)
	if res := step(g, platformcore.ActionPushLeft); !res.Changed {
		t.Error("input should work again after resizing")
	}
}

func TestGameWithoutLevels(t *testing.T) {
	g := New(nil)
	g.Reset(platformcore.DefaultConfig())

	res := step(g, platformcore.ActionPushLeft, platformcore.ActionNextLevel, platformcore.ActionUndo)
	if res.State.Blocks != 0 || res.State.Moves != 0 {
		t.Errorf("unexpected result without levels: %+v", res)
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "No levels found") {
		t.Errorf("expected no-levels overlay:\n%s", screen.String())
	}
}

func TestGameQuit(t *testing.T) {
	g := newTestGame(t, 80, 24)
	if res := step(g, platformcore.ActionQuit); !res.State.Quitting {
		t.Error("expected quitting state")
	}
}

func TestGameResume(t *testing.T) {
	g := newTestGame(t, 80, 24)

	s := newTestSession(t, corridorRows)
	s.levelID = "corridor"
	s.Move(5, 2, core.DirLeft)

	g.Resume(s)
	st := g.State()
	if st.LevelID != "corridor" || st.Moves != 1 {
		t.Errorf("unexpected state after resume: %+v", st)
	}
	if g.Session() != s {
		t.Error("resume should install the given session")
	}
}

func TestGameResumedSessionOption(t *testing.T) {
	s := newTestSession(t, corridorRows)
	s.levelID = "corridor"
	s.Move(5, 2, core.DirLeft)

	g := New(testLevels(t), WithResumedSession(s))
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	if g.Session() != s || g.State().LevelID != "corridor" {
		t.Fatalf("first reset should install the resumed session, got %+v", g.State())
	}

	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	if g.Session() == s || g.State().Moves != 0 {
		t.Error("second reset should start the level afresh")
	}
}
