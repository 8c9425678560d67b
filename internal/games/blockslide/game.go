package blockslide

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
)

// Game is the playable puzzle: a level list, the session on the current
// level, a cursor and the layout used to draw the board.
type Game struct {
	levels     []levels.Level
	levelIndex int
	session    *Session
	pending    *Session // installed by the next Reset instead of a fresh level
	sessOpts   []SessionOption
	logger     *log.Logger

	// Screen dimensions
	screenW int
	screenH int

	// Status
	cursor   core.Pos
	message  string
	msgColor platformcore.Color
	quitting bool
	tooSmall bool
	loadErr  error

	// Rendering config
	cellW     int // Terminal columns per board cell
	showIDs   bool
	hudHeight int

	// Calculated offsets
	boardX int
	boardY int
}

// Option configures a Game.
type Option func(*Game)

// WithCellWidth sets the number of terminal columns per board cell.
func WithCellWidth(n int) Option {
	return func(g *Game) {
		g.cellW = platformcore.Clamp(n, 1, 4)
	}
}

// WithBlockIDs starts the game showing block ids instead of cell glyphs.
func WithBlockIDs(on bool) Option {
	return func(g *Game) {
		g.showIDs = on
	}
}

// WithStartLevel selects the first level by id. Unknown ids are ignored.
func WithStartLevel(id string) Option {
	return func(g *Game) {
		for i, lvl := range g.levels {
			if lvl.ID == id {
				g.levelIndex = i
				return
			}
		}
	}
}

// WithSessionOptions passes options to every session the game starts.
func WithSessionOptions(opts ...SessionOption) Option {
	return func(g *Game) {
		g.sessOpts = append(g.sessOpts, opts...)
	}
}

// WithResumedSession makes the first Reset continue s instead of starting
// the level afresh.
func WithResumedSession(s *Session) Option {
	return func(g *Game) {
		g.pending = s
	}
}

// WithGameLogger sets the logger for level changes and session events.
func WithGameLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game over lvls.
func New(lvls []levels.Level, opts ...Option) *Game {
	g := &Game{
		levels:    lvls,
		cellW:     2,
		hudHeight: 4,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "blockslide"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockslide"
}

// Reset sizes the game for the screen and starts the current level afresh.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.quitting = false
	if s := g.pending; s != nil {
		g.pending = nil
		g.Resume(s)
		return
	}
	g.loadCurrentLevel()
}

// Resize adapts the layout to a new screen size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.calculateLayout()
}

// Session returns the session on the current level, or nil when no level loaded.
func (g *Game) Session() *Session {
	return g.session
}

// Resume replaces the current session with s, switching to its level when
// the game knows it.
func (g *Game) Resume(s *Session) {
	for i, lvl := range g.levels {
		if lvl.ID == s.LevelID() {
			g.levelIndex = i
			break
		}
	}
	g.replaceSession(s)
	g.setMessage("Restored save", platformcore.ColorGreen)
}

// SetMessage shows text on the status line until the next action.
func (g *Game) SetMessage(text string, c platformcore.Color) {
	g.setMessage(text, c)
}

// loadCurrentLevel starts a session on the level at levelIndex.
func (g *Game) loadCurrentLevel() {
	g.loadErr = nil
	if len(g.levels) == 0 {
		g.replaceSession(nil)
		return
	}

	lvl := g.levels[g.levelIndex]
	s, err := NewLevelSession(lvl.ID, lvl.Board, g.sessOpts...)
	if err != nil {
		g.loadErr = err
		g.logger.Error("cannot start level", "level", lvl.ID, "error", err)
		g.replaceSession(nil)
		return
	}
	g.logger.Info("level loaded", "level", lvl.ID, "blocks", s.BlockCount())
	g.replaceSession(s)
	g.setMessage("", platformcore.ColorDefault)
}

func (g *Game) replaceSession(s *Session) {
	if g.session != nil && g.session != s {
		g.session.Close()
	}
	g.session = s
	g.cursor = core.Pos{}
	if s != nil && s.BlockCount() > 0 {
		g.cursor = s.State().Blocks[0].Anchor
	}
	g.calculateLayout()
}

// calculateLayout centers the board below the HUD and flags small screens.
func (g *Game) calculateLayout() {
	if g.session == nil {
		g.tooSmall = false
		return
	}
	b := g.session.State().Board
	boardW := b.W * g.cellW
	area := platformcore.NewRect(0, g.hudHeight, g.screenW, g.screenH-g.hudHeight-1)

	// Board plus its frame must fit above the status line
	if boardW+2 > area.W || b.H+2 > area.H {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	r := area.CenterIn(boardW, b.H)
	g.boardX, g.boardY = r.X, r.Y
}

func (g *Game) setMessage(text string, c platformcore.Color) {
	g.message, g.msgColor = text, c
}

// Step applies one frame of input.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	var changed bool

	if input.Has(platformcore.ActionQuit) {
		g.quitting = true
		return platformcore.StepResult{State: g.State()}
	}

	switch {
	case input.Has(platformcore.ActionNextLevel):
		g.switchLevel(1)
		changed = true
	case input.Has(platformcore.ActionPrevLevel):
		g.switchLevel(-1)
		changed = true
	case input.Has(platformcore.ActionRestart):
		g.loadCurrentLevel()
		g.setMessage("Level restarted", platformcore.ColorYellow)
		changed = true
	}

	if input.Has(platformcore.ActionToggleIDs) {
		g.showIDs = !g.showIDs
	}

	if g.session == nil || g.tooSmall {
		return platformcore.StepResult{State: g.State(), Changed: changed, Message: g.message}
	}

	g.moveCursor(input)

	switch {
	case input.Has(platformcore.ActionPushLeft):
		changed = g.push(core.DirLeft) || changed
	case input.Has(platformcore.ActionPushRight):
		changed = g.push(core.DirRight) || changed
	case input.Has(platformcore.ActionUndo):
		if g.session.Undo() {
			g.setMessage("Undo", platformcore.ColorDefault)
			changed = true
		} else {
			g.setMessage("Nothing to undo", platformcore.ColorYellow)
		}
	case input.Has(platformcore.ActionRedo):
		if g.session.Redo() {
			g.setMessage("Redo", platformcore.ColorDefault)
			changed = true
		} else {
			g.setMessage("Nothing to redo", platformcore.ColorYellow)
		}
	}

	return platformcore.StepResult{State: g.State(), Changed: changed, Message: g.message}
}

func (g *Game) moveCursor(input platformcore.InputFrame) {
	b := g.session.State().Board
	x, y := g.cursor.X, g.cursor.Y
	if input.Has(platformcore.ActionLeft) {
		x--
	}
	if input.Has(platformcore.ActionRight) {
		x++
	}
	if input.Has(platformcore.ActionUp) {
		y--
	}
	if input.Has(platformcore.ActionDown) {
		y++
	}
	g.cursor = core.P(platformcore.Clamp(x, 0, b.W-1), platformcore.Clamp(y, 0, b.H-1))
}

// push slides the block under the cursor; the cursor follows the block.
func (g *Game) push(dir core.Dir) bool {
	moved, err := g.session.Move(g.cursor.X, g.cursor.Y, dir)
	switch {
	case errors.Is(err, ErrNoPiece):
		g.setMessage("No block under the cursor", platformcore.ColorYellow)
		return false
	case err != nil:
		g.setMessage(err.Error(), platformcore.ColorRed)
		return false
	case !moved:
		g.setMessage("Blocked", platformcore.ColorRed)
		return false
	}
	dx, _ := dir.Delta()
	g.cursor = g.cursor.Add(dx, 0)
	g.setMessage(fmt.Sprintf("Moved %s", dir), platformcore.ColorGreen)
	return true
}

func (g *Game) switchLevel(delta int) {
	if len(g.levels) == 0 {
		return
	}
	g.levelIndex = (g.levelIndex + delta + len(g.levels)) % len(g.levels)
	g.loadCurrentLevel()
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{Quitting: g.quitting}
	if len(g.levels) > 0 {
		st.LevelID = g.levels[g.levelIndex].ID
	}
	if g.session != nil {
		st.LevelID = g.session.LevelID()
		st.Moves = g.session.Moves()
		st.Actions = g.session.Actions()
		st.Blocks = g.session.BlockCount()
		st.CanUndo = g.session.CanUndo()
		st.CanRedo = g.session.CanRedo()
	}
	return st
}

// Cursor returns the board coordinate under the cursor.
func (g *Game) Cursor() core.Pos {
	return g.cursor
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	switch {
	case g.loadErr != nil:
		g.renderOverlay(dst, "Level failed to load", g.loadErr.Error())
		return
	case g.session == nil:
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderStatus(dst)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Blockslide"
	if g.session != nil {
		st := g.State()
		hud += " | Level: " + st.LevelID + " (" + strconv.Itoa(g.levelIndex+1) + "/" + strconv.Itoa(len(g.levels)) + ")" +
			" | Moves: " + strconv.Itoa(st.Moves) +
			" | Actions: " + strconv.Itoa(st.Actions) +
			" | Blocks: " + strconv.Itoa(st.Blocks)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	controls := " Arrows: Cursor | H/L: Push | U/Y: Undo/Redo | N/P: Level | R: Restart | I: Ids"
	dst.DrawTextWithColor(0, 2, controls, platformcore.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

var emergeGlyphs = [...]rune{
	core.DirLeft:  '←',
	core.DirRight: '→',
	core.DirUp:    '↑',
	core.DirDown:  '↓',
}

// renderBoard draws every cell cellW columns wide inside a frame.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	st := g.session.State()
	b := st.Board
	dst.DrawBox(platformcore.NewRect(g.boardX-1, g.boardY-1, b.W*g.cellW+2, b.H+2), platformcore.ColorGray)

	selected, hasSelected := st.BlockAt(g.cursor)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c, _ := b.Get(core.P(x, y))
			sx, sy := g.boardX+x*g.cellW, g.boardY+y

			switch c.Kind {
			case core.CellWall:
				dst.DrawHLine(sx, sy, g.cellW, '█', platformcore.ColorGray)
			case core.CellEmerge:
				dst.SetWithColor(sx, sy, emergeGlyphs[c.Dir&3], platformcore.PaletteColor(int(c.Color)))
			case core.CellPiece:
				g.renderPiece(dst, sx, sy, st, core.P(x, y), c, hasSelected && c.Block == selected)
			default:
				dst.SetWithColor(sx, sy, '·', platformcore.ColorGray)
			}
		}
	}

	// Cursor marker on the first column of its cell
	dst.SetWithColor(g.boardX+g.cursor.X*g.cellW, g.boardY+g.cursor.Y, '▸', platformcore.ColorBrightWhite)
}

// renderPiece fills a piece cell. The trailing columns stay blank when the
// piece is not joined to its right neighbour, so separate blocks read apart.
func (g *Game) renderPiece(dst *platformcore.Screen, sx, sy int, st *core.State, p core.Pos, c core.Cell, selected bool) {
	color := platformcore.PaletteColor(int(c.Color))
	glyph := '█'
	switch {
	case selected:
		glyph = '▓'
	case st.Blocks[c.Block].Fixed:
		glyph = '▒'
	}

	if g.showIDs {
		id := strconv.Itoa(c.Block)
		if len(id) > g.cellW {
			id = id[len(id)-g.cellW:]
		}
		dst.DrawTextWithColor(sx, sy, fmt.Sprintf("%*s", g.cellW, id), color)
		return
	}

	joined, _ := st.WhereConnected(p)
	dst.SetWithColor(sx, sy, glyph, color)
	for i := 1; i < g.cellW; i++ {
		if joined.Has(core.DirRight) || i < g.cellW-1 {
			dst.SetWithColor(sx+i, sy, glyph, color)
		}
	}
}

// renderStatus draws the message line under the board frame.
func (g *Game) renderStatus(dst *platformcore.Screen) {
	if g.message == "" {
		return
	}
	b := g.session.State().Board
	dst.DrawTextCentered(g.boardY+b.H+1, g.message, g.msgColor)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	area := platformcore.NewRect(0, g.hudHeight, dst.Width(), dst.Height()-g.hudHeight)
	box := area.CenterIn(w, 4)
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorYellow)
	dst.DrawTextCentered(box.Y+1, title, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+2, subtitle, platformcore.ColorWhite)
}
