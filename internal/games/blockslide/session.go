// Package blockslide provides the sliding block puzzle: a play session with
// undo history on top of the move engine in core, and the Game that renders
// it for the terminal.
package blockslide

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/codec"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

// DefaultHistoryDepth is the ring size used when no option overrides it.
const DefaultHistoryDepth = 10

// ErrNoPiece is returned when a move names a cell without a piece.
var ErrNoPiece = errors.New("no piece at coordinate")

// Session is one line of play on a level: the current state, its undo ring
// and the move counters. A Session is not safe for concurrent use.
type Session struct {
	levelID  string
	resolver *core.Resolver
	history  *History
	moves    int // net moves on the current line
	actions  int // every successful move, undo and redo
	logger   *log.Logger

	depth  int
	poison bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for move and history events.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHistoryDepth sets how many states the undo ring keeps.
func WithHistoryDepth(n int) SessionOption {
	return func(s *Session) {
		s.depth = n
	}
}

// WithPoisonedScratch makes the resolver overwrite its scratch after every call.
func WithPoisonedScratch(on bool) SessionOption {
	return func(s *Session) {
		s.poison = on
	}
}

// NewSession starts a session on initial. The state is settled first, so
// blocks placed in mid-air fall before the first move. initial is not kept.
func NewSession(levelID string, initial *core.State, opts ...SessionOption) (*Session, error) {
	if initial == nil || initial.Board == nil {
		return nil, fmt.Errorf("blockslide: new session: %w", core.ErrInvalidBoard)
	}
	s := &Session{
		levelID: levelID,
		depth:   DefaultHistoryDepth,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.resolver = core.NewResolver(initial.Board.W, initial.Board.H, core.WithPoison(s.poison))
	settled, err := s.resolver.Settle(initial)
	if err != nil {
		return nil, fmt.Errorf("blockslide: new session: %w", err)
	}
	s.history = NewHistory(s.depth, settled)
	s.logger.Debug("session started", "level", levelID, "blocks", settled.BlockCount(), "depth", s.history.Depth())
	return s, nil
}

// NewLevelSession derives board and starts a session on it.
func NewLevelSession(levelID string, board *core.Board, opts ...SessionOption) (*Session, error) {
	st, err := core.Derive(board)
	if err != nil {
		return nil, fmt.Errorf("blockslide: level %s: %w", levelID, err)
	}
	return NewSession(levelID, st, opts...)
}

// LevelID returns the level the session plays.
func (s *Session) LevelID() string { return s.levelID }

// State returns the current state. Callers must not modify it.
func (s *Session) State() *core.State { return s.history.Current() }

// Moves returns the number of moves on the current line of play.
func (s *Session) Moves() int { return s.moves }

// Actions returns the number of successful moves, undos and redos.
func (s *Session) Actions() int { return s.actions }

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Move slides the block holding the piece at (x, y) one cell in dir.
// It returns false without changing anything when the move is blocked.
func (s *Session) Move(x, y int, dir core.Dir) (bool, error) {
	p := core.P(x, y)
	cur := s.State()
	if !cur.Board.InBounds(p) {
		return false, fmt.Errorf("%w: %s", core.ErrInvalidCoordinate, p)
	}
	block, ok := cur.BlockAt(p)
	if !ok {
		return false, fmt.Errorf("%w %s", ErrNoPiece, p)
	}
	return s.MoveBlock(block, dir)
}

// MoveBlock slides block one cell in dir.
func (s *Session) MoveBlock(block int, dir core.Dir) (bool, error) {
	cur := s.State()
	ok, err := s.resolver.MoveInto(s.history.Scratch(), cur, block, dir)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Debug("move blocked", "block", block, "dir", dir)
		return false, nil
	}
	s.history.Push()
	s.moves++
	s.actions++
	s.logger.Debug("moved", "block", block, "dir", dir, "moves", s.moves, "blocks", s.State().BlockCount())
	return true, nil
}

// Undo restores the previous state.
func (s *Session) Undo() bool {
	if !s.history.Undo() {
		return false
	}
	s.moves--
	s.actions++
	s.logger.Debug("undo", "moves", s.moves)
	return true
}

// Redo re-applies an undone move.
func (s *Session) Redo() bool {
	if !s.history.Redo() {
		return false
	}
	s.moves++
	s.actions++
	s.logger.Debug("redo", "moves", s.moves)
	return true
}

// Cell returns the cell at (x, y).
func (s *Session) Cell(x, y int) (core.Cell, error) {
	c, ok := s.State().Board.Get(core.P(x, y))
	if !ok {
		return core.Cell{}, fmt.Errorf("%w: %s", core.ErrInvalidCoordinate, core.P(x, y))
	}
	return c, nil
}

// Block returns block id of the current state.
func (s *Session) Block(id int) (core.Block, error) {
	st := s.State()
	if id < 0 || id >= st.BlockCount() {
		return core.Block{}, fmt.Errorf("%w: %d of %d", core.ErrInvalidBlock, id, st.BlockCount())
	}
	return st.Blocks[id], nil
}

// BlockFixed reports whether block id is fixed.
func (s *Session) BlockFixed(id int) (bool, error) {
	b, err := s.Block(id)
	return b.Fixed, err
}

// BlockCount returns the number of blocks in the current state.
func (s *Session) BlockCount() int { return s.State().BlockCount() }

// CellCoords converts a row-major cell index to a coordinate.
func (s *Session) CellCoords(index int) (core.Pos, error) {
	b := s.State().Board
	if index < 0 || index >= len(b.Cells) {
		return core.Pos{}, fmt.Errorf("%w: index %d of %d", core.ErrInvalidCoordinate, index, len(b.Cells))
	}
	return b.Pos(index), nil
}

// PieceConnectable returns the directions the piece at (x, y) may join in.
func (s *Session) PieceConnectable(x, y int) (core.ConnectMask, error) {
	return s.State().PieceConnectable(core.P(x, y))
}

// WhereConnected returns the directions in which the cell at (x, y) is drawn
// joined to its neighbour.
func (s *Session) WhereConnected(x, y int) (core.ConnectMask, error) {
	return s.State().WhereConnected(core.P(x, y))
}

// EncodedState returns the current state as base64 text.
func (s *Session) EncodedState() (string, error) {
	return codec.EncodeState(s.State())
}

// Close releases every state the session holds.
func (s *Session) Close() {
	s.history.Release()
	s.logger.Debug("session closed", "level", s.levelID, "actions", s.actions)
}
