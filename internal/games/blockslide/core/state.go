package core

// Block is a set of connected pieces that moves as one.
type Block struct {
	Anchor Pos  // row-major minimum of the block's cells
	Fixed  bool // fixed blocks never move
}

// State is a board together with its block table.
// Every piece cell's Block field indexes Blocks. States are produced by
// Derive and by successful moves; they are never partially written.
type State struct {
	Board  *Board
	Blocks []Block
}

// Size returns the encoded size of the state in bytes.
// It depends on the block count, so states of one board may differ in size.
func (s *State) Size() int {
	return 2 + cellBytes*s.Board.W*s.Board.H + 2 + blockBytes*len(s.Blocks)
}

// BlockCount returns the number of blocks.
func (s *State) BlockCount() int {
	return len(s.Blocks)
}

// BlockAt returns the block id of the piece at p.
func (s *State) BlockAt(p Pos) (int, bool) {
	c, ok := s.Board.Get(p)
	if !ok || c.Kind != CellPiece {
		return -1, false
	}
	return c.Block, true
}

// BlockCells returns the positions of a block's cells in row-major order.
func (s *State) BlockCells(id int) []Pos {
	var out []Pos
	for i, c := range s.Board.Cells {
		if c.Kind == CellPiece && c.Block == id {
			out = append(out, s.Board.Pos(i))
		}
	}
	return out
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	blocks := make([]Block, len(s.Blocks))
	copy(blocks, s.Blocks)
	return &State{Board: s.Board.Clone(), Blocks: blocks}
}

// Equal returns true if both states hold identical boards and block tables.
func (s *State) Equal(o *State) bool {
	if len(s.Blocks) != len(o.Blocks) {
		return false
	}
	for i := range s.Blocks {
		if s.Blocks[i] != o.Blocks[i] {
			return false
		}
	}
	return s.Board.Equal(o.Board)
}

// Release drops the state's storage. The state must not be used afterwards.
func (s *State) Release() {
	if s == nil {
		return
	}
	if s.Board != nil {
		s.Board.Cells = nil
	}
	s.Board = nil
	s.Blocks = nil
}

// prepare sizes s for a w×h board with every cell empty, reusing storage.
func (s *State) prepare(w, h int) {
	if s.Board == nil {
		s.Board = &Board{}
	}
	n := w * h
	s.Board.W, s.Board.H = w, h
	if cap(s.Board.Cells) < n {
		s.Board.Cells = make([]Cell, n)
	} else {
		s.Board.Cells = s.Board.Cells[:n]
		clear(s.Board.Cells)
	}
}

// copyFrom makes s an exact copy of o, reusing storage.
func (s *State) copyFrom(o *State) {
	s.prepare(o.Board.W, o.Board.H)
	copy(s.Board.Cells, o.Board.Cells)
	s.Blocks = append(s.Blocks[:0], o.Blocks...)
}
