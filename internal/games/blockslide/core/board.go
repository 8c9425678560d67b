package core

// MaxDim is the largest supported board width or height.
const MaxDim = 255

// Board is the puzzle grid.
// Cells are stored in row-major order: index = y*W + x.
type Board struct {
	W     int
	H     int
	Cells []Cell
}

// NewBoard creates a board with all cells empty.
func NewBoard(w, h int) *Board {
	return &Board{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// NewWalledBoard creates an empty board enclosed by a one-cell wall border.
func NewWalledBoard(w, h int) *Board {
	b := NewBoard(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				b.Cells[y*w+x] = Wall()
			}
		}
	}
	return b
}

func (b *Board) index(p Pos) int {
	return p.Y*b.W + p.X
}

// Pos converts a flat cell index back to a position.
func (b *Board) Pos(i int) Pos {
	return Pos{X: i % b.W, Y: i / b.W}
}

// InBounds returns true if the position is on the board.
func (b *Board) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= 0 && p.Y < b.H
}

// Get returns the cell at p. Off-board positions yield an empty cell and false.
func (b *Board) Get(p Pos) (Cell, bool) {
	if !b.InBounds(p) {
		return Empty(), false
	}
	return b.Cells[b.index(p)], true
}

// Set stores a cell at p. It returns false for off-board positions.
func (b *Board) Set(p Pos, c Cell) bool {
	if !b.InBounds(p) {
		return false
	}
	b.Cells[b.index(p)] = c
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{W: b.W, H: b.H, Cells: cells}
}

// Equal returns true if both boards have the same size and cells.
func (b *Board) Equal(o *Board) bool {
	if b.W != o.W || b.H != o.H || len(b.Cells) != len(o.Cells) {
		return false
	}
	for i := range b.Cells {
		if b.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// CountPieces returns the number of piece cells.
func (b *Board) CountPieces() int {
	n := 0
	for _, c := range b.Cells {
		if c.Kind == CellPiece {
			n++
		}
	}
	return n
}
