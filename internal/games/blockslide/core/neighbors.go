package core

// joined reports whether two neighbouring cells should be drawn as one
// shape: pieces of the same block, any two cells of the same kind, or a
// wall next to an emerge cell.
func (s *State) joined(a, b Cell) bool {
	if a.Kind == CellPiece && b.Kind == CellPiece {
		return a.Block == b.Block
	}
	if a.Kind == b.Kind {
		return true
	}
	solid := func(k CellKind) bool { return k == CellWall || k == CellEmerge }
	return solid(a.Kind) && solid(b.Kind)
}

// WhereConnected returns the directions in which the cell at p is drawn as
// joined to its neighbour. Off-board neighbours never join.
func (s *State) WhereConnected(p Pos) (ConnectMask, error) {
	c, ok := s.Board.Get(p)
	if !ok {
		return 0, ErrInvalidCoordinate
	}
	var m ConnectMask
	for _, d := range Dirs {
		n, ok := s.Board.Get(p.Step(d))
		if ok && s.joined(c, n) {
			m |= d.Bit()
		}
	}
	return m, nil
}

// PieceConnectable returns the directions in which the piece at p accepts
// connections. Non-piece cells accept none.
func (s *State) PieceConnectable(p Pos) (ConnectMask, error) {
	c, ok := s.Board.Get(p)
	if !ok {
		return 0, ErrInvalidCoordinate
	}
	if c.Kind != CellPiece {
		return ConnectNone, nil
	}
	return c.Connectable(), nil
}
