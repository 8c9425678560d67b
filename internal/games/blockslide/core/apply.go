package core

// apply writes src into dst with every cell marked in r.visited shifted one
// step in dir. It must follow a successful explore of src.
//
// dst is cleared first and filled in a single row-major pass that only writes
// into empty cells; explore guarantees every target of a moving cell is either
// empty or vacated by another moving cell, so write order does not matter.
// Anchors of the moving blocks shift with them.
func (r *Resolver) apply(dst, src *State, dir Dir) {
	b := src.Board
	dx, dy := dir.Delta()
	shift := dy*b.W + dx

	dst.prepare(b.W, b.H)
	dst.Blocks = append(dst.Blocks[:0], src.Blocks...)

	out := dst.Board.Cells
	for i, c := range b.Cells {
		if c.Kind == CellEmpty {
			continue
		}
		t := i
		if r.visited[i] {
			t = i + shift
		}
		if out[t].Kind == CellEmpty {
			out[t] = c
		}
	}
	for _, id := range r.queue {
		dst.Blocks[id].Anchor = src.Blocks[id].Anchor.Add(dx, dy)
	}
}
