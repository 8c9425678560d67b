package core

// reconcile rebuilds the block partition of src into dst.
//
// Neighbouring pieces join when they connect by color and mask or when they
// already share a block id, so blocks that moved together stay together and
// touching blocks may merge. Blocks get contiguous ids in row-major discovery
// order, a true minimal anchor, and the fixed flag of any block they absorbed.
func (r *Resolver) reconcile(dst, src *State) {
	b := src.Board
	n := b.W * b.H
	r.ensure(n, len(src.Blocks))

	dst.prepare(b.W, b.H)
	copy(dst.Board.Cells, b.Cells)
	dst.Blocks = dst.Blocks[:0]

	labels := r.labels[:n]
	for i := range labels {
		labels[i] = -1
	}
	cells := b.Cells
	out := dst.Board.Cells

	for start := 0; start < n; start++ {
		if cells[start].Kind != CellPiece || labels[start] >= 0 {
			continue
		}
		id := len(dst.Blocks)
		anchor := start
		fixed := false

		labels[start] = id
		r.stack = append(r.stack[:0], start)
		for len(r.stack) > 0 {
			i := r.stack[len(r.stack)-1]
			r.stack = r.stack[:len(r.stack)-1]

			c := cells[i]
			fixed = fixed || src.Blocks[c.Block].Fixed
			out[i].Block = id
			if i < anchor {
				anchor = i
			}

			p := b.Pos(i)
			for _, d := range Dirs {
				q := p.Step(d)
				if !b.InBounds(q) {
					continue
				}
				j := b.index(q)
				if labels[j] >= 0 || cells[j].Kind != CellPiece {
					continue
				}
				if cells[j].Block != c.Block && !canConnect(c, cells[j], d) {
					continue
				}
				labels[j] = id
				r.stack = append(r.stack, j)
			}
		}

		dst.Blocks = append(dst.Blocks, Block{Anchor: b.Pos(anchor), Fixed: fixed})
	}
}
