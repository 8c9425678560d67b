package core

// derive labels every piece of b with a block id and builds the block table
// into dst. Blocks are numbered in row-major discovery order and each anchor
// is the flood start, which is the block's row-major minimum.
func (r *Resolver) derive(dst *State, b *Board) {
	n := b.W * b.H
	r.ensure(n, 0)

	dst.prepare(b.W, b.H)
	copy(dst.Board.Cells, b.Cells)
	dst.Blocks = dst.Blocks[:0]

	visited := r.visited[:n]
	clear(visited)
	cells := dst.Board.Cells

	for start := 0; start < n; start++ {
		if cells[start].Kind != CellPiece || visited[start] {
			continue
		}
		id := len(dst.Blocks)
		fixed := false

		visited[start] = true
		r.stack = append(r.stack[:0], start)
		for len(r.stack) > 0 {
			i := r.stack[len(r.stack)-1]
			r.stack = r.stack[:len(r.stack)-1]

			c := &cells[i]
			fixed = fixed || c.Fixed
			c.Fixed = false
			c.Block = id

			p := b.Pos(i)
			for _, d := range Dirs {
				q := p.Step(d)
				if !b.InBounds(q) {
					continue
				}
				j := b.index(q)
				if visited[j] || !canConnect(*c, cells[j], d) {
					continue
				}
				visited[j] = true
				r.stack = append(r.stack, j)
			}
		}

		dst.Blocks = append(dst.Blocks, Block{Anchor: b.Pos(start), Fixed: fixed})
	}
}
