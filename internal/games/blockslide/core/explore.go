package core

// explore collects the cascade needed to move block one step in dir.
//
// On success r.queue holds the moving blocks, r.visited marks the moving
// cells (r.cells lists them in visit order) and r.gravity has gained every
// moving block plus every block resting on top of a moving cell. When the
// move is blocked it returns false and r.gravity is restored to its length on
// entry.
func (r *Resolver) explore(s *State, block int, dir Dir) bool {
	if s.Blocks[block].Fixed {
		return false
	}
	b := s.Board
	n := b.W * b.H
	r.ensure(n, len(s.Blocks))

	visited := r.visited[:n]
	enqueued := r.enqueued[:len(s.Blocks)]
	clear(visited)
	clear(enqueued)
	cells := b.Cells

	mark := len(r.gravity)
	r.cells = r.cells[:0]
	r.queue = append(r.queue[:0], block)
	enqueued[block] = true

	for qi := 0; qi < len(r.queue); qi++ {
		cur := r.queue[qi]
		r.gravity = append(r.gravity, cur)

		start := b.index(s.Blocks[cur].Anchor)
		visited[start] = true
		r.stack = append(r.stack[:0], start)
		for len(r.stack) > 0 {
			i := r.stack[len(r.stack)-1]
			r.stack = r.stack[:len(r.stack)-1]
			r.cells = append(r.cells, i)
			p := b.Pos(i)

			if dir != DirUp && p.Y > 0 {
				if above := cells[i-b.W]; above.Kind == CellPiece && above.Block != cur {
					r.gravity = append(r.gravity, above.Block)
				}
			}

			next := p.Step(dir)
			if !b.InBounds(next) {
				r.gravity = r.gravity[:mark]
				return false
			}
			j := b.index(next)
			nc := cells[j]
			if s.stops(nc) {
				r.gravity = r.gravity[:mark]
				return false
			}
			if nc.Kind == CellPiece && nc.Block != cur && !visited[j] && !enqueued[nc.Block] {
				enqueued[nc.Block] = true
				r.queue = append(r.queue, nc.Block)
			}

			for _, d := range Dirs {
				q := p.Step(d)
				if !b.InBounds(q) {
					continue
				}
				k := b.index(q)
				if visited[k] || cells[k].Kind != CellPiece || cells[k].Block != cur {
					continue
				}
				visited[k] = true
				r.stack = append(r.stack, k)
			}
		}
	}
	return true
}
