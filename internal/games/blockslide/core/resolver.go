package core

import "fmt"

// Resolver owns the scratch buffers used to derive states and resolve moves.
//
// A Resolver serves one caller at a time: calling into a Resolver that is
// already running an operation panics. Separate Resolvers may be used from
// separate goroutines.
type Resolver struct {
	poison bool
	busy   bool

	visited  []bool // per cell: part of the current traversal
	stack    []int  // cell index work stack
	cells    []int  // cells visited by the last explore, in visit order
	queue    []int  // cascade block queue
	enqueued []bool // per block: already in queue
	gravity  []int  // gravity candidate stack
	labels   []int  // per cell: block id assigned by the current flood

	front *State
	back  *State
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPoison makes the resolver overwrite its scratch with sentinel values
// whenever a public entry point returns.
func WithPoison(on bool) Option {
	return func(r *Resolver) {
		r.poison = on
	}
}

// NewResolver creates a resolver with scratch sized for a w×h board.
// Larger boards grow the scratch on demand.
func NewResolver(w, h int, opts ...Option) *Resolver {
	r := &Resolver{
		front: &State{},
		back:  &State{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if w > 0 && h > 0 {
		r.ensure(w*h, 0)
	}
	return r
}

// Cascade describes what an explore found.
type Cascade struct {
	Cells             []Pos // cells that shift, in visit order
	Blocks            []int // blocks that shift, in discovery order
	GravityCandidates []int // blocks resting above explored cells
}

// Derive runs the block finder on b and returns the first state.
// b itself is not modified.
func (r *Resolver) Derive(b *Board) (*State, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	r.acquire()
	defer r.release()

	s := &State{}
	r.derive(s, b)
	return s, nil
}

// Move slides block in a horizontal direction and settles the result.
// It returns the new state and true, or nil and false when the move is
// blocked. s is never modified.
func (r *Resolver) Move(s *State, block int, dir Dir) (*State, bool, error) {
	if err := checkMoveDir(s, block, dir); err != nil {
		return nil, false, err
	}
	r.acquire()
	defer r.release()

	if !r.explore(s, block, dir) {
		return nil, false, nil
	}
	dst := &State{}
	r.settle(dst, s, dir)
	return dst, true, nil
}

// MoveInto is Move writing into a caller-owned destination.
// A nil dst performs a dry run. dst is left untouched when the move is
// blocked. dst and src must be distinct states.
func (r *Resolver) MoveInto(dst, src *State, block int, dir Dir) (bool, error) {
	if err := checkMoveDir(src, block, dir); err != nil {
		return false, err
	}
	if dst != nil && (dst == src || (dst.Board != nil && dst.Board == src.Board)) {
		panic("core: move destination aliases its source")
	}
	r.acquire()
	defer r.release()

	if !r.explore(src, block, dir) {
		return false, nil
	}
	if dst == nil {
		return true, nil
	}
	r.settle(dst, src, dir)
	return true, nil
}

// CanMove reports whether block could move one step in dir.
// Any direction is accepted.
func (r *Resolver) CanMove(s *State, block int, dir Dir) (bool, error) {
	if err := checkMove(s, block, dir); err != nil {
		return false, err
	}
	r.acquire()
	defer r.release()

	return r.explore(s, block, dir), nil
}

// Explore runs the collision explorer for block in dir and reports the
// cascade it would move. The bool is false when the move is blocked, in which
// case the cascade is empty.
func (r *Resolver) Explore(s *State, block int, dir Dir) (Cascade, bool, error) {
	if err := checkMove(s, block, dir); err != nil {
		return Cascade{}, false, err
	}
	r.acquire()
	defer r.release()

	if !r.explore(s, block, dir) {
		return Cascade{}, false, nil
	}
	c := Cascade{
		Cells:             make([]Pos, len(r.cells)),
		Blocks:            append([]int(nil), r.queue...),
		GravityCandidates: append([]int(nil), r.gravity...),
	}
	for i, idx := range r.cells {
		c.Cells[i] = s.Board.Pos(idx)
	}
	return c, true, nil
}

// Settled reports whether no block in s can fall any further.
func (r *Resolver) Settled(s *State) bool {
	if s == nil || s.Board == nil {
		return true
	}
	r.acquire()
	defer r.release()

	for id := range s.Blocks {
		if r.explore(s, id, DirDown) {
			return false
		}
	}
	return true
}

// Derive runs the block finder with a throwaway resolver.
func Derive(b *Board) (*State, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return NewResolver(b.W, b.H).Derive(b)
}

func checkMoveDir(s *State, block int, dir Dir) error {
	if err := checkMove(s, block, dir); err != nil {
		return err
	}
	if !dir.Horizontal() {
		return fmt.Errorf("%w: moves must be horizontal, got %s", ErrInvalidDirection, dir)
	}
	return nil
}

func (r *Resolver) acquire() {
	if r.busy {
		panic("core: resolver is already in use")
	}
	r.busy = true
	r.stack, r.cells, r.queue, r.gravity = r.stack[:0], r.cells[:0], r.queue[:0], r.gravity[:0]
}

func (r *Resolver) release() {
	if r.poison {
		r.poisonScratch()
	}
	r.busy = false
}

// ensure grows the scratch to hold n cells and blocks blocks.
func (r *Resolver) ensure(n, blocks int) {
	if len(r.visited) < n {
		r.visited = make([]bool, n)
		r.labels = make([]int, n)
	}
	if len(r.enqueued) < blocks {
		r.enqueued = make([]bool, blocks)
	}
}

const poisonIndex = -0x5a5a5a

var poisonCell = Cell{Kind: 0xff, Color: -1, Block: poisonIndex, Dir: 0xff}

// poisonScratch fills every scratch buffer with sentinels so that stale
// reuse shows up as an out-of-range index or an invalid cell.
func (r *Resolver) poisonScratch() {
	for i := range r.visited {
		r.visited[i] = true
	}
	for i := range r.enqueued {
		r.enqueued[i] = true
	}
	for i := range r.labels {
		r.labels[i] = poisonIndex
	}
	for _, buf := range [][]int{r.stack, r.cells, r.queue, r.gravity} {
		buf = buf[:cap(buf)]
		for i := range buf {
			buf[i] = poisonIndex
		}
	}
	r.stack, r.cells, r.queue, r.gravity = r.stack[:0], r.cells[:0], r.queue[:0], r.gravity[:0]
	for _, s := range []*State{r.front, r.back} {
		if s.Board == nil {
			continue
		}
		for i := range s.Board.Cells {
			s.Board.Cells[i] = poisonCell
		}
		for i := range s.Blocks {
			s.Blocks[i] = Block{Anchor: P(poisonIndex, poisonIndex), Fixed: true}
		}
	}
}
