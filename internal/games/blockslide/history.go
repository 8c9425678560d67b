package blockslide

import "github.com/vovakirdan/blockslide/internal/games/blockslide/core"

// History is a fixed ring of states. The slot at head is the current state;
// up to depth-1 earlier states can be restored with Undo, and states undone
// since the last push can be restored with Redo.
type History struct {
	ring  []*core.State
	spare *core.State // next move is written here, then swapped in
	head  int
	undo  int
	redo  int
}

// NewHistory creates a ring of depth slots holding initial as the current state.
// Depths below one are raised to one. The history owns initial from now on.
func NewHistory(depth int, initial *core.State) *History {
	depth = max(depth, 1)
	h := &History{
		ring:  make([]*core.State, depth),
		spare: &core.State{},
	}
	h.ring[0] = initial
	return h
}

// Depth returns the number of slots in the ring.
func (h *History) Depth() int {
	return len(h.ring)
}

// Current returns the current state. Callers must not modify it.
func (h *History) Current() *core.State {
	return h.ring[h.head]
}

// Scratch returns the state the next successful move should be written into.
func (h *History) Scratch() *core.State {
	return h.spare
}

// Push makes the scratch state current. The oldest state is dropped when the
// ring is full and every redo step is forgotten.
func (h *History) Push() {
	next := (h.head + 1) % len(h.ring)
	h.ring[next], h.spare = h.spare, h.ring[next]
	if h.spare == nil {
		h.spare = &core.State{}
	}
	h.head = next
	h.redo = 0
	h.undo = min(h.undo+1, len(h.ring)-1)
}

// Undo steps back one state. It returns false when nothing is retained.
func (h *History) Undo() bool {
	if h.undo == 0 {
		return false
	}
	h.head = (h.head - 1 + len(h.ring)) % len(h.ring)
	h.undo--
	h.redo++
	return true
}

// Redo steps forward over an undone state.
func (h *History) Redo() bool {
	if h.redo == 0 {
		return false
	}
	h.head = (h.head + 1) % len(h.ring)
	h.redo--
	h.undo++
	return true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.undo > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.redo > 0 }

// Release drops the storage of every state in the ring.
func (h *History) Release() {
	for i, s := range h.ring {
		s.Release()
		h.ring[i] = nil
	}
	h.spare.Release()
	h.undo, h.redo = 0, 0
}
