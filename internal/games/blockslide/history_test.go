package blockslide

import (
	"testing"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

// tagged returns a 1x1 state whose only block anchor encodes n.
func tagged(n int) *core.State {
	return &core.State{Board: core.NewBoard(1, 1), Blocks: []core.Block{{Anchor: core.P(n, 0)}}}
}

func pushTagged(h *History, n int) {
	s := h.Scratch()
	s.Board = core.NewBoard(1, 1)
	s.Blocks = []core.Block{{Anchor: core.P(n, 0)}}
	h.Push()
}

func currentTag(h *History) int {
	return h.Current().Blocks[0].Anchor.X
}

func TestHistoryRing(t *testing.T) {
	tests := []struct {
		name      string
		depth     int
		pushes    int
		wantUndos int
		wantFirst int // tag of the oldest reachable state
	}{
		{"not full", 5, 2, 2, 0},
		{"exactly full", 3, 2, 2, 0},
		{"wrapped", 3, 7, 2, 5},
		{"single slot", 1, 4, 0, 4},
		{"zero depth", 0, 2, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.depth, tagged(0))
			for i := 1; i <= tt.pushes; i++ {
				pushTagged(h, i)
			}
			if currentTag(h) != tt.pushes {
				t.Fatalf("current = %d, expected %d", currentTag(h), tt.pushes)
			}

			undos := 0
			for h.Undo() {
				undos++
			}
			if undos != tt.wantUndos {
				t.Errorf("undos = %d, expected %d", undos, tt.wantUndos)
			}
			if currentTag(h) != tt.wantFirst {
				t.Errorf("oldest = %d, expected %d", currentTag(h), tt.wantFirst)
			}

			redos := 0
			for h.Redo() {
				redos++
			}
			if redos != undos || currentTag(h) != tt.pushes {
				t.Errorf("redo went %d steps to %d", redos, currentTag(h))
			}
		})
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory(4, tagged(0))
	pushTagged(h, 1)
	pushTagged(h, 2)
	h.Undo()
	h.Undo()

	pushTagged(h, 9)
	if h.CanRedo() {
		t.Error("push should clear redo")
	}
	if !h.Undo() || currentTag(h) != 0 {
		t.Errorf("expected to undo back to the initial state, at %d", currentTag(h))
	}
}

func TestHistoryScratchIsNeverCurrent(t *testing.T) {
	h := NewHistory(2, tagged(0))
	for i := 1; i < 6; i++ {
		if h.Scratch() == h.Current() {
			t.Fatalf("push %d: scratch aliases the current state", i)
		}
		pushTagged(h, i)
	}
}
