package core_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

// demoRows is the 14x10 demo board.
var demoRows = []string{
	"##############",
	"#............#",
	"#....43......#",
	"#....22......#",
	"#....12......#",
	"#....11......#",
	"#.....#......#",
	"#............#",
	"#....1.......#",
	"##############",
}

func mustBoard(t *testing.T, rows ...string) *core.Board {
	t.Helper()
	b, err := core.ParseRows(rows)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	return b
}

func mustDerive(t *testing.T, b *core.Board) *core.State {
	t.Helper()
	s, err := core.Derive(b)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	return s
}

func mustState(t *testing.T, rows ...string) *core.State {
	t.Helper()
	return mustDerive(t, mustBoard(t, rows...))
}

// demoState derives the demo board, whose piece at (6,3) refuses
// connections to the right and upward.
func demoState(t *testing.T) *core.State {
	t.Helper()
	b := mustBoard(t, demoRows...)
	b.Set(core.P(6, 3), core.Piece(2, core.ConnectRight|core.ConnectUp))
	return mustDerive(t, b)
}

func mustMove(t *testing.T, r *core.Resolver, s *core.State, at core.Pos, dir core.Dir) *core.State {
	t.Helper()
	id, ok := s.BlockAt(at)
	if !ok {
		t.Fatalf("no block at %v", at)
	}
	next, moved, err := r.Move(s, id, dir)
	if err != nil {
		t.Fatalf("Move(%v, %s) failed: %v", at, dir, err)
	}
	if !moved {
		t.Fatalf("Move(%v, %s) blocked, expected success", at, dir)
	}
	return next
}

func mustBytes(t *testing.T, s *core.State) []byte {
	t.Helper()
	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	return data
}

func checkAnchors(t *testing.T, s *core.State) {
	t.Helper()
	for id, blk := range s.Blocks {
		cells := s.BlockCells(id)
		if len(cells) == 0 {
			t.Errorf("block %d has no cells", id)
			continue
		}
		if cells[0] != blk.Anchor {
			t.Errorf("block %d: anchor %v, want row-major minimum %v", id, blk.Anchor, cells[0])
		}
	}
}

// blockShapes returns the sorted list of "color:size" per block.
func blockShapes(s *core.State) []string {
	out := make([]string, 0, len(s.Blocks))
	for id := range s.Blocks {
		cells := s.BlockCells(id)
		c, _ := s.Board.Get(cells[0])
		out = append(out, fmt.Sprintf("%d:%d", c.Color, len(cells)))
	}
	sort.Strings(out)
	return out
}

func positions(s *core.State, id int) string {
	return fmt.Sprint(s.BlockCells(id))
}
