package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

func TestDeriveGroupsByColor(t *testing.T) {
	s := mustState(t,
		"#####",
		"#11.#",
		"#.12#",
		"#####",
	)

	if s.BlockCount() != 2 {
		t.Fatalf("expected 2 blocks, got %d", s.BlockCount())
	}

	testCases := []struct {
		pos   core.Pos
		block int
	}{
		{core.P(1, 1), 0},
		{core.P(2, 1), 0},
		{core.P(2, 2), 0},
		{core.P(3, 2), 1},
	}
	for _, tc := range testCases {
		id, ok := s.BlockAt(tc.pos)
		if !ok || id != tc.block {
			t.Errorf("at %v: expected block %d, got %d (ok=%v)", tc.pos, tc.block, id, ok)
		}
	}

	if s.Blocks[0].Anchor != core.P(1, 1) {
		t.Errorf("block 0 anchor: expected (1,1), got %v", s.Blocks[0].Anchor)
	}
	if s.Blocks[1].Anchor != core.P(3, 2) {
		t.Errorf("block 1 anchor: expected (3,2), got %v", s.Blocks[1].Anchor)
	}
	checkAnchors(t, s)
}

func TestDeriveNoConnectIsSymmetric(t *testing.T) {
	testCases := []struct {
		name  string
		left  core.ConnectMask
		right core.ConnectMask
		want  int
	}{
		{"none", core.ConnectNone, core.ConnectNone, 1},
		{"left refuses", core.ConnectRight, core.ConnectNone, 2},
		{"right refuses", core.ConnectNone, core.ConnectLeft, 2},
		{"unrelated bits", core.ConnectUp | core.ConnectDown, core.ConnectRight, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, "####", "#11#", "####")
			b.Set(core.P(1, 1), core.Piece(1, tc.left))
			b.Set(core.P(2, 1), core.Piece(1, tc.right))
			s := mustDerive(t, b)
			if s.BlockCount() != tc.want {
				t.Errorf("expected %d blocks, got %d", tc.want, s.BlockCount())
			}
		})
	}
}

func TestDeriveConnectsAroundMask(t *testing.T) {
	// (1,1) refuses (2,1) directly but both reach it through the row below.
	b := mustBoard(t,
		"####",
		"#11#",
		"#11#",
		"####",
	)
	b.Set(core.P(1, 1), core.Piece(1, core.ConnectRight))
	s := mustDerive(t, b)

	if s.BlockCount() != 1 {
		t.Errorf("expected 1 block, got %d", s.BlockCount())
	}
}

func TestDeriveFoldsFixedMarker(t *testing.T) {
	b := mustBoard(t,
		"#####",
		"#1B.#",
		"#..2#",
		"#####",
	)
	s := mustDerive(t, b)

	if s.BlockCount() != 2 {
		t.Fatalf("expected 2 blocks, got %d", s.BlockCount())
	}
	if !s.Blocks[0].Fixed {
		t.Error("block containing a fixed piece should be fixed")
	}
	if s.Blocks[1].Fixed {
		t.Error("block 1 should not be fixed")
	}
	for i, c := range s.Board.Cells {
		if c.Kind == core.CellPiece && c.Fixed {
			t.Errorf("piece at %v still carries the fixed marker", s.Board.Pos(i))
		}
	}

	// The raw board is left untouched.
	if c, _ := b.Get(core.P(2, 1)); !c.Fixed {
		t.Error("Derive should not modify its input board")
	}
}

func TestDeriveDeterministic(t *testing.T) {
	b := mustBoard(t, demoRows...)

	s1 := mustDerive(t, b)
	s2 := mustDerive(t, b)
	s3, err := core.NewResolver(b.W, b.H).Derive(b)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if !s1.Equal(s2) || !s1.Equal(s3) {
		t.Error("deriving the same board should produce identical states")
	}
}

func TestDeriveDemoBoard(t *testing.T) {
	s := demoState(t)

	if s.BlockCount() != 5 {
		t.Fatalf("expected 5 blocks, got %d\n%s", s.BlockCount(), core.RenderBlocks(s))
	}

	expected := []string{
		"[(5,2)]",
		"[(6,2)]",
		"[(5,3) (6,3) (6,4)]",
		"[(5,4) (5,5) (6,5)]",
		"[(5,8)]",
	}
	for id, want := range expected {
		if got := positions(s, id); got != want {
			t.Errorf("block %d: expected %s, got %s", id, want, got)
		}
	}
	checkAnchors(t, s)
}

func TestDeriveRejectsInvalidBoards(t *testing.T) {
	bad := core.NewBoard(3, 3)
	bad.Cells[4] = core.Cell{Kind: core.CellKind(9)}

	negative := core.NewBoard(3, 3)
	negative.Cells[4] = core.Piece(-2, core.ConnectNone)

	testCases := []struct {
		name  string
		board *core.Board
		code  string
	}{
		{"zero size", core.NewBoard(0, 0), "BAD_SIZE"},
		{"too wide", core.NewBoard(core.MaxDim+1, 1), "BAD_SIZE"},
		{"short cells", &core.Board{W: 3, H: 3, Cells: make([]core.Cell, 4)}, "BAD_CELLS"},
		{"unknown kind", bad, "BAD_KIND"},
		{"negative color", negative, "BAD_COLOR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := core.Derive(tc.board)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if s != nil {
				t.Error("expected no state on failure")
			}
			if !errors.Is(err, core.ErrInvalidBoard) {
				t.Errorf("expected ErrInvalidBoard, got %v", err)
			}
			var ve core.ValidationError
			if !errors.As(err, &ve) || ve.Code != tc.code {
				t.Errorf("expected code %s, got %v", tc.code, err)
			}
		})
	}
}
