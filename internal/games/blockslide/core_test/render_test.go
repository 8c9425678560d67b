package core_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
)

func TestRenderBoardRoundTrip(t *testing.T) {
	rows := []string{
		"#######",
		"#<.12v#",
		"#A..^>#",
		"#######",
	}
	b := mustBoard(t, rows...)

	got := core.RenderBoard(b)
	want := strings.Join(rows, "\n") + "\n"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestParseRowsPadsShortRows(t *testing.T) {
	b := mustBoard(t, "###", "#1", "###")
	if b.W != 3 || b.H != 3 {
		t.Fatalf("expected 3x3 board, got %dx%d", b.W, b.H)
	}
	if c, _ := b.Get(core.P(2, 1)); !c.IsEmpty() {
		t.Error("expected padding cell to be empty")
	}
}

func TestParseRowsRejectsUnknownRune(t *testing.T) {
	_, err := core.ParseRows([]string{"#x#"})
	if !errors.Is(err, core.ErrInvalidBoard) {
		t.Errorf("expected ErrInvalidBoard, got %v", err)
	}
}

func TestRenderStateShowsFixedBlocks(t *testing.T) {
	s := mustState(t,
		"#####",
		"#1B.#",
		"#####",
	)
	if got := core.RenderState(s); got != "#####\n#BB.#\n#####\n" {
		t.Errorf("unexpected render:\n%s", got)
	}
}

func TestRenderBlocks(t *testing.T) {
	s := mustState(t,
		"#####",
		"#1.B#",
		"#####",
	)
	want := "Block 0: (1, 1): fixed 0\nBlock 1: (3, 1): fixed 1\n"
	if got := core.RenderBlocks(s); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderCells(t *testing.T) {
	b := mustBoard(t, "1<")
	b.Set(core.P(0, 0), core.Piece(1, core.ConnectLeft|core.ConnectDown))
	s := mustDerive(t, b)

	want := "(0, 0): piece color 1 block 0 no_connect LD\n(1, 0): emerge color 0 dir Left fixed 0\n"
	if got := core.RenderCells(s); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestWhereConnected(t *testing.T) {
	s := mustState(t,
		"#####",
		"#11<#",
		"#.2.#",
		"#####",
	)

	testCases := []struct {
		name string
		pos  core.Pos
		want core.ConnectMask
	}{
		{"piece joins its block only", core.P(1, 1), core.ConnectRight},
		{"piece next to emerge", core.P(2, 1), core.ConnectLeft},
		{"emerge joins walls", core.P(3, 1), core.ConnectRight | core.ConnectUp},
		{"lone piece", core.P(2, 2), core.ConnectNone},
		{"empty between pieces and walls", core.P(1, 2), core.ConnectNone},
		{"corner wall", core.P(0, 0), core.ConnectRight | core.ConnectDown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.WhereConnected(tc.pos)
			if err != nil {
				t.Fatalf("WhereConnected failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}

	if _, err := s.WhereConnected(core.P(-1, 0)); !errors.Is(err, core.ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestPieceConnectable(t *testing.T) {
	b := mustBoard(t, "1#")
	b.Set(core.P(0, 0), core.Piece(1, core.ConnectRight))
	s := mustDerive(t, b)

	if got, _ := s.PieceConnectable(core.P(0, 0)); got != core.ConnectLeft|core.ConnectUp|core.ConnectDown {
		t.Errorf("expected LUD, got %s", got)
	}
	if got, _ := s.PieceConnectable(core.P(1, 0)); got != core.ConnectNone {
		t.Errorf("expected no connections for a wall, got %s", got)
	}
}

func TestParseDirAndPos(t *testing.T) {
	d, err := core.ParseDir("R")
	if err != nil || d != core.DirRight {
		t.Errorf("ParseDir(R) = %v, %v", d, err)
	}
	if _, err := core.ParseDir("sideways"); !errors.Is(err, core.ErrInvalidDirection) {
		t.Errorf("expected ErrInvalidDirection, got %v", err)
	}
	p, err := core.ParsePos(" 3, 4")
	if err != nil || p != core.P(3, 4) {
		t.Errorf("ParsePos = %v, %v", p, err)
	}
	if _, err := core.ParsePos("3"); !errors.Is(err, core.ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestDirOpposite(t *testing.T) {
	for _, d := range core.Dirs {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s: opposite is not an involution", d)
		}
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx+ox != 0 || dy+oy != 0 {
			t.Errorf("%s: opposite delta does not cancel", d)
		}
	}
}
