package core

import (
	"fmt"
	"strings"
)

// Text board format, one rune per cell:
//
//	'#'        wall
//	'.' or ' ' empty
//	'0'..'9'   piece of that color
//	'A'..'J'   fixed piece of color 0..9
//	'<' '>' '^' 'v'  emerge cell facing that way (color 0)
//
// Masks and emerge colors have no text form; callers set them afterwards.

var emergeRunes = [4]rune{'<', '>', '^', 'v'}

// ParseRows builds a raw board from text rows. Short rows are padded with
// empty cells up to the longest row.
func ParseRows(rows []string) (*Board, error) {
	h := len(rows)
	w := 0
	for _, row := range rows {
		w = max(w, len([]rune(row)))
	}
	if w == 0 || h == 0 {
		return nil, ValidationError{Code: "BAD_SIZE", Message: "no rows"}
	}
	if w > MaxDim || h > MaxDim {
		return nil, ValidationError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("board size %dx%d outside 1..%d", w, h, MaxDim),
		}
	}

	b := NewBoard(w, h)
	for y, row := range rows {
		for x, ch := range []rune(row) {
			c, err := cellFromRune(ch)
			if err != nil {
				return nil, ValidationError{
					Code:    "BAD_RUNE",
					Message: fmt.Sprintf("row %d col %d: %v", y, x, err),
				}
			}
			b.Cells[y*w+x] = c
		}
	}
	return b, nil
}

func cellFromRune(ch rune) (Cell, error) {
	switch {
	case ch == '#':
		return Wall(), nil
	case ch == '.' || ch == ' ':
		return Empty(), nil
	case ch >= '0' && ch <= '9':
		return Piece(int8(ch-'0'), ConnectNone), nil
	case ch >= 'A' && ch <= 'J':
		return FixedPiece(int8(ch-'A'), ConnectNone), nil
	}
	for d, r := range emergeRunes {
		if ch == r {
			return Emerge(0, Dir(d), false), nil
		}
	}
	return Cell{}, fmt.Errorf("unknown cell %q", ch)
}

func cellRune(c Cell, fixed bool) rune {
	switch c.Kind {
	case CellWall:
		return '#'
	case CellPiece:
		if c.Color < 0 || c.Color > 9 {
			return '?'
		}
		if fixed {
			return 'A' + rune(c.Color)
		}
		return '0' + rune(c.Color)
	case CellEmerge:
		if c.Dir.Valid() {
			return emergeRunes[c.Dir]
		}
		return '?'
	default:
		return '.'
	}
}

// RenderBoard renders a board in the text format. Fixed markers of a raw
// board show as letters.
func RenderBoard(b *Board) string {
	var sb strings.Builder
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := b.Cells[y*b.W+x]
			sb.WriteRune(cellRune(c, c.Fixed))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderState renders a derived state in the text format, showing pieces of
// fixed blocks as letters.
func RenderState(s *State) string {
	var sb strings.Builder
	b := s.Board
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := b.Cells[y*b.W+x]
			fixed := c.Kind == CellPiece && s.Blocks[c.Block].Fixed
			sb.WriteRune(cellRune(c, fixed))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderBlocks lists the block table, one line per block.
func RenderBlocks(s *State) string {
	var sb strings.Builder
	for i, blk := range s.Blocks {
		fmt.Fprintf(&sb, "Block %d: (%d, %d): fixed %d\n", i, blk.Anchor.X, blk.Anchor.Y, boolByte(blk.Fixed))
	}
	return sb.String()
}

// RenderCells dumps every non-empty cell with its fields.
func RenderCells(s *State) string {
	var sb strings.Builder
	for i, c := range s.Board.Cells {
		p := s.Board.Pos(i)
		switch c.Kind {
		case CellWall:
			fmt.Fprintf(&sb, "(%d, %d): wall\n", p.X, p.Y)
		case CellPiece:
			fmt.Fprintf(&sb, "(%d, %d): piece color %d block %d no_connect %s\n",
				p.X, p.Y, c.Color, c.Block, c.NoConnect)
		case CellEmerge:
			fmt.Fprintf(&sb, "(%d, %d): emerge color %d dir %s fixed %d\n",
				p.X, p.Y, c.Color, c.Dir, boolByte(c.Fixed))
		}
	}
	return sb.String()
}
