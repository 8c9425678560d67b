package core

import (
	"encoding/binary"
	"fmt"
)

const (
	cellBytes  = 5
	blockBytes = 3
	maxBlocks  = 0xffff
)

// MarshalBinary encodes the state as
//
//	W u8, H u8
//	W*H cells of [kind, color, a, b, c]
//	block count u16 big-endian
//	blocks of [x, y, fixed]
//
// For pieces a is the no-connect mask and b:c the block id (u16 big-endian);
// for emerge cells a is the direction and b the fixed flag.
func (s *State) MarshalBinary() ([]byte, error) {
	if s == nil || s.Board == nil {
		return nil, fmt.Errorf("core: marshal: %w: nil state", ErrInvalidBoard)
	}
	b := s.Board
	if b.W < 1 || b.W > MaxDim || b.H < 1 || b.H > MaxDim {
		return nil, fmt.Errorf("core: marshal: %w: size %dx%d", ErrInvalidBoard, b.W, b.H)
	}
	if len(s.Blocks) > maxBlocks {
		return nil, fmt.Errorf("core: marshal: %w: %d blocks", ErrInvalidBlock, len(s.Blocks))
	}

	buf := make([]byte, 0, s.Size())
	buf = append(buf, byte(b.W), byte(b.H))
	for _, c := range b.Cells {
		var rec [cellBytes]byte
		rec[0] = byte(c.Kind)
		rec[1] = byte(c.Color)
		switch c.Kind {
		case CellPiece:
			rec[2] = byte(c.NoConnect)
			binary.BigEndian.PutUint16(rec[3:], uint16(c.Block))
		case CellEmerge:
			rec[2] = byte(c.Dir)
			rec[3] = boolByte(c.Fixed)
		}
		buf = append(buf, rec[:]...)
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(s.Blocks)))
	for _, blk := range s.Blocks {
		buf = append(buf, byte(blk.Anchor.X), byte(blk.Anchor.Y), boolByte(blk.Fixed))
	}
	return buf, nil
}

// UnmarshalBinary decodes a state written by MarshalBinary, replacing s.
// s is left unchanged when data is malformed.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("core: unmarshal: %w: short header", ErrInvalidBoard)
	}
	w, h := int(data[0]), int(data[1])
	if w == 0 || h == 0 {
		return fmt.Errorf("core: unmarshal: %w: size %dx%d", ErrInvalidBoard, w, h)
	}
	off := 2
	need := off + w*h*cellBytes + 2
	if len(data) < need {
		return fmt.Errorf("core: unmarshal: %w: %d bytes, want at least %d", ErrInvalidBoard, len(data), need)
	}

	board := NewBoard(w, h)
	for i := range board.Cells {
		rec := data[off : off+cellBytes]
		off += cellBytes
		c := Cell{Kind: CellKind(rec[0]), Color: int8(rec[1])}
		switch c.Kind {
		case CellEmpty, CellWall:
		case CellPiece:
			c.NoConnect = ConnectMask(rec[2])
			c.Block = int(binary.BigEndian.Uint16(rec[3:]))
		case CellEmerge:
			c.Dir = Dir(rec[2])
			c.Fixed = rec[3] != 0
		default:
			return fmt.Errorf("core: unmarshal: %w: cell %d has kind %d", ErrInvalidBoard, i, rec[0])
		}
		board.Cells[i] = c
	}
	if err := board.Validate(); err != nil {
		return fmt.Errorf("core: unmarshal: %w", err)
	}

	count := int(binary.BigEndian.Uint16(data[off:]))
	off += 2
	if len(data) != off+count*blockBytes {
		return fmt.Errorf("core: unmarshal: %w: %d bytes for %d blocks", ErrInvalidBoard, len(data), count)
	}
	blocks := make([]Block, count)
	for i := range blocks {
		rec := data[off : off+blockBytes]
		off += blockBytes
		blocks[i] = Block{Anchor: P(int(rec[0]), int(rec[1])), Fixed: rec[2] != 0}
		if !board.InBounds(blocks[i].Anchor) {
			return fmt.Errorf("core: unmarshal: %w: block %d anchor %s off board", ErrInvalidBlock, i, blocks[i].Anchor)
		}
	}
	for i, c := range board.Cells {
		if c.Kind == CellPiece && c.Block >= count {
			return fmt.Errorf("core: unmarshal: %w: cell %s references block %d of %d",
				ErrInvalidBlock, board.Pos(i), c.Block, count)
		}
	}

	s.Board = board
	s.Blocks = blocks
	return nil
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
