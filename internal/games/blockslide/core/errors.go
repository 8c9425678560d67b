package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBoard is matched by every ValidationError.
	ErrInvalidBoard      = errors.New("invalid board")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrInvalidBlock      = errors.New("invalid block")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// ValidationError contains details about a board that cannot be derived.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrInvalidBoard) true for validation errors.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidBoard
}

// Validate checks board dimensions and cell variants.
func (b *Board) Validate() error {
	if b == nil {
		return ValidationError{Code: "NIL_BOARD", Message: "board is nil"}
	}
	if b.W < 1 || b.W > MaxDim || b.H < 1 || b.H > MaxDim {
		return ValidationError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("board size %dx%d outside 1..%d", b.W, b.H, MaxDim),
		}
	}
	if len(b.Cells) != b.W*b.H {
		return ValidationError{
			Code:    "BAD_CELLS",
			Message: fmt.Sprintf("board has %d cells, want %d", len(b.Cells), b.W*b.H),
		}
	}
	for i, c := range b.Cells {
		p := b.Pos(i)
		switch c.Kind {
		case CellEmpty, CellWall:
		case CellPiece:
			if c.Color < 0 {
				return ValidationError{
					Code:    "BAD_COLOR",
					Message: fmt.Sprintf("piece at %s has negative color %d", p, c.Color),
				}
			}
			if c.NoConnect&^ConnectAll != 0 {
				return ValidationError{
					Code:    "BAD_MASK",
					Message: fmt.Sprintf("piece at %s has no-connect mask %#x", p, uint8(c.NoConnect)),
				}
			}
		case CellEmerge:
			if !c.Dir.Valid() {
				return ValidationError{
					Code:    "BAD_DIR",
					Message: fmt.Sprintf("emerge at %s has direction %d", p, c.Dir),
				}
			}
		default:
			return ValidationError{
				Code:    "BAD_KIND",
				Message: fmt.Sprintf("cell at %s has kind %d", p, c.Kind),
			}
		}
	}
	return nil
}

// checkMove validates public move arguments before any scratch is touched.
func checkMove(s *State, block int, dir Dir) error {
	if s == nil || s.Board == nil {
		return fmt.Errorf("%w: nil state", ErrInvalidBoard)
	}
	if !dir.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, dir)
	}
	if block < 0 || block >= len(s.Blocks) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidBlock, block, len(s.Blocks))
	}
	return nil
}
