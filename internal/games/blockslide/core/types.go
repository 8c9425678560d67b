// Package core provides the move-resolution engine for the blockslide puzzle.
// This package is UI-agnostic and deterministic: the same board and the same
// sequence of moves always produce the same states and block ids.
package core

import (
	"fmt"
	"strings"
)

// Dir represents a cardinal direction.
// The order is fixed: the no-connect bit for a direction is 1<<dir and the
// opposite direction is dir^1.
type Dir uint8

const (
	DirLeft Dir = iota
	DirRight
	DirUp
	DirDown
)

// Dirs lists all directions in traversal order.
var Dirs = [4]Dir{DirLeft, DirRight, DirUp, DirDown}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return d ^ 1
}

// Horizontal reports whether d is Left or Right.
func (d Dir) Horizontal() bool {
	return d < DirUp
}

// Valid reports whether d is one of the four cardinal directions.
func (d Dir) Valid() bool {
	return d <= DirDown
}

// Bit returns the connect mask bit for this direction.
func (d Dir) Bit() ConnectMask {
	return 1 << d
}

// ParseDir parses a direction name ("left", "l", "right", "r", ...).
func ParseDir(s string) (Dir, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// ConnectMask is a 4-bit set of directions, one bit per Dir.
type ConnectMask uint8

const (
	ConnectLeft ConnectMask = 1 << iota
	ConnectRight
	ConnectUp
	ConnectDown

	ConnectNone ConnectMask = 0
	ConnectAll  ConnectMask = 0xF
)

// Has reports whether the bit for d is set.
func (m ConnectMask) Has(d Dir) bool {
	return m&d.Bit() != 0
}

// String renders the mask as direction letters, e.g. "LU", or "-" when empty.
func (m ConnectMask) String() string {
	if m&ConnectAll == 0 {
		return "-"
	}
	var sb strings.Builder
	for _, d := range Dirs {
		if m.Has(d) {
			sb.WriteByte("LRUD"[d])
		}
	}
	return sb.String()
}

// ParseConnectMask parses a list of direction names into a mask.
func ParseConnectMask(names []string) (ConnectMask, error) {
	var m ConnectMask
	for _, n := range names {
		d, err := ParseDir(n)
		if err != nil {
			return 0, err
		}
		m |= d.Bit()
	}
	return m, nil
}

// CellKind identifies the variant stored in a Cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellWall
	CellPiece
	CellEmerge

	numCellKinds
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellPiece:
		return "piece"
	case CellEmerge:
		return "emerge"
	default:
		return "unknown"
	}
}

// Cell is a single board position.
//
// Piece cells use Color, NoConnect and Block. Emerge cells use Color, Dir and
// Fixed; they are spawn points that the engine carries through moves without
// acting on them. On a piece, Fixed is a load-time marker only: Derive folds
// it into the owning block and clears it.
type Cell struct {
	Kind      CellKind
	Color     int8
	NoConnect ConnectMask
	Block     int
	Dir       Dir
	Fixed     bool
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{Kind: CellEmpty}
}

// Wall returns a wall cell.
func Wall() Cell {
	return Cell{Kind: CellWall}
}

// Piece returns a movable piece cell of the given color.
func Piece(color int8, noConnect ConnectMask) Cell {
	return Cell{Kind: CellPiece, Color: color, NoConnect: noConnect}
}

// FixedPiece returns a piece cell carrying the load-time fixed marker.
func FixedPiece(color int8, noConnect ConnectMask) Cell {
	return Cell{Kind: CellPiece, Color: color, NoConnect: noConnect, Fixed: true}
}

// Emerge returns a spawn-point cell.
func Emerge(color int8, dir Dir, fixed bool) Cell {
	return Cell{Kind: CellEmerge, Color: color, Dir: dir, Fixed: fixed}
}

// IsEmpty returns true if the cell holds nothing.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// IsPiece returns true if the cell holds a piece.
func (c Cell) IsPiece() bool {
	return c.Kind == CellPiece
}

// Connectable returns the directions in which this piece accepts connections.
func (c Cell) Connectable() ConnectMask {
	return ConnectAll ^ (c.NoConnect & ConnectAll)
}

// canConnect reports whether two neighbouring pieces join across the edge
// leaving from in direction d. Both sides must allow the edge.
func canConnect(from, to Cell, d Dir) bool {
	return from.Kind == CellPiece && to.Kind == CellPiece &&
		from.Color == to.Color &&
		!from.NoConnect.Has(d) &&
		!to.NoConnect.Has(d.Opposite())
}

// stops reports whether a cell halts movement into it.
// Empty cells never stop; walls and emerge cells always do; a piece stops
// movement when its block is fixed.
func (s *State) stops(c Cell) bool {
	switch c.Kind {
	case CellEmpty:
		return false
	case CellPiece:
		return s.Blocks[c.Block].Fixed
	default:
		return true
	}
}
