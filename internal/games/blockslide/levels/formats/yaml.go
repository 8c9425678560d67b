// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     *YAMLSize         `yaml:"size,omitempty"`
	Border   bool              `yaml:"border,omitempty"`
	Rows     []string          `yaml:"rows"`
	Pieces   []YAMLPiece       `yaml:"pieces,omitempty"`
	Emerges  []YAMLEmerge      `yaml:"emerges,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPiece overrides a piece cell drawn in rows.
type YAMLPiece struct {
	X         int      `yaml:"x"`
	Y         int      `yaml:"y"`
	Color     *int     `yaml:"color,omitempty"`
	Fixed     bool     `yaml:"fixed,omitempty"`
	NoConnect []string `yaml:"no_connect,omitempty"`
}

// YAMLEmerge places a spawn point.
type YAMLEmerge struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Color int    `yaml:"color"`
	Dir   string `yaml:"dir"`
	Fixed bool   `yaml:"fixed,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Board    *core.Board
	Metadata map[string]string
}

// ParseYAML parses a YAML level file into a raw board.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	board, err := buildBoard(yl)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	return Level{
		ID:       yl.ID,
		Name:     name,
		Board:    board,
		Metadata: yl.Metadata,
	}, nil
}

func buildBoard(yl YAMLLevel) (*core.Board, error) {
	var board *core.Board
	if len(yl.Rows) > 0 {
		b, err := core.ParseRows(yl.Rows)
		if err != nil {
			return nil, err
		}
		board = b
	}

	if yl.Size != nil {
		if yl.Size.W < 1 || yl.Size.W > core.MaxDim || yl.Size.H < 1 || yl.Size.H > core.MaxDim {
			return nil, fmt.Errorf("size %dx%d outside 1..%d", yl.Size.W, yl.Size.H, core.MaxDim)
		}
		sized := core.NewBoard(yl.Size.W, yl.Size.H)
		if board != nil {
			if board.W > sized.W || board.H > sized.H {
				return nil, fmt.Errorf("rows %dx%d exceed size %dx%d", board.W, board.H, sized.W, sized.H)
			}
			for y := 0; y < board.H; y++ {
				copy(sized.Cells[y*sized.W:y*sized.W+board.W], board.Cells[y*board.W:(y+1)*board.W])
			}
		}
		board = sized
	}
	if board == nil {
		return nil, fmt.Errorf("level needs rows or size")
	}

	if yl.Border {
		for y := 0; y < board.H; y++ {
			for x := 0; x < board.W; x++ {
				if x == 0 || y == 0 || x == board.W-1 || y == board.H-1 {
					board.Set(core.P(x, y), core.Wall())
				}
			}
		}
	}

	for _, p := range yl.Pieces {
		pos := core.P(p.X, p.Y)
		cell, ok := board.Get(pos)
		if !ok {
			return nil, fmt.Errorf("piece at %s is off the board", pos)
		}
		mask, err := core.ParseConnectMask(p.NoConnect)
		if err != nil {
			return nil, fmt.Errorf("piece at %s: %w", pos, err)
		}
		color := cell.Color
		if p.Color != nil {
			color = int8(*p.Color)
		} else if cell.Kind != core.CellPiece {
			return nil, fmt.Errorf("piece at %s has no color", pos)
		}
		piece := core.Piece(color, mask)
		piece.Fixed = p.Fixed || (cell.Kind == core.CellPiece && cell.Fixed)
		board.Set(pos, piece)
	}

	for _, e := range yl.Emerges {
		pos := core.P(e.X, e.Y)
		dir, err := core.ParseDir(e.Dir)
		if err != nil {
			return nil, fmt.Errorf("emerge at %s: %w", pos, err)
		}
		if !board.Set(pos, core.Emerge(int8(e.Color), dir, e.Fixed)) {
			return nil, fmt.Errorf("emerge at %s is off the board", pos)
		}
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}
	return board, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
