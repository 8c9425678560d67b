// Package config provides YAML-based configuration loading for blockslide.
package config

import (
	"fmt"
	"strings"
)

// BlockslideConfig contains all configuration for the puzzle.
type BlockslideConfig struct {
	Board   BoardConfig   `yaml:"board"`
	History HistoryConfig `yaml:"history"`
	Engine  EngineConfig  `yaml:"engine"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
}

// BoardConfig defines the size of boards created without a level file.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// HistoryConfig defines the undo ring.
type HistoryConfig struct {
	Depth int `yaml:"depth"` // States kept, including the current one
}

// EngineConfig tunes the move resolver.
type EngineConfig struct {
	PoisonScratch bool `yaml:"poison_scratch"` // Overwrite scratch buffers after each call
}

// RenderConfig defines how the board is drawn in the terminal.
type RenderConfig struct {
	CellWidth    int  `yaml:"cell_width"` // Screen columns per board cell
	ShowBlockIDs bool `yaml:"show_block_ids"`
}

// LogConfig defines the logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// LevelsConfig points at extra level files.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Empty means the built-in pack
}

// StorageConfig defines where sessions are saved.
type StorageConfig struct {
	Path string `yaml:"path"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate rejects values the game cannot run with.
func (c BlockslideConfig) Validate() error {
	if c.Board.Width < 1 || c.Board.Width > 255 || c.Board.Height < 1 || c.Board.Height > 255 {
		return fmt.Errorf("config: board size %dx%d outside 1..255", c.Board.Width, c.Board.Height)
	}
	if c.History.Depth < 1 {
		return fmt.Errorf("config: history depth must be at least 1, got %d", c.History.Depth)
	}
	if c.Render.CellWidth < 1 || c.Render.CellWidth > 4 {
		return fmt.Errorf("config: cell width must be 1..4, got %d", c.Render.CellWidth)
	}
	level := strings.ToLower(c.Log.Level)
	for _, l := range logLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("config: unknown log level %q", c.Log.Level)
}
