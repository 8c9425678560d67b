package config

import (
	_ "embed"
)

//go:embed defaults/blockslide.yaml
var defaultBlockslideYAML []byte

// DefaultBlockslideConfig returns the default configuration.
func DefaultBlockslideConfig() BlockslideConfig {
	return BlockslideConfig{
		Board: BoardConfig{
			Width:  14,
			Height: 10,
		},
		History: HistoryConfig{
			Depth: 10,
		},
		Render: RenderConfig{
			CellWidth: 2,
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Path: "~/.blockslide/blockslide.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlockslideYAML
}
